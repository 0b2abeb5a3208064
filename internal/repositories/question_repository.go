package repositories

import (
	"context"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"gorm.io/gorm"
)

// QuestionBankRepository interface for question bank operations
type QuestionBankRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.QuestionBank, error)
	Update(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters QuestionBankFilters) ([]*models.QuestionBank, int64, error)
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)

	// Statistics
	CountQuestionsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error)
	CountTopicsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error)
	GetBankStats(ctx context.Context, tx *gorm.DB, bankID string) (*QuestionBankStats, error)
}

// TopicRepository interface for topic operations
type TopicRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, topic *models.Topic) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error)
	Update(ctx context.Context, tx *gorm.DB, topic *models.Topic) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// Hierarchy operations
	GetByBank(ctx context.Context, tx *gorm.DB, bankID string) ([]*models.Topic, error)
	GetChildren(ctx context.Context, tx *gorm.DB, parentID string) ([]*models.Topic, error)

	// Validation
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	ExistsInBank(ctx context.Context, tx *gorm.DB, id string, bankID string) (bool, error)

	// Statistics
	CountQuestionsInTopic(ctx context.Context, tx *gorm.DB, topicID string) (int64, error)
}

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// Bulk operations
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error)
	Activate(ctx context.Context, tx *gorm.DB, ids []string) ([]string, error)

	// Query operations
	Search(ctx context.Context, tx *gorm.DB, filters QuestionFilters) ([]*models.Question, int64, error)

	// Link operations
	ReplaceTopicLinks(ctx context.Context, tx *gorm.DB, questionID string, topicIDs []string) error
	ReplaceTagLinks(ctx context.Context, tx *gorm.DB, questionID string, tags []string) error
	GetTopicLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error)
	GetTagLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error)

	// Validation
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}
