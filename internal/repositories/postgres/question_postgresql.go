package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/question-bank-service/internal/cache"
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== BASIC CRUD OPERATIONS =====

// Create inserts the question row together with its topic and tag links in
// one transaction. Partial linkage is never observable.
func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := q.getDB(tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}

		for _, topicID := range question.TopicIDs {
			link := models.QuestionTopic{QuestionID: question.ID, TopicID: topicID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link topic %s: %w", topicID, err)
			}
		}

		for _, tag := range NormalizeTags(question.Tags) {
			link := models.QuestionTag{QuestionID: question.ID, Tag: tag}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link tag %s: %w", tag, err)
			}
		}

		return nil
	})
	if err != nil {
		return handleDBError(err, "create question")
	}

	cache.SafeInvalidatePattern(ctx, q.cacheManager.Question, "list:*")
	cache.SafeInvalidatePattern(ctx, q.cacheManager.Stats, fmt.Sprintf("bank:%s:*", question.BankID))

	return nil
}

// GetByID retrieves a question by ID with caching
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error) {
	db := q.getDB(tx)

	cacheKey := fmt.Sprintf("id:%s", id)
	var question models.Question

	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &question, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbQuestion models.Question
		if err := db.WithContext(ctx).Where("id = ?", id).First(&dbQuestion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("question %s: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get question: %w", err)
		}

		if err := q.loadLinks(ctx, db, &dbQuestion); err != nil {
			return nil, err
		}

		return &dbQuestion, nil
	})
	if err != nil {
		return nil, err
	}

	return &question, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := q.getDB(tx)

	question.UpdatedAt = time.Now()
	if err := db.WithContext(ctx).Save(question).Error; err != nil {
		return handleDBError(err, "update question")
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, question.ID, question.BankID)

	return nil
}

// Delete removes the question row and cascades its topic and tag links.
// Deleting an id that does not exist wraps ErrNotFound.
func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := q.getDB(tx)

	var question models.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question %s: %w", id, repositories.ErrNotFound)
		}
		return handleDBError(err, "get question for delete")
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionTopic{}).Error; err != nil {
			return fmt.Errorf("failed to delete topic links: %w", err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionTag{}).Error; err != nil {
			return fmt.Errorf("failed to delete tag links: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete question: %w", err)
		}
		return nil
	})
	if err != nil {
		return handleDBError(err, "delete question")
	}

	cache.InvalidateQuestionCache(ctx, q.cacheManager, id, question.BankID)

	return nil
}

// ===== BULK OPERATIONS =====

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error) {
	db := q.getDB(tx)

	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	var questions []*models.Question
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, handleDBError(err, "get questions by ids")
	}
	return questions, nil
}

// Activate sets status to active on every id that resolves and returns the
// ids actually found. Best effort, not all-or-nothing: callers report the
// missing ids alongside the activated count.
func (q *QuestionPostgreSQL) Activate(ctx context.Context, tx *gorm.DB, ids []string) ([]string, error) {
	db := q.getDB(tx)

	if len(ids) == 0 {
		return []string{}, nil
	}

	var found []string
	if err := db.WithContext(ctx).Model(&models.Question{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, handleDBError(err, "resolve questions for activation")
	}

	if len(found) > 0 {
		if err := db.WithContext(ctx).Model(&models.Question{}).
			Where("id IN ?", found).
			Updates(map[string]interface{}{
				"status":     models.StatusActive,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return nil, handleDBError(err, "activate questions")
		}

		for _, id := range found {
			cache.SafeDelete(ctx, q.cacheManager.Question, fmt.Sprintf("id:%s", id))
		}
		cache.SafeInvalidatePattern(ctx, q.cacheManager.Stats, "bank:*")
	}

	return found, nil
}

// ===== QUERY OPERATIONS =====

// Search runs the conjunctive filtered query, newest first, and returns the
// page plus the total match count.
func (q *QuestionPostgreSQL) Search(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	db := q.getDB(tx)

	query := db.WithContext(ctx).Model(&models.Question{})
	query = q.helpers.ApplyQuestionFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count search results")
	}

	query = q.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, handleDBError(err, "search questions")
	}

	for _, question := range questions {
		if err := q.loadLinks(ctx, db, question); err != nil {
			return nil, 0, err
		}
	}

	return questions, total, nil
}

// ===== LINK OPERATIONS =====

// ReplaceTopicLinks swaps the full topic link set for a question. Replace
// semantics, not merge: an empty slice clears all links.
func (q *QuestionPostgreSQL) ReplaceTopicLinks(ctx context.Context, tx *gorm.DB, questionID string, topicIDs []string) error {
	db := q.getDB(tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionTopic{}).Error; err != nil {
			return fmt.Errorf("failed to clear topic links: %w", err)
		}
		for _, topicID := range topicIDs {
			link := models.QuestionTopic{QuestionID: questionID, TopicID: topicID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link topic %s: %w", topicID, err)
			}
		}
		return nil
	})
	if err != nil {
		return handleDBError(err, "replace topic links")
	}

	cache.SafeDelete(ctx, q.cacheManager.Question, fmt.Sprintf("id:%s", questionID))

	return nil
}

// ReplaceTagLinks swaps the full tag link set for a question.
func (q *QuestionPostgreSQL) ReplaceTagLinks(ctx context.Context, tx *gorm.DB, questionID string, tags []string) error {
	db := q.getDB(tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear tag links: %w", err)
		}
		for _, tag := range NormalizeTags(tags) {
			link := models.QuestionTag{QuestionID: questionID, Tag: tag}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link tag %s: %w", tag, err)
			}
		}
		return nil
	})
	if err != nil {
		return handleDBError(err, "replace tag links")
	}

	cache.SafeDelete(ctx, q.cacheManager.Question, fmt.Sprintf("id:%s", questionID))

	return nil
}

func (q *QuestionPostgreSQL) GetTopicLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error) {
	db := q.getDB(tx)

	var topicIDs []string
	if err := db.WithContext(ctx).Model(&models.QuestionTopic{}).
		Where("question_id = ?", questionID).
		Order("topic_id ASC").
		Pluck("topic_id", &topicIDs).Error; err != nil {
		return nil, handleDBError(err, "get topic links")
	}
	return topicIDs, nil
}

func (q *QuestionPostgreSQL) GetTagLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error) {
	db := q.getDB(tx)

	var tags []string
	if err := db.WithContext(ctx).Model(&models.QuestionTag{}).
		Where("question_id = ?", questionID).
		Order("tag ASC").
		Pluck("tag", &tags).Error; err != nil {
		return nil, handleDBError(err, "get tag links")
	}
	return tags, nil
}

// ===== VALIDATION =====

func (q *QuestionPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	db := q.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check question exists")
	}
	return count > 0, nil
}

// ===== HELPERS =====

func (q *QuestionPostgreSQL) loadLinks(ctx context.Context, db *gorm.DB, question *models.Question) error {
	var topicIDs []string
	if err := db.WithContext(ctx).Model(&models.QuestionTopic{}).
		Where("question_id = ?", question.ID).
		Order("topic_id ASC").
		Pluck("topic_id", &topicIDs).Error; err != nil {
		return fmt.Errorf("failed to load topic links: %w", err)
	}
	question.TopicIDs = topicIDs

	var tags []string
	if err := db.WithContext(ctx).Model(&models.QuestionTag{}).
		Where("question_id = ?", question.ID).
		Order("tag ASC").
		Pluck("tag", &tags).Error; err != nil {
		return fmt.Errorf("failed to load tag links: %w", err)
	}
	question.Tags = tags

	return nil
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}
