package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

// mockRepository wires hand-written sub-repository mocks into the
// repositories.Repository interface for service tests.
type mockRepository struct {
	banks     *mockBankRepo
	topics    *mockTopicRepo
	questions *mockQuestionRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		banks:     &mockBankRepo{},
		topics:    &mockTopicRepo{},
		questions: &mockQuestionRepo{},
	}
}

func (m *mockRepository) QuestionBank() repositories.QuestionBankRepository { return m.banks }
func (m *mockRepository) Topic() repositories.TopicRepository               { return m.topics }
func (m *mockRepository) Question() repositories.QuestionRepository         { return m.questions }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// mockBankRepo responds from function fields; unset fields return zero values.
type mockBankRepo struct {
	getByIDFn func(id string) (*models.QuestionBank, error)
	existsFn  func(id string) (bool, error)
	statsFn   func(bankID string) (*repositories.QuestionBankStats, error)
	created   []*models.QuestionBank
}

func (m *mockBankRepo) Create(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error {
	m.created = append(m.created, bank)
	return nil
}

func (m *mockBankRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.QuestionBank, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockBankRepo) Update(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error {
	return nil
}

func (m *mockBankRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error { return nil }

func (m *mockBankRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionBankFilters) ([]*models.QuestionBank, int64, error) {
	return nil, 0, nil
}

func (m *mockBankRepo) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, nil
}

func (m *mockBankRepo) CountQuestionsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error) {
	return 0, nil
}

func (m *mockBankRepo) CountTopicsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error) {
	return 0, nil
}

func (m *mockBankRepo) GetBankStats(ctx context.Context, tx *gorm.DB, bankID string) (*repositories.QuestionBankStats, error) {
	if m.statsFn != nil {
		return m.statsFn(bankID)
	}
	return &repositories.QuestionBankStats{}, nil
}

type mockTopicRepo struct {
	existsInBankFn func(id, bankID string) (bool, error)
}

func (m *mockTopicRepo) Create(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	return nil
}

func (m *mockTopicRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error) {
	return nil, repositories.ErrNotFound
}

func (m *mockTopicRepo) Update(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	return nil
}

func (m *mockTopicRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error { return nil }

func (m *mockTopicRepo) GetByBank(ctx context.Context, tx *gorm.DB, bankID string) ([]*models.Topic, error) {
	return nil, nil
}

func (m *mockTopicRepo) GetChildren(ctx context.Context, tx *gorm.DB, parentID string) ([]*models.Topic, error) {
	return nil, nil
}

func (m *mockTopicRepo) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	return false, nil
}

func (m *mockTopicRepo) ExistsInBank(ctx context.Context, tx *gorm.DB, id string, bankID string) (bool, error) {
	if m.existsInBankFn != nil {
		return m.existsInBankFn(id, bankID)
	}
	return false, nil
}

func (m *mockTopicRepo) CountQuestionsInTopic(ctx context.Context, tx *gorm.DB, topicID string) (int64, error) {
	return 0, nil
}

type mockQuestionRepo struct {
	getByIDFn  func(id string) (*models.Question, error)
	activateFn func(ids []string) ([]string, error)
	existsFn   func(id string) (bool, error)
	created    []*models.Question
}

func (m *mockQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	m.created = append(m.created, question)
	return nil
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, repositories.ErrNotFound
}

func (m *mockQuestionRepo) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	return nil
}

func (m *mockQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error { return nil }

func (m *mockQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error) {
	return nil, nil
}

func (m *mockQuestionRepo) Activate(ctx context.Context, tx *gorm.DB, ids []string) ([]string, error) {
	if m.activateFn != nil {
		return m.activateFn(ids)
	}
	return nil, nil
}

func (m *mockQuestionRepo) Search(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return nil, 0, nil
}

func (m *mockQuestionRepo) ReplaceTopicLinks(ctx context.Context, tx *gorm.DB, questionID string, topicIDs []string) error {
	return nil
}

func (m *mockQuestionRepo) ReplaceTagLinks(ctx context.Context, tx *gorm.DB, questionID string, tags []string) error {
	return nil
}

func (m *mockQuestionRepo) GetTopicLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error) {
	return nil, nil
}

func (m *mockQuestionRepo) GetTagLinks(ctx context.Context, tx *gorm.DB, questionID string) ([]string, error) {
	return nil, nil
}

func (m *mockQuestionRepo) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, nil
}
