package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

// ===== REQUEST DTOs =====

type CreateQuestionBankRequest = validator.BankCreateRequest
type CreateTopicRequest = validator.TopicCreateRequest
type CreateQuestionRequest = validator.QuestionCreateRequest
type UpdateQuestionRequest = validator.QuestionUpdateRequest
type SuggestQuestionsRequest = validator.SuggestionRequest

type ActivateQuestionsRequest struct {
	QuestionIDs []string `json:"question_ids" validate:"required,min=1,max=100"`
}

type ListQuestionBanksRequest struct {
	Subject    *string `json:"subject"`
	GradeLevel *string `json:"grade_level"`
	Limit      int     `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int     `json:"offset" validate:"omitempty,min=0"`
}

// SearchQuestionsRequest carries the conjunctive search criteria. Every set
// field narrows the result.
type SearchQuestionsRequest struct {
	BankID        *string                `json:"bank_id"`
	TopicID       *string                `json:"topic_id"`
	Type          *models.QuestionType   `json:"question_type" validate:"omitempty,question_type"`
	BloomLevel    *models.BloomLevel     `json:"bloom_level" validate:"omitempty,bloom_level"`
	Status        *models.QuestionStatus `json:"status" validate:"omitempty,question_status"`
	DifficultyMin *float64               `json:"difficulty_min" validate:"omitempty,difficulty_range"`
	DifficultyMax *float64               `json:"difficulty_max" validate:"omitempty,difficulty_range"`
	Tags          []string               `json:"tags" validate:"omitempty,max=10"`
	SearchText    *string                `json:"search_text"`
	Limit         int                    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset        int                    `json:"offset" validate:"omitempty,min=0"`
}

// ===== RESPONSE DTOs =====

type QuestionBankResponse struct {
	*models.QuestionBank
}

type QuestionBankListResponse struct {
	Banks []*QuestionBankResponse `json:"banks"`
	Total int64                   `json:"total"`
}

type TopicResponse struct {
	*models.Topic
}

type TopicListResponse struct {
	Topics []*TopicResponse `json:"topics"`
	Total  int64            `json:"total"`
}

// QuestionResponse carries a question with its options decoded back into an
// ordered list. CorrectAnswer and Explanation are nil when the caller asked
// to hide answers; they stay intact in storage.
type QuestionResponse struct {
	*models.Question
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Explanation   *string  `json:"explanation,omitempty"`
}

type QuestionListResponse struct {
	Questions []*QuestionResponse `json:"questions"`
	Total     int64               `json:"total"`
	Limit     int                 `json:"limit"`
	Offset    int                 `json:"offset"`
}

type ActivateQuestionsResponse struct {
	ActivatedCount int      `json:"activated_count"`
	NotFoundIDs    []string `json:"not_found_ids"`
}

type BankStatsResponse struct {
	BankID   string `json:"bank_id"`
	BankName string `json:"bank_name"`
	*repositories.QuestionBankStats
}

// QuestionSuggestion is one generated question skeleton.
type QuestionSuggestion struct {
	Number           int                 `json:"number"`
	BloomLevel       models.BloomLevel   `json:"bloom_level"`
	BloomDescription string              `json:"bloom_description"`
	Difficulty       float64             `json:"difficulty"`
	DifficultyLabel  string              `json:"difficulty_label"`
	QuestionType     models.QuestionType `json:"question_type"`
	Prompt           string              `json:"prompt"`
}

type SuggestionResponse struct {
	BankID      string               `json:"bank_id"`
	BankName    string               `json:"bank_name"`
	Subject     string               `json:"subject"`
	Topic       string               `json:"topic"`
	Difficulty  string               `json:"difficulty"`
	Suggestions []QuestionSuggestion `json:"suggestions"`
}

// BloomLevelInfo is a static reference entry for one taxonomy level.
type BloomLevelInfo struct {
	Level           models.BloomLevel `json:"level"`
	Description     string            `json:"description"`
	ExampleVerbs    []string          `json:"example_verbs"`
	ExampleQuestion string            `json:"example_question"`
	WritingTip      string            `json:"writing_tip"`
}

// QuestionTypeInfo is a static reference entry for one question type.
type QuestionTypeInfo struct {
	Type      models.QuestionType `json:"type"`
	WhenToUse string              `json:"when_to_use"`
	Format    string              `json:"format"`
	Example   string              `json:"example"`
}

type ImportResult struct {
	ImportedCount int      `json:"imported_count"`
	Errors        []string `json:"errors,omitempty"`
}

// ===== SERVICE INTERFACES =====

type QuestionBankService interface {
	Create(ctx context.Context, req *CreateQuestionBankRequest) (*QuestionBankResponse, error)
	GetByID(ctx context.Context, id string) (*QuestionBankResponse, error)
	List(ctx context.Context, req *ListQuestionBanksRequest) (*QuestionBankListResponse, error)
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context, id string) (*BankStatsResponse, error)
}

type TopicService interface {
	Create(ctx context.Context, req *CreateTopicRequest) (*TopicResponse, error)
	GetByID(ctx context.Context, id string) (*TopicResponse, error)
	ListByBank(ctx context.Context, bankID string) (*TopicListResponse, error)
	Delete(ctx context.Context, id string) error
}

type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error)
	GetByID(ctx context.Context, id string, showAnswer bool) (*QuestionResponse, error)
	Update(ctx context.Context, id string, req *UpdateQuestionRequest) (*QuestionResponse, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req *SearchQuestionsRequest) (*QuestionListResponse, error)
	Activate(ctx context.Context, req *ActivateQuestionsRequest) (*ActivateQuestionsResponse, error)
}

type SuggestionService interface {
	Suggest(ctx context.Context, req *SuggestQuestionsRequest) (*SuggestionResponse, error)
}

type ReferenceService interface {
	BloomTaxonomy() []BloomLevelInfo
	QuestionTypes() []QuestionTypeInfo
}

type ImportExportService interface {
	ExportBank(ctx context.Context, bankID string) ([]byte, error)
	ImportQuestions(ctx context.Context, bankID string, r io.Reader) (*ImportResult, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager provides access to all services with lifecycle management.
type ServiceManager interface {
	QuestionBank() QuestionBankService
	Topic() TopicService
	Question() QuestionService
	Suggestion() SuggestionService
	Reference() ReferenceService
	ImportExport() ImportExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
