package validator

import (
	"github.com/SAP-F-2025/question-bank-service/internal/models"
)

// BankCreateRequest represents the request structure for creating question banks
type BankCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Subject     string `json:"subject" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	GradeLevel  string `json:"grade_level" validate:"omitempty,max=50"`
}

// TopicCreateRequest represents the request structure for creating topics
type TopicCreateRequest struct {
	BankID        string  `json:"bank_id" validate:"required"`
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Description   string  `json:"description" validate:"omitempty,max=1000"`
	ParentTopicID *string `json:"parent_topic_id"`
}

// QuestionCreateRequest represents the request structure for creating questions
type QuestionCreateRequest struct {
	BankID               string              `json:"bank_id" validate:"required"`
	Type                 models.QuestionType `json:"question_type" validate:"required,question_type"`
	Stem                 string              `json:"stem" validate:"required,min=1"`
	Options              []string            `json:"options" validate:"omitempty,max=10,dive,max=500"`
	CorrectAnswer        string              `json:"correct_answer" validate:"required"`
	Explanation          string              `json:"explanation" validate:"omitempty,max=2000"`
	Difficulty           *float64            `json:"difficulty" validate:"omitempty,difficulty_range"`
	BloomLevel           models.BloomLevel   `json:"bloom_level" validate:"omitempty,bloom_level"`
	EstimatedTimeSeconds *int                `json:"estimated_time_seconds" validate:"omitempty,min=1,max=7200"`
	Points               *int                `json:"points" validate:"omitempty,min=1,max=100"`
	TopicIDs             []string            `json:"topic_ids" validate:"omitempty,max=20"`
	Tags                 []string            `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

// QuestionUpdateRequest represents a sparse update. Only non-nil fields
// change; TopicIDs and Tags replace the full link set when present.
type QuestionUpdateRequest struct {
	Type                 *models.QuestionType   `json:"question_type" validate:"omitempty,question_type"`
	Stem                 *string                `json:"stem" validate:"omitempty,min=1"`
	Options              []string               `json:"options" validate:"omitempty,max=10,dive,max=500"`
	CorrectAnswer        *string                `json:"correct_answer" validate:"omitempty,min=1"`
	Explanation          *string                `json:"explanation" validate:"omitempty,max=2000"`
	Difficulty           *float64               `json:"difficulty" validate:"omitempty,difficulty_range"`
	BloomLevel           *models.BloomLevel     `json:"bloom_level" validate:"omitempty,bloom_level"`
	EstimatedTimeSeconds *int                   `json:"estimated_time_seconds" validate:"omitempty,min=1,max=7200"`
	Points               *int                   `json:"points" validate:"omitempty,min=1,max=100"`
	Status               *models.QuestionStatus `json:"status" validate:"omitempty,question_status"`
	TopicIDs             []string               `json:"topic_ids" validate:"omitempty,max=20"`
	Tags                 []string               `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

// SuggestionRequest represents the request structure for question suggestions
type SuggestionRequest struct {
	BankID      string   `json:"bank_id" validate:"required"`
	Topic       string   `json:"topic" validate:"required,min=1,max=255"`
	Count       int      `json:"count" validate:"omitempty,min=1,max=50"`
	Difficulty  string   `json:"difficulty" validate:"omitempty,suggestion_difficulty"`
	BloomLevels []string `json:"bloom_levels" validate:"omitempty,max=6,dive,bloom_level"`
}
