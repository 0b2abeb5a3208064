package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	Essay          QuestionType = "essay"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer, Essay:
		return true
	}
	return false
}

// AllQuestionTypes returns the recognized question types in catalog order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, TrueFalse, ShortAnswer, Essay}
}

// BloomLevel is a cognitive-demand category from Bloom's taxonomy.
type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

func (b BloomLevel) IsValid() bool {
	switch b {
	case BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate:
		return true
	}
	return false
}

// AllBloomLevels returns the six levels in taxonomy order, lowest demand first.
func AllBloomLevels() []BloomLevel {
	return []BloomLevel{BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate}
}

type QuestionStatus string

const (
	StatusDraft    QuestionStatus = "draft"
	StatusActive   QuestionStatus = "active"
	StatusArchived QuestionStatus = "archived"
)

func (s QuestionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

type Question struct {
	ID     string       `json:"id" gorm:"primaryKey;size:40"`
	BankID string       `json:"bank_id" gorm:"not null;size:40;index" validate:"required"`
	Type   QuestionType `json:"question_type" gorm:"column:question_type;not null;size:20;index" validate:"required,question_type"`

	Stem          string         `json:"stem" gorm:"type:text;not null" validate:"required"`
	Options       datatypes.JSON `json:"options,omitempty" gorm:"type:json"`
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null" validate:"required"`
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`

	Difficulty           float64        `json:"difficulty" gorm:"not null;default:0.5;index" validate:"min=0,max=1"`
	BloomLevel           BloomLevel     `json:"bloom_level,omitempty" gorm:"size:20;index" validate:"omitempty,bloom_level"`
	EstimatedTimeSeconds int            `json:"estimated_time_seconds" gorm:"not null;default:60" validate:"min=1"`
	Points               int            `json:"points" gorm:"not null;default:1" validate:"min=1"`
	Status               QuestionStatus `json:"status" gorm:"not null;default:draft;size:20;index" validate:"question_status"`

	// Usage counters for item-response analysis. Stored, never computed here.
	TimesUsed           int      `json:"times_used" gorm:"not null;default:0"`
	TimesCorrect        int      `json:"times_correct" gorm:"not null;default:0"`
	AvgTimeSeconds      *float64 `json:"avg_time_seconds,omitempty"`
	DiscriminationIndex *float64 `json:"discrimination_index,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relations
	Bank *QuestionBank `json:"-" gorm:"foreignKey:BankID"`

	// Computed fields (not stored)
	TopicIDs []string `json:"topic_ids" gorm:"-"`
	Tags     []string `json:"tags" gorm:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionTopic links a question to a topic. A question may link to topics
// anywhere in its bank's topic tree.
type QuestionTopic struct {
	QuestionID string `json:"question_id" gorm:"primaryKey;size:40"`
	TopicID    string `json:"topic_id" gorm:"primaryKey;size:40;index"`
}

func (QuestionTopic) TableName() string {
	return "question_topics"
}

// QuestionTag attaches a free-form label to a question. Tags are normalized
// to lowercase before storage.
type QuestionTag struct {
	QuestionID string `json:"question_id" gorm:"primaryKey;size:40"`
	Tag        string `json:"tag" gorm:"primaryKey;size:100;index"`
}

func (QuestionTag) TableName() string {
	return "question_tags"
}
