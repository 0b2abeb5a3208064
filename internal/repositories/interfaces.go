package repositories

import (
	"github.com/SAP-F-2025/question-bank-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionBankFilters struct {
	Subject    *string `json:"subject"`
	GradeLevel *string `json:"grade_level"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
	SortBy     string  `json:"sort_by"`    // "created_at", "name", "subject"
	SortOrder  string  `json:"sort_order"` // "asc", "desc"
}

// QuestionFilters narrows a question search. Every set field narrows the
// result (AND semantics); Tags matches questions carrying any of the given
// tags; SearchText is a case-insensitive substring match against stem or
// explanation.
type QuestionFilters struct {
	BankID        *string                `json:"bank_id"`
	TopicID       *string                `json:"topic_id"`
	Type          *models.QuestionType   `json:"type"`
	BloomLevel    *models.BloomLevel     `json:"bloom_level"`
	Status        *models.QuestionStatus `json:"status"`
	DifficultyMin *float64               `json:"difficulty_min"`
	DifficultyMax *float64               `json:"difficulty_max"`
	Tags          []string               `json:"tags"`
	SearchText    *string                `json:"search_text"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
	SortBy        string                 `json:"sort_by"`
	SortOrder     string                 `json:"sort_order"`
}

// ===== STATISTICS STRUCTS =====

// QuestionBankStats is a consistent snapshot of a bank's question
// distribution. Per-topic counts may sum past TotalQuestions because a
// question counts toward every topic it links to.
type QuestionBankStats struct {
	TotalQuestions    int64                           `json:"total_questions"`
	ByType            map[models.QuestionType]int64   `json:"by_type"`
	ByStatus          map[models.QuestionStatus]int64 `json:"by_status"`
	ByDifficulty      map[string]int64                `json:"by_difficulty"`  // "easy", "medium", "hard"
	ByBloomLevel      map[string]int64                `json:"by_bloom_level"` // six levels plus "unset"
	ByTopic           map[string]int64                `json:"by_topic"`       // topic name -> count
	AverageDifficulty float64                         `json:"average_difficulty"`
}
