package postgres

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers contains common database operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// CountQuestionsByBank counts questions owned by a bank
func (h *SharedHelpers) CountQuestionsByBank(ctx context.Context, bankID string) (int64, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("bank_id = ?", bankID).
		Count(&count).Error
	return count, err
}

// CountTopicsByBank counts topics owned by a bank
func (h *SharedHelpers) CountTopicsByBank(ctx context.Context, bankID string) (int64, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("bank_id = ?", bankID).
		Count(&count).Error
	return count, err
}

// ApplyQuestionBankFilters applies common filters to bank queries
func (h *SharedHelpers) ApplyQuestionBankFilters(query *gorm.DB, filters repositories.QuestionBankFilters) *gorm.DB {
	if filters.Subject != nil {
		query = query.Where("subject = ?", *filters.Subject)
	}
	if filters.GradeLevel != nil {
		query = query.Where("grade_level = ?", *filters.GradeLevel)
	}
	return query
}

// ApplyQuestionFilters applies the conjunctive question search filters.
// Tags match with OR semantics inside the single tags clause; search text
// is a case-insensitive substring match on stem or explanation.
func (h *SharedHelpers) ApplyQuestionFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.BankID != nil {
		query = query.Where("questions.bank_id = ?", *filters.BankID)
	}
	if filters.TopicID != nil {
		query = query.Where("questions.id IN (?)",
			h.db.Model(&models.QuestionTopic{}).
				Select("question_id").
				Where("topic_id = ?", *filters.TopicID))
	}
	if filters.Type != nil {
		query = query.Where("questions.question_type = ?", *filters.Type)
	}
	if filters.BloomLevel != nil {
		query = query.Where("questions.bloom_level = ?", *filters.BloomLevel)
	}
	if filters.Status != nil {
		query = query.Where("questions.status = ?", *filters.Status)
	}
	if filters.DifficultyMin != nil {
		query = query.Where("questions.difficulty >= ?", *filters.DifficultyMin)
	}
	if filters.DifficultyMax != nil {
		query = query.Where("questions.difficulty <= ?", *filters.DifficultyMax)
	}
	if len(filters.Tags) > 0 {
		tags := make([]string, 0, len(filters.Tags))
		for _, t := range filters.Tags {
			tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
		}
		query = query.Where("questions.id IN (?)",
			h.db.Model(&models.QuestionTag{}).
				Select("question_id").
				Where("tag IN ?", tags))
	}
	if filters.SearchText != nil && *filters.SearchText != "" {
		pattern := "%" + strings.ToLower(*filters.SearchText) + "%"
		query = query.Where("LOWER(questions.stem) LIKE ? OR LOWER(questions.explanation) LIKE ?", pattern, pattern)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at":    true,
		"updated_at":    true,
		"id":            true,
		"name":          true,
		"subject":       true,
		"status":        true,
		"difficulty":    true,
		"question_type": true,
	}

	// Validate and set sort column
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	// Validate and set sort order
	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// NormalizeTags lowercases, trims and de-duplicates tag labels, preserving
// first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
