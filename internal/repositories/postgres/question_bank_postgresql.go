package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/question-bank-service/internal/cache"
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

type QuestionBankPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionBankPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionBankRepository {
	return &QuestionBankPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *QuestionBankPostgreSQL) Create(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(bank).Error; err != nil {
		return r.handleDBError(err, "create question bank")
	}

	cache.SafeInvalidatePattern(ctx, r.cacheManager.Bank, "list:*")

	return nil
}

func (r *QuestionBankPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.QuestionBank, error) {
	db := r.getDB(tx)

	var bank models.QuestionBank
	if err := db.WithContext(ctx).Where("id = ?", id).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question bank %s: %w", id, repositories.ErrNotFound)
		}
		return nil, r.handleDBError(err, "get question bank by id")
	}
	return &bank, nil
}

func (r *QuestionBankPostgreSQL) Update(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(bank).Error; err != nil {
		return r.handleDBError(err, "update question bank")
	}

	cache.InvalidateBankCache(ctx, r.cacheManager, bank.ID)

	return nil
}

// Delete removes a bank and everything it owns: topics, questions and the
// question link rows. Runs in a single transaction.
func (r *QuestionBankPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("bank_id = ?", id)

		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.QuestionTopic{}).Error; err != nil {
			return fmt.Errorf("failed to delete topic links: %w", err)
		}
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.QuestionTag{}).Error; err != nil {
			return fmt.Errorf("failed to delete tag links: %w", err)
		}
		if err := tx.Where("bank_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Where("bank_id = ?", id).Delete(&models.Topic{}).Error; err != nil {
			return fmt.Errorf("failed to delete topics: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.QuestionBank{}).Error; err != nil {
			return fmt.Errorf("failed to delete question bank: %w", err)
		}
		return nil
	})
	if err != nil {
		return r.handleDBError(err, "delete question bank")
	}

	cache.InvalidateBankCache(ctx, r.cacheManager, id)

	return nil
}

// ===== QUERY OPERATIONS =====

func (r *QuestionBankPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionBankFilters) ([]*models.QuestionBank, int64, error) {
	db := r.getDB(tx)

	query := db.WithContext(ctx).Model(&models.QuestionBank{})
	query = r.helpers.ApplyQuestionBankFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDBError(err, "count question banks")
	}

	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var banks []*models.QuestionBank
	if err := query.Find(&banks).Error; err != nil {
		return nil, 0, r.handleDBError(err, "list question banks")
	}

	// Derived counts come from aggregation, never stored counters
	for _, bank := range banks {
		questionCount, err := r.CountQuestionsInBank(ctx, tx, bank.ID)
		if err != nil {
			return nil, 0, err
		}
		topicCount, err := r.CountTopicsInBank(ctx, tx, bank.ID)
		if err != nil {
			return nil, 0, err
		}
		bank.QuestionCount = questionCount
		bank.TopicCount = topicCount
	}

	return banks, total, nil
}

func (r *QuestionBankPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.QuestionBank{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, r.handleDBError(err, "check question bank exists")
	}
	return count > 0, nil
}

// ===== STATISTICS =====

func (r *QuestionBankPostgreSQL) CountQuestionsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Question{}).Where("bank_id = ?", bankID).Count(&count).Error; err != nil {
		return 0, r.handleDBError(err, "count questions in bank")
	}
	return count, nil
}

func (r *QuestionBankPostgreSQL) CountTopicsInBank(ctx context.Context, tx *gorm.DB, bankID string) (int64, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Topic{}).Where("bank_id = ?", bankID).Count(&count).Error; err != nil {
		return 0, r.handleDBError(err, "count topics in bank")
	}
	return count, nil
}

type countRow struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// GetBankStats aggregates the bank's question distribution in one
// transaction so every count reflects the same snapshot.
func (r *QuestionBankPostgreSQL) GetBankStats(ctx context.Context, tx *gorm.DB, bankID string) (*repositories.QuestionBankStats, error) {
	db := r.getDB(tx)

	stats := &repositories.QuestionBankStats{
		ByType:       make(map[models.QuestionType]int64),
		ByStatus:     make(map[models.QuestionStatus]int64),
		ByDifficulty: make(map[string]int64),
		ByBloomLevel: make(map[string]int64),
		ByTopic:      make(map[string]int64),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Question{}).Where("bank_id = ?", bankID).Count(&stats.TotalQuestions).Error; err != nil {
			return fmt.Errorf("failed to count questions: %w", err)
		}

		var typeRows []countRow
		if err := tx.Model(&models.Question{}).
			Select("question_type AS key, COUNT(*) AS count").
			Where("bank_id = ?", bankID).
			Group("question_type").
			Scan(&typeRows).Error; err != nil {
			return fmt.Errorf("failed to count by type: %w", err)
		}
		for _, row := range typeRows {
			stats.ByType[models.QuestionType(row.Key)] = row.Count
		}

		var statusRows []countRow
		if err := tx.Model(&models.Question{}).
			Select("status AS key, COUNT(*) AS count").
			Where("bank_id = ?", bankID).
			Group("status").
			Scan(&statusRows).Error; err != nil {
			return fmt.Errorf("failed to count by status: %w", err)
		}
		for _, row := range statusRows {
			stats.ByStatus[models.QuestionStatus(row.Key)] = row.Count
		}

		// Bucket edges are half-open except the top bucket, which closes at 1.0
		var bucketRows []countRow
		if err := tx.Model(&models.Question{}).
			Select(`CASE
				WHEN difficulty < 0.3 THEN 'easy'
				WHEN difficulty < 0.7 THEN 'medium'
				ELSE 'hard'
			END AS key, COUNT(*) AS count`).
			Where("bank_id = ?", bankID).
			Group("key").
			Scan(&bucketRows).Error; err != nil {
			return fmt.Errorf("failed to count by difficulty bucket: %w", err)
		}
		for _, row := range bucketRows {
			stats.ByDifficulty[row.Key] = row.Count
		}

		var bloomRows []countRow
		if err := tx.Model(&models.Question{}).
			Select(`CASE WHEN bloom_level IS NULL OR bloom_level = '' THEN 'unset' ELSE bloom_level END AS key, COUNT(*) AS count`).
			Where("bank_id = ?", bankID).
			Group("key").
			Scan(&bloomRows).Error; err != nil {
			return fmt.Errorf("failed to count by bloom level: %w", err)
		}
		for _, row := range bloomRows {
			stats.ByBloomLevel[row.Key] = row.Count
		}

		// A question counts toward every topic it links to, so this sum may
		// exceed the total question count
		var topicRows []countRow
		if err := tx.Model(&models.QuestionTopic{}).
			Select("topics.name AS key, COUNT(*) AS count").
			Joins("JOIN topics ON topics.id = question_topics.topic_id").
			Joins("JOIN questions ON questions.id = question_topics.question_id").
			Where("questions.bank_id = ?", bankID).
			Group("topics.name").
			Scan(&topicRows).Error; err != nil {
			return fmt.Errorf("failed to count by topic: %w", err)
		}
		for _, row := range topicRows {
			stats.ByTopic[row.Key] = row.Count
		}

		if stats.TotalQuestions > 0 {
			var avg *float64
			if err := tx.Model(&models.Question{}).
				Select("AVG(difficulty)").
				Where("bank_id = ?", bankID).
				Scan(&avg).Error; err != nil {
				return fmt.Errorf("failed to average difficulty: %w", err)
			}
			if avg != nil {
				stats.AverageDifficulty = *avg
			}
		}

		return nil
	})
	if err != nil {
		return nil, r.handleDBError(err, "get bank stats")
	}

	return stats, nil
}

// ===== HELPERS =====

func (r *QuestionBankPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *QuestionBankPostgreSQL) handleDBError(err error, operation string) error {
	return handleDBError(err, operation)
}

// handleDBError is a package-level helper for handling database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
