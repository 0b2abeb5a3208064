package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

type TopicPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewTopicPostgreSQL(db *gorm.DB) repositories.TopicRepository {
	return &TopicPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *TopicPostgreSQL) Create(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(topic).Error; err != nil {
		return handleDBError(err, "create topic")
	}
	return nil
}

func (r *TopicPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error) {
	db := r.getDB(tx)

	var topic models.Topic
	if err := db.WithContext(ctx).Where("id = ?", id).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic %s: %w", id, repositories.ErrNotFound)
		}
		return nil, handleDBError(err, "get topic by id")
	}
	return &topic, nil
}

func (r *TopicPostgreSQL) Update(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(topic).Error; err != nil {
		return handleDBError(err, "update topic")
	}
	return nil
}

// Delete removes a topic, its question links, and re-roots its children.
// Linked questions survive the topic.
func (r *TopicPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.QuestionTopic{}).Error; err != nil {
			return fmt.Errorf("failed to delete question links: %w", err)
		}
		if err := tx.Model(&models.Topic{}).Where("parent_topic_id = ?", id).Update("parent_topic_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach child topics: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Topic{}).Error; err != nil {
			return fmt.Errorf("failed to delete topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return handleDBError(err, "delete topic")
	}
	return nil
}

// ===== HIERARCHY OPERATIONS =====

func (r *TopicPostgreSQL) GetByBank(ctx context.Context, tx *gorm.DB, bankID string) ([]*models.Topic, error) {
	db := r.getDB(tx)

	var topics []*models.Topic
	if err := db.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Order("name ASC").
		Find(&topics).Error; err != nil {
		return nil, handleDBError(err, "list topics by bank")
	}

	for _, topic := range topics {
		count, err := r.CountQuestionsInTopic(ctx, tx, topic.ID)
		if err != nil {
			return nil, err
		}
		topic.QuestionCount = count
	}

	return topics, nil
}

func (r *TopicPostgreSQL) GetChildren(ctx context.Context, tx *gorm.DB, parentID string) ([]*models.Topic, error) {
	db := r.getDB(tx)

	var topics []*models.Topic
	if err := db.WithContext(ctx).
		Where("parent_topic_id = ?", parentID).
		Order("name ASC").
		Find(&topics).Error; err != nil {
		return nil, handleDBError(err, "list child topics")
	}
	return topics, nil
}

// ===== VALIDATION =====

func (r *TopicPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check topic exists")
	}
	return count > 0, nil
}

func (r *TopicPostgreSQL) ExistsInBank(ctx context.Context, tx *gorm.DB, id string, bankID string) (bool, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Topic{}).
		Where("id = ? AND bank_id = ?", id, bankID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check topic exists in bank")
	}
	return count > 0, nil
}

// ===== STATISTICS =====

func (r *TopicPostgreSQL) CountQuestionsInTopic(ctx context.Context, tx *gorm.DB, topicID string) (int64, error) {
	db := r.getDB(tx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.QuestionTopic{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count questions in topic")
	}
	return count, nil
}

func (r *TopicPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
