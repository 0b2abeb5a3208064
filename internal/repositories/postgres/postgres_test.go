package postgres

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Connections are capped at one so every query sees the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.QuestionBank{},
		&models.Topic{},
		&models.Question{},
		&models.QuestionTopic{},
		&models.QuestionTag{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func seedBank(t *testing.T, db *gorm.DB, id, name, subject string) *models.QuestionBank {
	t.Helper()

	bank := &models.QuestionBank{ID: id, Name: name, Subject: subject}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to seed bank: %v", err)
	}
	return bank
}

func seedTopic(t *testing.T, db *gorm.DB, id, bankID, name string, parentID *string) *models.Topic {
	t.Helper()

	topic := &models.Topic{ID: id, BankID: bankID, Name: name, ParentTopicID: parentID}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("failed to seed topic: %v", err)
	}
	return topic
}

func seedQuestion(t *testing.T, db *gorm.DB, question *models.Question) *models.Question {
	t.Helper()

	if question.Type == "" {
		question.Type = models.ShortAnswer
	}
	if question.Stem == "" {
		question.Stem = "What is the powerhouse of the cell?"
	}
	if question.CorrectAnswer == "" {
		question.CorrectAnswer = "The mitochondria"
	}
	if question.Status == "" {
		question.Status = models.StatusDraft
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
	return question
}
