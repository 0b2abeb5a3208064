package postgres

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

func TestTopicPostgreSQL_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicPostgreSQL(db)
	ctx := context.Background()

	seedBank(t, db, "bank-00000001", "Biology 10", "Biology")

	topic := &models.Topic{
		ID:     "topic-00000001",
		BankID: "bank-00000001",
		Name:   "Cells",
	}
	if err := repo.Create(ctx, nil, topic); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, "topic-00000001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Cells" || got.BankID != "bank-00000001" {
		t.Errorf("Unexpected topic: %+v", got)
	}

	if _, err := repo.GetByID(ctx, nil, "topic-missing000"); !repositories.IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestTopicPostgreSQL_ExistsInBank(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicPostgreSQL(db)
	ctx := context.Background()

	seedBank(t, db, "bank-00000001", "Biology 10", "Biology")
	seedBank(t, db, "bank-00000002", "Physics 11", "Physics")
	seedTopic(t, db, "topic-00000001", "bank-00000001", "Cells", nil)

	ok, err := repo.ExistsInBank(ctx, nil, "topic-00000001", "bank-00000001")
	if err != nil {
		t.Fatalf("ExistsInBank failed: %v", err)
	}
	if !ok {
		t.Error("Expected topic to exist in its own bank")
	}

	ok, err = repo.ExistsInBank(ctx, nil, "topic-00000001", "bank-00000002")
	if err != nil {
		t.Fatalf("ExistsInBank failed: %v", err)
	}
	if ok {
		t.Error("Expected topic not to exist in another bank")
	}
}

func TestTopicPostgreSQL_DeleteDetachesChildrenAndKeepsQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicPostgreSQL(db)
	ctx := context.Background()

	seedBank(t, db, "bank-00000001", "Biology 10", "Biology")
	seedTopic(t, db, "topic-00000001", "bank-00000001", "Cells", nil)
	parentID := "topic-00000001"
	seedTopic(t, db, "topic-00000002", "bank-00000001", "Organelles", &parentID)
	seedQuestion(t, db, &models.Question{ID: "question-00000001", BankID: "bank-00000001"})
	if err := db.Create(&models.QuestionTopic{QuestionID: "question-00000001", TopicID: "topic-00000001"}).Error; err != nil {
		t.Fatalf("failed to link topic: %v", err)
	}

	if err := repo.Delete(ctx, nil, "topic-00000001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Child becomes a root
	child, err := repo.GetByID(ctx, nil, "topic-00000002")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if child.ParentTopicID != nil {
		t.Errorf("Expected child re-rooted, got parent %v", *child.ParentTopicID)
	}

	// The question survives, only the link is gone
	var questionCount, linkCount int64
	db.Model(&models.Question{}).Count(&questionCount)
	db.Model(&models.QuestionTopic{}).Count(&linkCount)
	if questionCount != 1 {
		t.Errorf("Expected question to survive topic deletion, count=%d", questionCount)
	}
	if linkCount != 0 {
		t.Errorf("Expected topic links removed, count=%d", linkCount)
	}
}

func TestTopicPostgreSQL_GetByBank(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicPostgreSQL(db)
	ctx := context.Background()

	seedBank(t, db, "bank-00000001", "Biology 10", "Biology")
	seedBank(t, db, "bank-00000002", "Physics 11", "Physics")
	seedTopic(t, db, "topic-00000001", "bank-00000001", "Photosynthesis", nil)
	seedTopic(t, db, "topic-00000002", "bank-00000001", "Cells", nil)
	seedTopic(t, db, "topic-00000003", "bank-00000002", "Forces", nil)
	seedQuestion(t, db, &models.Question{ID: "question-00000001", BankID: "bank-00000001"})
	seedQuestion(t, db, &models.Question{ID: "question-00000002", BankID: "bank-00000001"})
	for _, qid := range []string{"question-00000001", "question-00000002"} {
		if err := db.Create(&models.QuestionTopic{QuestionID: qid, TopicID: "topic-00000002"}).Error; err != nil {
			t.Fatalf("failed to link topic: %v", err)
		}
	}

	topics, err := repo.GetByBank(ctx, nil, "bank-00000001")
	if err != nil {
		t.Fatalf("GetByBank failed: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}
	// Name-ascending order
	if topics[0].Name != "Cells" || topics[1].Name != "Photosynthesis" {
		t.Errorf("Unexpected order: %s, %s", topics[0].Name, topics[1].Name)
	}
	if topics[0].QuestionCount != 2 {
		t.Errorf("Expected question count 2 for Cells, got %d", topics[0].QuestionCount)
	}
	if topics[1].QuestionCount != 0 {
		t.Errorf("Expected question count 0 for Photosynthesis, got %d", topics[1].QuestionCount)
	}
}

func TestTopicPostgreSQL_GetChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicPostgreSQL(db)
	ctx := context.Background()

	seedBank(t, db, "bank-00000001", "Biology 10", "Biology")
	seedTopic(t, db, "topic-00000001", "bank-00000001", "Cells", nil)
	parentID := "topic-00000001"
	seedTopic(t, db, "topic-00000002", "bank-00000001", "Organelles", &parentID)
	seedTopic(t, db, "topic-00000003", "bank-00000001", "Membranes", &parentID)
	seedTopic(t, db, "topic-00000004", "bank-00000001", "Energy", nil)

	children, err := repo.GetChildren(ctx, nil, "topic-00000001")
	if err != nil {
		t.Fatalf("GetChildren failed: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	if children[0].Name != "Membranes" || children[1].Name != "Organelles" {
		t.Errorf("Unexpected order: %s, %s", children[0].Name, children[1].Name)
	}
}
