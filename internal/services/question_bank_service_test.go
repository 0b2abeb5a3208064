package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/SAP-F-2025/question-bank-service/internal/events"
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

func newBankTestService(repo *mockRepository) (QuestionBankService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	return NewQuestionBankService(repo, nil, logger, validator.New(), publisher), publisher
}

func TestQuestionBankService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates bank and publishes event", func(t *testing.T) {
		repo := newMockRepository()
		service, publisher := newBankTestService(repo)

		resp, err := service.Create(ctx, &CreateQuestionBankRequest{
			Name:    "Biology 10",
			Subject: "Biology",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if !strings.HasPrefix(resp.ID, "bank-") {
			t.Errorf("Expected bank- prefixed id, got %q", resp.ID)
		}
		if len(repo.banks.created) != 1 {
			t.Fatalf("Expected 1 stored bank, got %d", len(repo.banks.created))
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.BankCreated {
			t.Errorf("Expected one %s event, got %d events", events.BankCreated, len(published))
		}
		if published[0].Source != "question-bank-service" {
			t.Errorf("Unexpected event source %q", published[0].Source)
		}
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		repo := newMockRepository()
		service, _ := newBankTestService(repo)

		_, err := service.Create(ctx, &CreateQuestionBankRequest{Name: "No Subject"})

		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})
}

func TestQuestionBankService_GetByID_NotFound(t *testing.T) {
	repo := newMockRepository()
	service, _ := newBankTestService(repo)

	_, err := service.GetByID(context.Background(), "bank-missing0")
	if !errors.Is(err, ErrBankNotFound) {
		t.Fatalf("Expected ErrBankNotFound, got %v", err)
	}
}

func TestQuestionBankService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing bank", func(t *testing.T) {
		repo := newMockRepository()
		repo.banks.existsFn = func(id string) (bool, error) { return true, nil }
		service, publisher := newBankTestService(repo)

		if err := service.Delete(ctx, "bank-12345678"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.BankDeleted {
			t.Errorf("Expected one %s event, got %d events", events.BankDeleted, len(published))
		}
	})

	t.Run("returns not found for unknown bank", func(t *testing.T) {
		repo := newMockRepository()
		service, _ := newBankTestService(repo)

		err := service.Delete(ctx, "bank-missing0")
		if !errors.Is(err, ErrBankNotFound) {
			t.Fatalf("Expected ErrBankNotFound, got %v", err)
		}
	})
}

func TestQuestionBankService_GetStats(t *testing.T) {
	repo := newMockRepository()
	repo.banks.getByIDFn = func(id string) (*models.QuestionBank, error) {
		return &models.QuestionBank{ID: id, Name: "Biology 10", Subject: "Biology"}, nil
	}
	repo.banks.statsFn = func(bankID string) (*repositories.QuestionBankStats, error) {
		return &repositories.QuestionBankStats{
			TotalQuestions: 3,
			ByDifficulty:   map[string]int64{"easy": 1, "medium": 2},
		}, nil
	}
	service, _ := newBankTestService(repo)

	stats, err := service.GetStats(context.Background(), "bank-12345678")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.BankName != "Biology 10" {
		t.Errorf("Expected bank name in stats, got %q", stats.BankName)
	}
	if stats.TotalQuestions != 3 {
		t.Errorf("Expected 3 total questions, got %d", stats.TotalQuestions)
	}
}
