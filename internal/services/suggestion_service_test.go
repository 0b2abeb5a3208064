package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

func newSuggestionTestService(repo *mockRepository) SuggestionService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewSuggestionService(repo, logger, validator.New())
}

func suggestionTestBank() *models.QuestionBank {
	return &models.QuestionBank{
		ID:      "bank-12345678",
		Name:    "Biology 10",
		Subject: "Biology",
	}
}

func TestSuggestionService_Suggest(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository()
	repo.banks.getByIDFn = func(id string) (*models.QuestionBank, error) {
		if id == "bank-12345678" {
			return suggestionTestBank(), nil
		}
		return nil, repositories.ErrNotFound
	}
	service := newSuggestionTestService(repo)

	t.Run("defaults to five mixed suggestions over all levels", func(t *testing.T) {
		resp, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID: "bank-12345678",
			Topic:  "Photosynthesis",
		})
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}

		if len(resp.Suggestions) != 5 {
			t.Fatalf("Expected 5 suggestions, got %d", len(resp.Suggestions))
		}
		if resp.Difficulty != "mixed" {
			t.Errorf("Expected difficulty 'mixed', got %q", resp.Difficulty)
		}
		if resp.Subject != "Biology" {
			t.Errorf("Expected subject 'Biology', got %q", resp.Subject)
		}

		wantLevels := []models.BloomLevel{
			models.BloomRemember, models.BloomUnderstand, models.BloomApply,
			models.BloomAnalyze, models.BloomEvaluate,
		}
		wantLabels := []string{"easy", "medium", "hard", "easy", "medium"}
		for i, s := range resp.Suggestions {
			if s.Number != i+1 {
				t.Errorf("Suggestion %d: expected number %d, got %d", i, i+1, s.Number)
			}
			if s.BloomLevel != wantLevels[i] {
				t.Errorf("Suggestion %d: expected level %s, got %s", i, wantLevels[i], s.BloomLevel)
			}
			if s.DifficultyLabel != wantLabels[i] {
				t.Errorf("Suggestion %d: expected label %s, got %s", i, wantLabels[i], s.DifficultyLabel)
			}
		}
	})

	t.Run("rotates through requested bloom levels", func(t *testing.T) {
		resp, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID:      "bank-12345678",
			Topic:       "Cell Division",
			Count:       5,
			Difficulty:  "easy",
			BloomLevels: []string{"remember", "apply"},
		})
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}

		wantLevels := []models.BloomLevel{
			models.BloomRemember, models.BloomApply, models.BloomRemember,
			models.BloomApply, models.BloomRemember,
		}
		for i, s := range resp.Suggestions {
			if s.BloomLevel != wantLevels[i] {
				t.Errorf("Suggestion %d: expected level %s, got %s", i, wantLevels[i], s.BloomLevel)
			}
			if s.Difficulty != 0.3 {
				t.Errorf("Suggestion %d: expected difficulty 0.3, got %v", i, s.Difficulty)
			}
			if s.DifficultyLabel != "easy" {
				t.Errorf("Suggestion %d: expected label 'easy', got %q", i, s.DifficultyLabel)
			}
		}
	})

	t.Run("maps bloom levels to question types", func(t *testing.T) {
		resp, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID:      "bank-12345678",
			Topic:       "Genetics",
			Count:       6,
			BloomLevels: []string{"remember", "understand", "apply", "analyze", "evaluate", "create"},
		})
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}

		wantTypes := []models.QuestionType{
			models.MultipleChoice, models.MultipleChoice,
			models.ShortAnswer, models.ShortAnswer,
			models.Essay, models.Essay,
		}
		for i, s := range resp.Suggestions {
			if s.QuestionType != wantTypes[i] {
				t.Errorf("Suggestion %d: expected type %s, got %s", i, wantTypes[i], s.QuestionType)
			}
		}
	})

	t.Run("prompt carries the level description and topic", func(t *testing.T) {
		resp, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID:      "bank-12345678",
			Topic:       "Photosynthesis",
			Count:       1,
			BloomLevels: []string{"remember"},
		})
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}

		want := "Create a question that asks students to recall facts, terms, concepts related to Photosynthesis."
		if resp.Suggestions[0].Prompt != want {
			t.Errorf("Expected prompt %q, got %q", want, resp.Suggestions[0].Prompt)
		}
		if resp.Suggestions[0].BloomDescription != "recall facts, terms, concepts" {
			t.Errorf("Unexpected description %q", resp.Suggestions[0].BloomDescription)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		req := &SuggestQuestionsRequest{
			BankID:     "bank-12345678",
			Topic:      "Evolution",
			Count:      7,
			Difficulty: "mixed",
		}
		first, err := service.Suggest(ctx, req)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		second, err := service.Suggest(ctx, req)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Error("Expected identical responses for identical requests")
		}
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		_, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID:     "bank-12345678",
			Topic:      "Photosynthesis",
			Difficulty: "impossible",
		})

		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})

	t.Run("returns not found for unknown bank", func(t *testing.T) {
		_, err := service.Suggest(ctx, &SuggestQuestionsRequest{
			BankID: "bank-missing0",
			Topic:  "Photosynthesis",
		})
		if !errors.Is(err, ErrBankNotFound) {
			t.Fatalf("Expected ErrBankNotFound, got %v", err)
		}
	})
}
