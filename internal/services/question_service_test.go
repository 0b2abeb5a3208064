package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/question-bank-service/internal/events"
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

func newQuestionTestService(repo *mockRepository) (QuestionService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	return NewQuestionService(repo, nil, logger, validator.New(), publisher), publisher
}

func validCreateRequest() *CreateQuestionRequest {
	return &CreateQuestionRequest{
		BankID:        "bank-12345678",
		Type:          models.MultipleChoice,
		Stem:          "Which planet is closest to the sun?",
		Options:       []string{"Venus", "Mercury", "Mars"},
		CorrectAnswer: "Mercury",
	}
}

func TestQuestionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults on create", func(t *testing.T) {
		repo := newMockRepository()
		repo.banks.existsFn = func(id string) (bool, error) { return true, nil }
		service, publisher := newQuestionTestService(repo)

		resp, err := service.Create(ctx, validCreateRequest())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if resp.Question.Difficulty != 0.5 {
			t.Errorf("Expected default difficulty 0.5, got %v", resp.Question.Difficulty)
		}
		if resp.Question.Status != models.StatusDraft {
			t.Errorf("Expected status draft, got %s", resp.Question.Status)
		}
		if resp.Question.EstimatedTimeSeconds != 60 {
			t.Errorf("Expected estimated time 60, got %d", resp.Question.EstimatedTimeSeconds)
		}
		if resp.Question.Points != 1 {
			t.Errorf("Expected 1 point, got %d", resp.Question.Points)
		}
		if resp.CorrectAnswer == nil || *resp.CorrectAnswer != "Mercury" {
			t.Error("Creator response should include the correct answer")
		}
		if !reflect.DeepEqual(resp.Options, []string{"Venus", "Mercury", "Mars"}) {
			t.Errorf("Unexpected options %v", resp.Options)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.QuestionCreated {
			t.Errorf("Expected one %s event, got %v", events.QuestionCreated, published)
		}
	})

	t.Run("rejects multiple choice with too few options", func(t *testing.T) {
		repo := newMockRepository()
		repo.banks.existsFn = func(id string) (bool, error) { return true, nil }
		service, _ := newQuestionTestService(repo)

		req := validCreateRequest()
		req.Options = []string{"Mercury"}

		_, err := service.Create(ctx, req)
		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
		if len(repo.questions.created) != 0 {
			t.Error("Nothing should be stored when validation fails")
		}
	})

	t.Run("rejects true/false with options", func(t *testing.T) {
		repo := newMockRepository()
		repo.banks.existsFn = func(id string) (bool, error) { return true, nil }
		service, _ := newQuestionTestService(repo)

		req := validCreateRequest()
		req.Type = models.TrueFalse
		req.Options = []string{"true", "false"}
		req.CorrectAnswer = "true"

		_, err := service.Create(ctx, req)
		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})

	t.Run("returns not found for missing bank", func(t *testing.T) {
		repo := newMockRepository()
		service, _ := newQuestionTestService(repo)

		_, err := service.Create(ctx, validCreateRequest())
		if !errors.Is(err, ErrBankNotFound) {
			t.Fatalf("Expected ErrBankNotFound, got %v", err)
		}
	})

	t.Run("rejects topic outside the bank", func(t *testing.T) {
		repo := newMockRepository()
		repo.banks.existsFn = func(id string) (bool, error) { return true, nil }
		repo.topics.existsInBankFn = func(id, bankID string) (bool, error) { return false, nil }
		service, _ := newQuestionTestService(repo)

		req := validCreateRequest()
		req.TopicIDs = []string{"topic-deadbeef"}

		_, err := service.Create(ctx, req)
		if !errors.Is(err, ErrTopicNotFound) {
			t.Fatalf("Expected ErrTopicNotFound, got %v", err)
		}
	})
}

func TestQuestionService_GetByID(t *testing.T) {
	ctx := context.Background()

	stored := &models.Question{
		ID:            "question-00000001",
		BankID:        "bank-12345678",
		Type:          models.MultipleChoice,
		Stem:          "Which planet is closest to the sun?",
		Options:       datatypes.JSON([]byte(`["Venus","Mercury","Mars"]`)),
		CorrectAnswer: "Mercury",
		Explanation:   "Mercury orbits at 0.39 AU.",
		Status:        models.StatusActive,
	}

	repo := newMockRepository()
	repo.questions.getByIDFn = func(id string) (*models.Question, error) {
		if id == stored.ID {
			copied := *stored
			return &copied, nil
		}
		return nil, repositories.ErrNotFound
	}
	service, _ := newQuestionTestService(repo)

	t.Run("shows answer by default", func(t *testing.T) {
		resp, err := service.GetByID(ctx, stored.ID, true)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if resp.CorrectAnswer == nil || *resp.CorrectAnswer != "Mercury" {
			t.Error("Expected correct answer to be present")
		}
		if resp.Explanation == nil {
			t.Error("Expected explanation to be present")
		}
	})

	t.Run("hides answer and explanation when asked", func(t *testing.T) {
		resp, err := service.GetByID(ctx, stored.ID, false)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if resp.CorrectAnswer != nil {
			t.Error("Correct answer should be hidden")
		}
		if resp.Explanation != nil {
			t.Error("Explanation should be hidden")
		}
		if !reflect.DeepEqual(resp.Options, []string{"Venus", "Mercury", "Mars"}) {
			t.Errorf("Options should stay visible, got %v", resp.Options)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := service.GetByID(ctx, "question-missing0", true)
		if !errors.Is(err, ErrQuestionNotFound) {
			t.Fatalf("Expected ErrQuestionNotFound, got %v", err)
		}
	})
}

func TestQuestionService_Update_EmptyRequest(t *testing.T) {
	repo := newMockRepository()
	service, _ := newQuestionTestService(repo)

	_, err := service.Update(context.Background(), "question-00000001", &UpdateQuestionRequest{})

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("Expected validation errors, got %v", err)
	}
}

func TestQuestionService_Activate(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository()
	repo.questions.activateFn = func(ids []string) ([]string, error) {
		var found []string
		for _, id := range ids {
			if id == "question-00000001" || id == "question-00000003" {
				found = append(found, id)
			}
		}
		return found, nil
	}
	service, publisher := newQuestionTestService(repo)

	resp, err := service.Activate(ctx, &ActivateQuestionsRequest{
		QuestionIDs: []string{"question-00000001", "question-00000002", "question-00000003", "question-00000004"},
	})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if resp.ActivatedCount != 2 {
		t.Errorf("Expected 2 activated, got %d", resp.ActivatedCount)
	}
	want := []string{"question-00000002", "question-00000004"}
	if !reflect.DeepEqual(resp.NotFoundIDs, want) {
		t.Errorf("Expected not-found %v in request order, got %v", want, resp.NotFoundIDs)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.QuestionsActivated {
		t.Errorf("Expected one %s event, got %d events", events.QuestionsActivated, len(published))
	}
}
