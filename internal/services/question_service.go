package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/question-bank-service/internal/events"
	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

type questionService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewQuestionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) QuestionService {
	return &questionService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Create validates the request, resolves the bank and every referenced
// topic, then inserts the question row plus its links in one transaction.
func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Creating question", "bank_id", req.BankID, "type", req.Type)

	if errs := s.validator.GetBusinessValidator().ValidateQuestionCreate(req); len(errs) > 0 {
		return nil, errs
	}

	bankExists, err := s.repo.QuestionBank().Exists(ctx, nil, req.BankID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question bank: %w", err)
	}
	if !bankExists {
		return nil, ErrBankNotFound
	}

	for _, topicID := range req.TopicIDs {
		inBank, err := s.repo.Topic().ExistsInBank(ctx, nil, topicID, req.BankID)
		if err != nil {
			return nil, fmt.Errorf("failed to check topic %s: %w", topicID, err)
		}
		if !inBank {
			return nil, ErrTopicNotFound
		}
	}

	options, err := encodeOptions(req.Options)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:                   newID("q"),
		BankID:               req.BankID,
		Type:                 req.Type,
		Stem:                 req.Stem,
		Options:              options,
		CorrectAnswer:        req.CorrectAnswer,
		Explanation:          req.Explanation,
		Difficulty:           0.5,
		BloomLevel:           req.BloomLevel,
		EstimatedTimeSeconds: 60,
		Points:               1,
		Status:               models.StatusDraft,
		TopicIDs:             req.TopicIDs,
		Tags:                 req.Tags,
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if req.EstimatedTimeSeconds != nil {
		question.EstimatedTimeSeconds = *req.EstimatedTimeSeconds
	}
	if req.Points != nil {
		question.Points = *req.Points
	}

	if err := s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	// Re-read links so normalized tags come back in stored form
	question.Tags, err = s.repo.Question().GetTagLinks(ctx, nil, question.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	s.publishEvent(ctx, events.QuestionCreated, map[string]string{"question_id": question.ID, "bank_id": question.BankID})
	s.logger.Info("Question created", "question_id", question.ID)

	return buildQuestionResponse(question, true)
}

// GetByID returns the question. With showAnswer false the correct answer
// and explanation are stripped from the response only, never from storage.
func (s *questionService) GetByID(ctx context.Context, id string, showAnswer bool) (*QuestionResponse, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return buildQuestionResponse(question, showAnswer)
}

// Update applies a sparse field set. TopicIDs and Tags, when present,
// replace the full link set rather than merging.
func (s *questionService) Update(ctx context.Context, id string, req *UpdateQuestionRequest) (*QuestionResponse, error) {
	s.logger.Info("Updating question", "question_id", id)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if isEmptyUpdate(req) {
		return nil, NewValidationError("request", "no valid fields to update")
	}

	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if req.TopicIDs != nil {
		for _, topicID := range req.TopicIDs {
			inBank, err := s.repo.Topic().ExistsInBank(ctx, nil, topicID, question.BankID)
			if err != nil {
				return nil, fmt.Errorf("failed to check topic %s: %w", topicID, err)
			}
			if !inBank {
				return nil, ErrTopicNotFound
			}
		}
	}

	if err := applyQuestionUpdates(question, req); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Question().Update(ctx, nil, question); err != nil {
			return err
		}
		if req.TopicIDs != nil {
			if err := txRepo.Question().ReplaceTopicLinks(ctx, nil, id, req.TopicIDs); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := txRepo.Question().ReplaceTagLinks(ctx, nil, id, req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	question.TopicIDs, err = s.repo.Question().GetTopicLinks(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	question.Tags, err = s.repo.Question().GetTagLinks(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	s.publishEvent(ctx, events.QuestionUpdated, map[string]string{"question_id": id, "bank_id": question.BankID})
	s.logger.Info("Question updated", "question_id", id)

	return buildQuestionResponse(question, true)
}

// Delete removes the question and its links. A second delete of the same
// id reports not found instead of failing hard.
func (s *questionService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting question", "question_id", id)

	if err := s.repo.Question().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.publishEvent(ctx, events.QuestionDeleted, map[string]string{"question_id": id})
	s.logger.Info("Question deleted", "question_id", id)

	return nil
}

// Search applies every provided criterion conjunctively, newest first.
func (s *questionService) Search(ctx context.Context, req *SearchQuestionsRequest) (*QuestionListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	filters := repositories.QuestionFilters{
		BankID:        req.BankID,
		TopicID:       req.TopicID,
		Type:          req.Type,
		BloomLevel:    req.BloomLevel,
		Status:        req.Status,
		DifficultyMin: req.DifficultyMin,
		DifficultyMax: req.DifficultyMax,
		Tags:          req.Tags,
		SearchText:    req.SearchText,
		Limit:         req.Limit,
		Offset:        req.Offset,
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}

	questions, total, err := s.repo.Question().Search(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	resp := &QuestionListResponse{
		Questions: make([]*QuestionResponse, 0, len(questions)),
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}
	for _, question := range questions {
		qr, err := buildQuestionResponse(question, true)
		if err != nil {
			return nil, err
		}
		resp.Questions = append(resp.Questions, qr)
	}

	return resp, nil
}

// Activate is best effort: each id succeeds or is reported missing, and one
// bad id never blocks the rest.
func (s *questionService) Activate(ctx context.Context, req *ActivateQuestionsRequest) (*ActivateQuestionsResponse, error) {
	s.logger.Info("Activating questions", "count", len(req.QuestionIDs))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	activated, err := s.repo.Question().Activate(ctx, nil, req.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to activate questions: %w", err)
	}

	activatedSet := make(map[string]bool, len(activated))
	for _, id := range activated {
		activatedSet[id] = true
	}

	notFound := make([]string, 0)
	for _, id := range req.QuestionIDs {
		if !activatedSet[id] {
			notFound = append(notFound, id)
		}
	}

	if len(activated) > 0 {
		s.publishEvent(ctx, events.QuestionsActivated, map[string]interface{}{
			"question_ids": activated,
		})
	}
	s.logger.Info("Questions activated", "activated", len(activated), "not_found", len(notFound))

	return &ActivateQuestionsResponse{
		ActivatedCount: len(activated),
		NotFoundIDs:    notFound,
	}, nil
}

func (s *questionService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
