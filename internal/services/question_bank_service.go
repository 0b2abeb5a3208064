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

type questionBankService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewQuestionBankService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) QuestionBankService {
	return &questionBankService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

func (s *questionBankService) Create(ctx context.Context, req *CreateQuestionBankRequest) (*QuestionBankResponse, error) {
	s.logger.Info("Creating question bank", "name", req.Name, "subject", req.Subject)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bank := &models.QuestionBank{
		ID:          newID("bank"),
		Name:        req.Name,
		Subject:     req.Subject,
		Description: req.Description,
		GradeLevel:  req.GradeLevel,
	}

	if err := s.repo.QuestionBank().Create(ctx, nil, bank); err != nil {
		return nil, fmt.Errorf("failed to create question bank: %w", err)
	}

	s.publishEvent(ctx, events.BankCreated, map[string]string{"bank_id": bank.ID, "name": bank.Name})
	s.logger.Info("Question bank created", "bank_id", bank.ID)

	return &QuestionBankResponse{QuestionBank: bank}, nil
}

func (s *questionBankService) GetByID(ctx context.Context, id string) (*QuestionBankResponse, error) {
	bank, err := s.repo.QuestionBank().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to get question bank: %w", err)
	}

	bank.QuestionCount, err = s.repo.QuestionBank().CountQuestionsInBank(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	bank.TopicCount, err = s.repo.QuestionBank().CountTopicsInBank(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", err)
	}

	return &QuestionBankResponse{QuestionBank: bank}, nil
}

func (s *questionBankService) List(ctx context.Context, req *ListQuestionBanksRequest) (*QuestionBankListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	filters := repositories.QuestionBankFilters{
		Subject:    req.Subject,
		GradeLevel: req.GradeLevel,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}

	banks, total, err := s.repo.QuestionBank().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list question banks: %w", err)
	}

	resp := &QuestionBankListResponse{
		Banks: make([]*QuestionBankResponse, 0, len(banks)),
		Total: total,
	}
	for _, bank := range banks {
		resp.Banks = append(resp.Banks, &QuestionBankResponse{QuestionBank: bank})
	}

	return resp, nil
}

// Delete removes the bank and cascades to its topics, questions and links.
func (s *questionBankService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting question bank", "bank_id", id)

	exists, err := s.repo.QuestionBank().Exists(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to check question bank: %w", err)
	}
	if !exists {
		return ErrBankNotFound
	}

	if err := s.repo.QuestionBank().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete question bank: %w", err)
	}

	s.publishEvent(ctx, events.BankDeleted, map[string]string{"bank_id": id})
	s.logger.Info("Question bank deleted", "bank_id", id)

	return nil
}

func (s *questionBankService) GetStats(ctx context.Context, id string) (*BankStatsResponse, error) {
	bank, err := s.repo.QuestionBank().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to get question bank: %w", err)
	}

	stats, err := s.repo.QuestionBank().GetBankStats(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank stats: %w", err)
	}

	return &BankStatsResponse{
		BankID:            bank.ID,
		BankName:          bank.Name,
		QuestionBankStats: stats,
	}, nil
}

func (s *questionBankService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
