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

type topicService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewTopicService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) TopicService {
	return &topicService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Create adds a topic to a bank. A parent topic, when given, must already
// exist in the same bank, which keeps every parent chain inside one bank
// and makes cycles unreachable through this operation.
func (s *topicService) Create(ctx context.Context, req *CreateTopicRequest) (*TopicResponse, error) {
	s.logger.Info("Creating topic", "bank_id", req.BankID, "name", req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bankExists, err := s.repo.QuestionBank().Exists(ctx, nil, req.BankID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question bank: %w", err)
	}
	if !bankExists {
		return nil, ErrBankNotFound
	}

	if req.ParentTopicID != nil {
		inBank, err := s.repo.Topic().ExistsInBank(ctx, nil, *req.ParentTopicID, req.BankID)
		if err != nil {
			return nil, fmt.Errorf("failed to check parent topic: %w", err)
		}
		if !inBank {
			return nil, ErrTopicNotFound
		}
	}

	topic := &models.Topic{
		ID:            newID("topic"),
		BankID:        req.BankID,
		Name:          req.Name,
		Description:   req.Description,
		ParentTopicID: req.ParentTopicID,
	}

	if err := s.repo.Topic().Create(ctx, nil, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.publishEvent(ctx, events.TopicCreated, map[string]string{"topic_id": topic.ID, "bank_id": topic.BankID})
	s.logger.Info("Topic created", "topic_id", topic.ID)

	return &TopicResponse{Topic: topic}, nil
}

func (s *topicService) GetByID(ctx context.Context, id string) (*TopicResponse, error) {
	topic, err := s.repo.Topic().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	topic.QuestionCount, err = s.repo.Topic().CountQuestionsInTopic(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	return &TopicResponse{Topic: topic}, nil
}

func (s *topicService) ListByBank(ctx context.Context, bankID string) (*TopicListResponse, error) {
	bankExists, err := s.repo.QuestionBank().Exists(ctx, nil, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question bank: %w", err)
	}
	if !bankExists {
		return nil, ErrBankNotFound
	}

	topics, err := s.repo.Topic().GetByBank(ctx, nil, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	resp := &TopicListResponse{
		Topics: make([]*TopicResponse, 0, len(topics)),
		Total:  int64(len(topics)),
	}
	for _, topic := range topics {
		resp.Topics = append(resp.Topics, &TopicResponse{Topic: topic})
	}

	return resp, nil
}

// Delete removes the topic and its question links. Linked questions keep
// existing; child topics become roots.
func (s *topicService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting topic", "topic_id", id)

	exists, err := s.repo.Topic().Exists(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to check topic: %w", err)
	}
	if !exists {
		return ErrTopicNotFound
	}

	if err := s.repo.Topic().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	s.publishEvent(ctx, events.TopicDeleted, map[string]string{"topic_id": id})
	s.logger.Info("Topic deleted", "topic_id", id)

	return nil
}

func (s *topicService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
