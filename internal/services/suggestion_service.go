package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

var bloomDescriptions = map[models.BloomLevel]string{
	models.BloomRemember:   "recall facts, terms, concepts",
	models.BloomUnderstand: "explain ideas, interpret meaning",
	models.BloomApply:      "use knowledge in new situations",
	models.BloomAnalyze:    "break down, compare, contrast",
	models.BloomEvaluate:   "justify, critique, make judgments",
	models.BloomCreate:     "design, construct, produce new work",
}

type suggestionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSuggestionService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) SuggestionService {
	return &suggestionService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// Suggest produces question skeletons for a topic. Pure templating over the
// request: the only store access is the bank lookup, and nothing is written.
func (s *suggestionService) Suggest(ctx context.Context, req *SuggestQuestionsRequest) (*SuggestionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bank, err := s.repo.QuestionBank().GetByID(ctx, nil, req.BankID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to get question bank: %w", err)
	}

	count := req.Count
	if count == 0 {
		count = 5
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "mixed"
	}

	bloomLevels := make([]models.BloomLevel, 0, len(req.BloomLevels))
	for _, level := range req.BloomLevels {
		bloomLevels = append(bloomLevels, models.BloomLevel(level))
	}
	if len(bloomLevels) == 0 {
		bloomLevels = models.AllBloomLevels()
	}

	resp := &SuggestionResponse{
		BankID:      bank.ID,
		BankName:    bank.Name,
		Subject:     bank.Subject,
		Topic:       req.Topic,
		Difficulty:  difficulty,
		Suggestions: make([]QuestionSuggestion, 0, count),
	}

	// Bloom levels rotate round-robin across the requested set; mixed
	// difficulty rotates easy/medium/hard the same way
	mixedLabels := []string{"easy", "medium", "hard"}
	for i := 0; i < count; i++ {
		level := bloomLevels[i%len(bloomLevels)]

		label := difficulty
		if difficulty == "mixed" {
			label = mixedLabels[i%len(mixedLabels)]
		}

		resp.Suggestions = append(resp.Suggestions, QuestionSuggestion{
			Number:           i + 1,
			BloomLevel:       level,
			BloomDescription: bloomDescriptions[level],
			Difficulty:       difficultyValue(label),
			DifficultyLabel:  label,
			QuestionType:     suggestedTypeFor(level),
			Prompt:           fmt.Sprintf("Create a question that asks students to %s related to %s.", bloomDescriptions[level], req.Topic),
		})
	}

	return resp, nil
}

func difficultyValue(label string) float64 {
	switch label {
	case "easy":
		return 0.3
	case "hard":
		return 0.7
	default:
		return 0.5
	}
}

// suggestedTypeFor maps cognitive demand to a question format: recall
// levels suit multiple choice, mid levels short answers, top levels essays.
func suggestedTypeFor(level models.BloomLevel) models.QuestionType {
	switch level {
	case models.BloomRemember, models.BloomUnderstand:
		return models.MultipleChoice
	case models.BloomApply, models.BloomAnalyze:
		return models.ShortAnswer
	default:
		return models.Essay
	}
}
