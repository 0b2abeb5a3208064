package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
)

// newID mints an opaque id carrying a human-readable kind prefix, e.g.
// "q-3f2a9c1d". Uniqueness is global per kind; ids are never reused.
func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, hex[:8])
}

// encodeOptions serializes the ordered option list at the storage boundary.
// The service contract speaks in ordered lists, never encoded blobs.
func encodeOptions(options []string) (datatypes.JSON, error) {
	if len(options) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	return datatypes.JSON(data), nil
}

func decodeOptions(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var options []string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return options, nil
}

// buildQuestionResponse decodes options and optionally strips the answer
// fields from the response.
func buildQuestionResponse(question *models.Question, showAnswer bool) (*QuestionResponse, error) {
	options, err := decodeOptions(question.Options)
	if err != nil {
		return nil, err
	}

	resp := &QuestionResponse{
		Question: question,
		Options:  options,
	}
	if showAnswer {
		answer := question.CorrectAnswer
		explanation := question.Explanation
		resp.CorrectAnswer = &answer
		if explanation != "" {
			resp.Explanation = &explanation
		}
	}

	return resp, nil
}

// applyQuestionUpdates copies the provided fields onto the model. Link
// fields are handled by the caller since they live in separate tables.
func applyQuestionUpdates(question *models.Question, req *UpdateQuestionRequest) error {
	if req.Type != nil {
		question.Type = *req.Type
	}
	if req.Stem != nil {
		question.Stem = *req.Stem
	}
	if req.Options != nil {
		options, err := encodeOptions(req.Options)
		if err != nil {
			return err
		}
		question.Options = options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		question.Explanation = *req.Explanation
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if req.BloomLevel != nil {
		question.BloomLevel = *req.BloomLevel
	}
	if req.EstimatedTimeSeconds != nil {
		question.EstimatedTimeSeconds = *req.EstimatedTimeSeconds
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.Status != nil {
		question.Status = *req.Status
	}
	return nil
}

// isEmptyUpdate reports whether the request carries no field at all.
func isEmptyUpdate(req *UpdateQuestionRequest) bool {
	return req.Type == nil &&
		req.Stem == nil &&
		req.Options == nil &&
		req.CorrectAnswer == nil &&
		req.Explanation == nil &&
		req.Difficulty == nil &&
		req.BloomLevel == nil &&
		req.EstimatedTimeSeconds == nil &&
		req.Points == nil &&
		req.Status == nil &&
		req.TopicIDs == nil &&
		req.Tags == nil
}
