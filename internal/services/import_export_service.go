package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/repositories"
)

const questionSheetName = "Questions"

// Column order for the XLSX exchange format. Options are pipe-separated,
// tags comma-separated. Import ignores the id column.
var questionSheetHeader = []string{
	"id",
	"question_type",
	"stem",
	"options",
	"correct_answer",
	"explanation",
	"difficulty",
	"bloom_level",
	"estimated_time_seconds",
	"points",
	"status",
	"tags",
}

type importExportService struct {
	repo      repositories.Repository
	questions QuestionService
	logger    *slog.Logger
}

func NewImportExportService(repo repositories.Repository, questions QuestionService, logger *slog.Logger) ImportExportService {
	return &importExportService{
		repo:      repo,
		questions: questions,
		logger:    logger,
	}
}

// ExportBank renders every question in the bank to an XLSX workbook.
func (s *importExportService) ExportBank(ctx context.Context, bankID string) ([]byte, error) {
	exists, err := s.repo.QuestionBank().Exists(ctx, nil, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question bank: %w", err)
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	filters := repositories.QuestionFilters{
		BankID: &bankID,
		Limit:  10000,
	}
	questions, _, err := s.repo.Question().Search(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), questionSheetName)
	for col, name := range questionSheetHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(questionSheetName, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, question := range questions {
		options, err := decodeOptions(question.Options)
		if err != nil {
			s.logger.Warn("Skipping options for question with malformed encoding",
				"question_id", question.ID, "error", err)
		}
		values := []interface{}{
			question.ID,
			string(question.Type),
			question.Stem,
			strings.Join(options, "|"),
			question.CorrectAnswer,
			question.Explanation,
			question.Difficulty,
			string(question.BloomLevel),
			question.EstimatedTimeSeconds,
			question.Points,
			string(question.Status),
			strings.Join(question.Tags, ","),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(questionSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Exported question bank", "bank_id", bankID, "question_count", len(questions))
	return buf.Bytes(), nil
}

// ImportQuestions reads an XLSX workbook and creates one question per data
// row. Row failures are collected per row; valid rows still import.
func (s *importExportService) ImportQuestions(ctx context.Context, bankID string, r io.Reader) (*ImportResult, error) {
	exists, err := s.repo.QuestionBank().Exists(ctx, nil, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to check question bank: %w", err)
	}
	if !exists {
		return nil, ErrBankNotFound
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewValidationError("file", "not a readable XLSX workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(questionSheetName)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("missing sheet %q", questionSheetName))
	}
	if len(rows) < 2 {
		return nil, NewValidationError("file", "workbook has no data rows")
	}

	columns := headerIndex(rows[0])
	result := &ImportResult{}

	for i, row := range rows[1:] {
		rowNum := i + 2
		req, err := rowToCreateRequest(bankID, columns, row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if _, err := s.questions.Create(ctx, req); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.ImportedCount++
	}

	s.logger.Info("Imported questions",
		"bank_id", bankID,
		"imported_count", result.ImportedCount,
		"error_count", len(result.Errors))
	return result, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func cellAt(columns map[string]int, row []string, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowToCreateRequest(bankID string, columns map[string]int, row []string) (*CreateQuestionRequest, error) {
	req := &CreateQuestionRequest{
		BankID:        bankID,
		Type:          models.QuestionType(cellAt(columns, row, "question_type")),
		Stem:          cellAt(columns, row, "stem"),
		CorrectAnswer: cellAt(columns, row, "correct_answer"),
		Explanation:   cellAt(columns, row, "explanation"),
	}

	if options := cellAt(columns, row, "options"); options != "" {
		req.Options = strings.Split(options, "|")
	}
	if tags := cellAt(columns, row, "tags"); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}
	if bloom := cellAt(columns, row, "bloom_level"); bloom != "" {
		req.BloomLevel = models.BloomLevel(bloom)
	}

	if raw := cellAt(columns, row, "difficulty"); raw != "" {
		difficulty, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("difficulty %q is not a number", raw)
		}
		req.Difficulty = &difficulty
	}
	if raw := cellAt(columns, row, "estimated_time_seconds"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("estimated_time_seconds %q is not an integer", raw)
		}
		req.EstimatedTimeSeconds = &seconds
	}
	if raw := cellAt(columns, row, "points"); raw != "" {
		points, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("points %q is not an integer", raw)
		}
		req.Points = &points
	}

	return req, nil
}
