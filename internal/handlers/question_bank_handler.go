package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type QuestionBankHandler struct {
	BaseHandler
	service      services.QuestionBankService
	importExport services.ImportExportService
}

func NewQuestionBankHandler(service services.QuestionBankService, importExport services.ImportExportService, logger utils.Logger) *QuestionBankHandler {
	return &QuestionBankHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		importExport: importExport,
	}
}

// ===== CORE CRUD ENDPOINTS =====

// CreateQuestionBank creates a new question bank
// @Summary Create a new question bank
// @Tags question-banks
// @Accept json
// @Produce json
// @Param request body services.CreateQuestionBankRequest true "Question Bank creation request"
// @Success 201 {object} services.QuestionBankResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /question-banks [post]
func (h *QuestionBankHandler) CreateQuestionBank(c *gin.Context) {
	var req services.CreateQuestionBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetQuestionBank retrieves a question bank by ID
// @Summary Get a question bank by ID
// @Tags question-banks
// @Produce json
// @Param id path string true "Question Bank ID"
// @Success 200 {object} services.QuestionBankResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /question-banks/{id} [get]
func (h *QuestionBankHandler) GetQuestionBank(c *gin.Context) {
	response, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListQuestionBanks lists question banks with filtering
// @Summary List question banks
// @Tags question-banks
// @Produce json
// @Param subject query string false "Filter by subject (exact match)"
// @Param grade_level query string false "Filter by grade level (exact match)"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} services.QuestionBankListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /question-banks [get]
func (h *QuestionBankHandler) ListQuestionBanks(c *gin.Context) {
	req := services.ListQuestionBanksRequest{
		Limit:  parseIntQuery(c, "limit", 20, 100),
		Offset: parseIntQuery(c, "offset", 0, 0),
	}
	if subject := c.Query("subject"); subject != "" {
		req.Subject = &subject
	}
	if gradeLevel := c.Query("grade_level"); gradeLevel != "" {
		req.GradeLevel = &gradeLevel
	}

	response, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteQuestionBank deletes a question bank and everything inside it
// @Summary Delete a question bank
// @Description Delete a question bank with all of its topics and questions
// @Tags question-banks
// @Produce json
// @Param id path string true "Question Bank ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /question-banks/{id} [delete]
func (h *QuestionBankHandler) DeleteQuestionBank(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== STATISTICS =====

// GetQuestionBankStats gets aggregated statistics for a question bank
// @Summary Get question bank statistics
// @Description Counts by type, status, difficulty bucket, Bloom level and topic
// @Tags question-banks
// @Produce json
// @Param id path string true "Question Bank ID"
// @Success 200 {object} services.BankStatsResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /question-banks/{id}/stats [get]
func (h *QuestionBankHandler) GetQuestionBankStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ===== IMPORT / EXPORT =====

// ExportQuestionBank exports every question in the bank as an XLSX workbook
// @Summary Export a question bank
// @Tags question-banks
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Question Bank ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /question-banks/{id}/export [get]
func (h *QuestionBankHandler) ExportQuestionBank(c *gin.Context) {
	bankID := c.Param("id")
	data, err := h.importExport.ExportBank(c.Request.Context(), bankID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", bankID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ImportQuestions imports questions into the bank from an uploaded XLSX file
// @Summary Import questions into a question bank
// @Tags question-banks
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Question Bank ID"
// @Param file formData file true "XLSX workbook with a Questions sheet"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /question-banks/{id}/import [post]
func (h *QuestionBankHandler) ImportQuestions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing upload file",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Cannot read upload file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	result, err := h.importExport.ImportQuestions(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
