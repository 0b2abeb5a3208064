package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/models"
	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	service services.QuestionService
}

func NewQuestionHandler(service services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CORE CRUD ENDPOINTS =====

// CreateQuestion creates a new question
// @Summary Create a new question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body services.CreateQuestionRequest true "Question creation request"
// @Success 201 {object} services.QuestionResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Bank or topic not found"
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
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

// GetQuestion retrieves a question by ID
// @Summary Get a question by ID
// @Description Retrieve a question; pass show_answer=false to hide the answer and explanation
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Param show_answer query bool false "Include correct answer and explanation (default: true)"
// @Success 200 {object} services.QuestionResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	showAnswer := c.DefaultQuery("show_answer", "true") != "false"

	response, err := h.service.GetByID(c.Request.Context(), c.Param("id"), showAnswer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateQuestion applies a sparse update to a question
// @Summary Update a question
// @Description Only fields present in the payload change. Unknown fields are rejected.
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body services.UpdateQuestionRequest true "Question update request"
// @Success 200 {object} services.QuestionResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /questions/{id} [patch]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	// Strict decoding so a typoed field name fails loudly instead of
	// silently updating nothing
	var req services.UpdateQuestionRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteQuestion deletes a question
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== SEARCH AND LIFECYCLE =====

// SearchQuestions searches questions with conjunctive filters
// @Summary Search questions
// @Description Every filter present narrows the result set
// @Tags questions
// @Produce json
// @Param bank_id query string false "Filter by bank"
// @Param topic_id query string false "Filter by linked topic"
// @Param question_type query string false "Filter by question type"
// @Param bloom_level query string false "Filter by Bloom level"
// @Param status query string false "Filter by status"
// @Param difficulty_min query number false "Minimum difficulty (inclusive)"
// @Param difficulty_max query number false "Maximum difficulty (inclusive)"
// @Param tags query string false "Comma-separated tags; a question matches if it carries any of them"
// @Param search_text query string false "Case-insensitive substring match on stem and explanation"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} services.QuestionListResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /questions [get]
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	req := h.parseSearchRequest(c)

	response, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ActivateQuestions activates a batch of draft questions
// @Summary Activate questions
// @Description Activate existing questions; IDs that match nothing are reported, not fatal
// @Tags questions
// @Accept json
// @Produce json
// @Param request body services.ActivateQuestionsRequest true "Question IDs to activate"
// @Success 200 {object} services.ActivateQuestionsResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /questions/activate [post]
func (h *QuestionHandler) ActivateQuestions(c *gin.Context) {
	var req services.ActivateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Activate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ===== HELPER METHODS =====

func (h *QuestionHandler) parseSearchRequest(c *gin.Context) *services.SearchQuestionsRequest {
	req := &services.SearchQuestionsRequest{
		Limit:  parseIntQuery(c, "limit", 20, 100),
		Offset: parseIntQuery(c, "offset", 0, 0),
	}

	if bankID := c.Query("bank_id"); bankID != "" {
		req.BankID = &bankID
	}
	if topicID := c.Query("topic_id"); topicID != "" {
		req.TopicID = &topicID
	}
	if qType := c.Query("question_type"); qType != "" {
		req.Type = (*models.QuestionType)(&qType)
	}
	if bloom := c.Query("bloom_level"); bloom != "" {
		req.BloomLevel = (*models.BloomLevel)(&bloom)
	}
	if status := c.Query("status"); status != "" {
		req.Status = (*models.QuestionStatus)(&status)
	}
	if raw := c.Query("difficulty_min"); raw != "" {
		if value, err := parseFloatQuery(raw); err == nil {
			req.DifficultyMin = &value
		}
	}
	if raw := c.Query("difficulty_max"); raw != "" {
		if value, err := parseFloatQuery(raw); err == nil {
			req.DifficultyMax = &value
		}
	}
	if tags := c.Query("tags"); tags != "" {
		req.Tags = strings.Split(tags, ",")
	}
	if text := c.Query("search_text"); text != "" {
		req.SearchText = &text
	}

	return req
}
