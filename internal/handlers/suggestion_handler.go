package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type SuggestionHandler struct {
	BaseHandler
	service services.SuggestionService
}

func NewSuggestionHandler(service services.SuggestionService, logger utils.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SuggestQuestions generates question-writing prompts for a topic
// @Summary Suggest questions for a topic
// @Description Deterministic templates rotating through the requested Bloom levels; nothing is stored
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body services.SuggestQuestionsRequest true "Suggestion request"
// @Success 200 {object} services.SuggestionResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Bank not found"
// @Router /suggestions [post]
func (h *SuggestionHandler) SuggestQuestions(c *gin.Context) {
	var req services.SuggestQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Suggest(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
