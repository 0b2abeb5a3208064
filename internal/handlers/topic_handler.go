package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type TopicHandler struct {
	BaseHandler
	service services.TopicService
}

func NewTopicHandler(service services.TopicService, logger utils.Logger) *TopicHandler {
	return &TopicHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateTopic creates a new topic inside a bank
// @Summary Create a new topic
// @Description Create a topic, optionally nested under a parent topic in the same bank
// @Tags topics
// @Accept json
// @Produce json
// @Param request body services.CreateTopicRequest true "Topic creation request"
// @Success 201 {object} services.TopicResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Bank or parent topic not found"
// @Router /topics [post]
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req services.CreateTopicRequest
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

// GetTopic retrieves a topic by ID
// @Summary Get a topic by ID
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} services.TopicResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /topics/{id} [get]
func (h *TopicHandler) GetTopic(c *gin.Context) {
	response, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListBankTopics lists all topics in a question bank
// @Summary List topics in a bank
// @Tags topics
// @Produce json
// @Param id path string true "Question Bank ID"
// @Success 200 {object} services.TopicListResponse
// @Failure 404 {object} ErrorResponse "Bank not found"
// @Router /question-banks/{id}/topics [get]
func (h *TopicHandler) ListBankTopics(c *gin.Context) {
	response, err := h.service.ListByBank(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTopic deletes a topic
// @Summary Delete a topic
// @Description Delete a topic; its child topics become roots and linked questions survive
// @Tags topics
// @Produce json
// @Param id path string true "Topic ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /topics/{id} [delete]
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
