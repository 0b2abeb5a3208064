package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type ReferenceHandler struct {
	BaseHandler
	service services.ReferenceService
}

func NewReferenceHandler(service services.ReferenceService, logger utils.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetBloomTaxonomy returns the Bloom taxonomy reference
// @Summary Get Bloom taxonomy levels
// @Tags reference
// @Produce json
// @Success 200 {array} services.BloomLevelInfo
// @Router /reference/bloom-levels [get]
func (h *ReferenceHandler) GetBloomTaxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.BloomTaxonomy())
}

// GetQuestionTypes returns the question type reference
// @Summary Get question type guidance
// @Tags reference
// @Produce json
// @Success 200 {array} services.QuestionTypeInfo
// @Router /reference/question-types [get]
func (h *ReferenceHandler) GetQuestionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.QuestionTypes())
}
