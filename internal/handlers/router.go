package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-bank-service/internal/services"
	"github.com/SAP-F-2025/question-bank-service/internal/utils"
)

type HandlerManager struct {
	questionBankHandler *QuestionBankHandler
	topicHandler        *TopicHandler
	questionHandler     *QuestionHandler
	suggestionHandler   *SuggestionHandler
	referenceHandler    *ReferenceHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		questionBankHandler: NewQuestionBankHandler(serviceManager.QuestionBank(), serviceManager.ImportExport(), logger),
		topicHandler:        NewTopicHandler(serviceManager.Topic(), logger),
		questionHandler:     NewQuestionHandler(serviceManager.Question(), logger),
		suggestionHandler:   NewSuggestionHandler(serviceManager.Suggestion(), logger),
		referenceHandler:    NewReferenceHandler(serviceManager.Reference(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Question Bank routes
		questionBanks := v1.Group("/question-banks")
		{
			questionBanks.POST("", hm.questionBankHandler.CreateQuestionBank)
			questionBanks.GET("", hm.questionBankHandler.ListQuestionBanks)
			questionBanks.GET("/:id", hm.questionBankHandler.GetQuestionBank)
			questionBanks.DELETE("/:id", hm.questionBankHandler.DeleteQuestionBank)
			questionBanks.GET("/:id/stats", hm.questionBankHandler.GetQuestionBankStats)

			// Topics scoped to a bank
			questionBanks.GET("/:id/topics", hm.topicHandler.ListBankTopics)

			// Import / export
			questionBanks.GET("/:id/export", hm.questionBankHandler.ExportQuestionBank)
			questionBanks.POST("/:id/import", hm.questionBankHandler.ImportQuestions)
		}

		// Topic routes
		topics := v1.Group("/topics")
		{
			topics.POST("", hm.topicHandler.CreateTopic)
			topics.GET("/:id", hm.topicHandler.GetTopic)
			topics.DELETE("/:id", hm.topicHandler.DeleteTopic)
		}

		// Question routes
		questions := v1.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.SearchQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PATCH("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
			questions.POST("/activate", hm.questionHandler.ActivateQuestions)
		}

		// Suggestion routes
		v1.POST("/suggestions", hm.suggestionHandler.SuggestQuestions)

		// Reference routes
		reference := v1.Group("/reference")
		{
			reference.GET("/bloom-levels", hm.referenceHandler.GetBloomTaxonomy)
			reference.GET("/question-types", hm.referenceHandler.GetQuestionTypes)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "question-bank-service",
		})
	})
}
