package handlers

import (
	"strings"

	"jobmarket_backend/internal/services"
	"jobmarket_backend/internal/services/dto"
	"jobmarket_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	*BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(base *BaseHandler, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     base,
		questionService: questionService,
	}
}

func (h *QuestionHandler) RegisterRoutes(rg *gin.RouterGroup, _ Guards) {
	rg.GET("/questions/:jobTitles", h.GetQuestions)
}

// GetQuestions
// @Summary Interview questions for comma separated job titles
// @Tags questions
// @Produce json
// @Param jobTitles path string true "e.g. Sales Representative,Customer Support"
// @Success 200 {object} Response{data=dto.QuestionsResponse}
// @Router /questions/{jobTitles} [get]
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	titles := c.Param("jobTitles")
	if strings.TrimSpace(titles) == "" || len(titles) > 500 {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{
			"jobTitles": "must be between 1 and 500 characters",
		}))
		return
	}

	respondOK(c, dto.QuestionsResponse{Questions: h.questionService.QuestionsFor(titles)},
		"Interview questions retrieved successfully")
}
