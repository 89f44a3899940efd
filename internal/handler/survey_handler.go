package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// SurveyHandler exposes satisfaction surveys: public submission and
// staff administration.
type SurveyHandler struct {
	surveys *service.SurveyService
}

// NewSurveyHandler constructs SurveyHandler.
func NewSurveyHandler(surveys *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

type createSurveyPayload struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
	Questions   []struct {
		Text string `json:"text" binding:"required"`
		Type string `json:"type"`
	} `json:"questions" binding:"required"`
}

type submitSurveyPayload struct {
	RespondentID *string `json:"respondent_id"`
	Answers      []struct {
		QuestionID int64    `json:"question_id" binding:"required"`
		Value      *float64 `json:"value"`
		Text       *string  `json:"text"`
	} `json:"answers" binding:"required"`
}

type setActivePayload struct {
	Active *bool `json:"active" binding:"required"`
}

// Create godoc
// @Summary Create a survey with its questions
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body createSurveyPayload true "Survey payload"
// @Success 201 {object} response.Envelope
// @Router /surveys [post]
func (h *SurveyHandler) Create(c *gin.Context) {
	var payload createSurveyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid survey payload"))
		return
	}
	input := service.CreateSurveyInput{
		Title:       payload.Title,
		Description: payload.Description,
		Active:      payload.Active,
	}
	for _, q := range payload.Questions {
		input.Questions = append(input.Questions, service.SurveyQuestionInput{Text: q.Text, Type: q.Type})
	}
	survey, err := h.surveys.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, survey)
}

// List godoc
// @Summary List surveys
// @Tags Surveys
// @Produce json
// @Param active query bool false "Only active surveys"
// @Success 200 {object} response.Envelope
// @Router /surveys [get]
func (h *SurveyHandler) List(c *gin.Context) {
	surveys, err := h.surveys.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, surveys, nil)
}

// ListActive godoc
// @Summary List surveys open for responses
// @Tags Surveys
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /surveys/active [get]
func (h *SurveyHandler) ListActive(c *gin.Context) {
	surveys, err := h.surveys.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, surveys, nil)
}

// Get godoc
// @Summary Get a survey with its questions
// @Tags Surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Router /surveys/{id} [get]
func (h *SurveyHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	survey, questions, err := h.surveys.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"survey": survey, "questions": questions}, nil)
}

// Submit godoc
// @Summary Submit answers to an active survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param payload body submitSurveyPayload true "Answers payload"
// @Success 201 {object} response.Envelope
// @Router /surveys/{id}/responses [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload submitSurveyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid answers payload"))
		return
	}
	answers := make([]service.SurveyAnswerInput, 0, len(payload.Answers))
	for _, a := range payload.Answers {
		answers = append(answers, service.SurveyAnswerInput{QuestionID: a.QuestionID, Value: a.Value, Text: a.Text})
	}
	saved, err := h.surveys.Submit(c.Request.Context(), id, payload.RespondentID, answers)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"saved": saved}, nil)
}

// SetActive godoc
// @Summary Open or close a survey
// @Tags Surveys
// @Accept json
// @Produce json
// @Param id path int true "Survey ID"
// @Param payload body setActivePayload true "Active flag"
// @Success 200 {object} response.Envelope
// @Router /surveys/{id}/active [put]
func (h *SurveyHandler) SetActive(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload setActivePayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Active == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "active flag is required"))
		return
	}
	if err := h.surveys.SetActive(c.Request.Context(), id, *payload.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"active": *payload.Active}, nil)
}

// Results godoc
// @Summary Summarize a survey's responses
// @Tags Surveys
// @Produce json
// @Param id path int true "Survey ID"
// @Success 200 {object} response.Envelope
// @Router /surveys/{id}/results [get]
func (h *SurveyHandler) Results(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.surveys.Results(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
