package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type surveyStore interface {
	Create(ctx context.Context, survey *models.Survey, questions []models.SurveyQuestion) error
	GetByID(ctx context.Context, id int64) (*models.Survey, error)
	List(ctx context.Context, activeOnly bool) ([]models.Survey, error)
	Questions(ctx context.Context, surveyID int64) ([]models.SurveyQuestion, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	SaveResponses(ctx context.Context, responses []models.SurveyResponse) error
	Responses(ctx context.Context, surveyID int64) ([]models.SurveyResponse, error)
	AverageRating(ctx context.Context, surveyID int64) (*float64, error)
}

// CreateSurveyInput carries a survey definition.
type CreateSurveyInput struct {
	Title       string
	Description *string
	Active      bool
	Questions   []SurveyQuestionInput
}

// SurveyQuestionInput is one question of a new survey.
type SurveyQuestionInput struct {
	Text string
	Type string
}

// SurveyAnswerInput is one answered question of a submission.
type SurveyAnswerInput struct {
	QuestionID int64
	Value      *float64
	Text       *string
}

// SurveyResult summarizes a survey for staff review.
type SurveyResult struct {
	Survey        models.Survey           `json:"survey"`
	Questions     []models.SurveyQuestion `json:"questions"`
	ResponseCount int                     `json:"response_count"`
	AverageRating *float64                `json:"average_rating,omitempty"`
}

// SurveyService owns satisfaction surveys and their responses.
type SurveyService struct {
	surveys surveyStore
	logger  *zap.Logger
}

// NewSurveyService constructs the service.
func NewSurveyService(surveys surveyStore, logger *zap.Logger) *SurveyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{surveys: surveys, logger: logger}
}

// Create persists a survey and its questions.
func (s *SurveyService) Create(ctx context.Context, input CreateSurveyInput) (*models.Survey, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if len(input.Questions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one question is required")
	}

	questions := make([]models.SurveyQuestion, 0, len(input.Questions))
	for _, q := range input.Questions {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "question text is required")
		}
		qType := q.Type
		switch qType {
		case models.QuestionTypeRating, models.QuestionTypeText, models.QuestionTypeChoice:
		case "":
			qType = models.QuestionTypeRating
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown question type")
		}
		questions = append(questions, models.SurveyQuestion{QuestionText: text, QuestionType: qType})
	}

	survey := &models.Survey{Title: input.Title, Description: input.Description, Active: input.Active}
	if err := s.surveys.Create(ctx, survey, questions); err != nil {
		return nil, err
	}
	s.logger.Info("survey created", zap.Int64("survey_id", survey.ID), zap.Int("questions", len(questions)))
	return survey, nil
}

// Get returns a survey with its questions.
func (s *SurveyService) Get(ctx context.Context, id int64) (*models.Survey, []models.SurveyQuestion, error) {
	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "survey not found")
		}
		return nil, nil, err
	}
	questions, err := s.surveys.Questions(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return survey, questions, nil
}

// List returns surveys; public callers see active ones only.
func (s *SurveyService) List(ctx context.Context, activeOnly bool) ([]models.Survey, error) {
	return s.surveys.List(ctx, activeOnly)
}

// SetActive toggles a survey.
func (s *SurveyService) SetActive(ctx context.Context, id int64, active bool) error {
	ok, err := s.surveys.SetActive(ctx, id, active)
	if err != nil {
		return err
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "survey not found")
	}
	return nil
}

// Submit records one respondent's answers. Answers to questions outside the
// survey are rejected; blank answers are skipped.
func (s *SurveyService) Submit(ctx context.Context, surveyID int64, respondentID *string, answers []SurveyAnswerInput) (int, error) {
	survey, questions, err := s.Get(ctx, surveyID)
	if err != nil {
		return 0, err
	}
	if !survey.Active {
		return 0, appErrors.Clone(appErrors.ErrValidation, "survey is closed")
	}

	known := make(map[int64]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	var responses []models.SurveyResponse
	for _, a := range answers {
		if !known[a.QuestionID] {
			return 0, appErrors.Clone(appErrors.ErrValidation, "answer references a question outside this survey")
		}
		if a.Value == nil && (a.Text == nil || strings.TrimSpace(*a.Text) == "") {
			continue
		}
		responses = append(responses, models.SurveyResponse{
			SurveyID:      surveyID,
			QuestionID:    a.QuestionID,
			ResponseValue: a.Value,
			ResponseText:  a.Text,
			RespondentID:  respondentID,
		})
	}
	if len(responses) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "no answers provided")
	}

	if err := s.surveys.SaveResponses(ctx, responses); err != nil {
		return 0, err
	}
	return len(responses), nil
}

// Results aggregates a survey's responses for staff review.
func (s *SurveyService) Results(ctx context.Context, surveyID int64) (*SurveyResult, error) {
	survey, questions, err := s.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	responses, err := s.surveys.Responses(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	avg, err := s.surveys.AverageRating(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return &SurveyResult{
		Survey:        *survey,
		Questions:     questions,
		ResponseCount: len(responses),
		AverageRating: avg,
	}, nil
}
