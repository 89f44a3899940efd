package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type stubSurveyStore struct {
	survey    *models.Survey
	questions []models.SurveyQuestion
	responses []models.SurveyResponse
	saved     []models.SurveyResponse
	avg       *float64
	activeOK  bool
}

func (s *stubSurveyStore) Create(_ context.Context, survey *models.Survey, questions []models.SurveyQuestion) error {
	survey.ID = 1
	s.survey = survey
	s.questions = questions
	return nil
}

func (s *stubSurveyStore) GetByID(_ context.Context, id int64) (*models.Survey, error) {
	if s.survey == nil || s.survey.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.survey, nil
}

func (s *stubSurveyStore) List(_ context.Context, _ bool) ([]models.Survey, error) { return nil, nil }

func (s *stubSurveyStore) Questions(_ context.Context, _ int64) ([]models.SurveyQuestion, error) {
	return s.questions, nil
}

func (s *stubSurveyStore) SetActive(_ context.Context, _ int64, _ bool) (bool, error) {
	return s.activeOK, nil
}

func (s *stubSurveyStore) SaveResponses(_ context.Context, responses []models.SurveyResponse) error {
	s.saved = responses
	return nil
}

func (s *stubSurveyStore) Responses(_ context.Context, _ int64) ([]models.SurveyResponse, error) {
	return s.responses, nil
}

func (s *stubSurveyStore) AverageRating(_ context.Context, _ int64) (*float64, error) {
	return s.avg, nil
}

func TestSurveyCreateDefaultsQuestionType(t *testing.T) {
	store := &stubSurveyStore{}
	svc := NewSurveyService(store, nil)

	_, err := svc.Create(context.Background(), CreateSurveyInput{
		Title:     "Service Feedback",
		Active:    true,
		Questions: []SurveyQuestionInput{{Text: "How satisfied are you?"}},
	})
	require.NoError(t, err)
	require.Equal(t, models.QuestionTypeRating, store.questions[0].QuestionType)
}

func TestSurveyCreateRequiresQuestions(t *testing.T) {
	svc := NewSurveyService(&stubSurveyStore{}, nil)
	_, err := svc.Create(context.Background(), CreateSurveyInput{Title: "Empty"})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSurveySubmitSkipsBlankAnswers(t *testing.T) {
	rating := 5.0
	blank := "   "
	store := &stubSurveyStore{
		survey:    &models.Survey{ID: 1, Active: true},
		questions: []models.SurveyQuestion{{ID: 10, SurveyID: 1}, {ID: 11, SurveyID: 1}},
	}
	svc := NewSurveyService(store, nil)

	n, err := svc.Submit(context.Background(), 1, nil, []SurveyAnswerInput{
		{QuestionID: 10, Value: &rating},
		{QuestionID: 11, Text: &blank},
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, store.saved, 1)
	require.Equal(t, int64(10), store.saved[0].QuestionID)
}

func TestSurveySubmitRejectsClosedSurvey(t *testing.T) {
	rating := 4.0
	store := &stubSurveyStore{
		survey:    &models.Survey{ID: 1, Active: false},
		questions: []models.SurveyQuestion{{ID: 10, SurveyID: 1}},
	}
	svc := NewSurveyService(store, nil)

	_, err := svc.Submit(context.Background(), 1, nil, []SurveyAnswerInput{{QuestionID: 10, Value: &rating}})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSurveySubmitRejectsForeignQuestion(t *testing.T) {
	rating := 4.0
	store := &stubSurveyStore{
		survey:    &models.Survey{ID: 1, Active: true},
		questions: []models.SurveyQuestion{{ID: 10, SurveyID: 1}},
	}
	svc := NewSurveyService(store, nil)

	_, err := svc.Submit(context.Background(), 1, nil, []SurveyAnswerInput{{QuestionID: 99, Value: &rating}})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSurveyResultsAggregates(t *testing.T) {
	avg := 4.2
	store := &stubSurveyStore{
		survey:    &models.Survey{ID: 1, Active: true},
		questions: []models.SurveyQuestion{{ID: 10, SurveyID: 1}},
		responses: []models.SurveyResponse{{ID: 1}, {ID: 2}, {ID: 3}},
		avg:       &avg,
	}
	svc := NewSurveyService(store, nil)

	result, err := svc.Results(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 3, result.ResponseCount)
	require.Equal(t, 4.2, *result.AverageRating)
}
