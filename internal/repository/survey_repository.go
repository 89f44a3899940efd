package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gco-office/gco-api/internal/models"
)

// SurveyRepository persists surveys, their questions, and responses.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs the repository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// Create inserts a survey together with its questions in one transaction.
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey, questions []models.SurveyQuestion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create survey: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	const surveyQuery = `INSERT INTO surveys (title, description, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, surveyQuery,
		survey.Title, survey.Description, survey.Active, survey.CreatedAt, survey.UpdatedAt,
	).Scan(&survey.ID); err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}

	const questionQuery = `INSERT INTO survey_questions (survey_id, question_text, question_type, order_index, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range questions {
		q := &questions[i]
		q.SurveyID = survey.ID
		q.OrderIndex = i
		q.CreatedAt = now
		if err := tx.QueryRowContext(ctx, questionQuery,
			q.SurveyID, q.QuestionText, q.QuestionType, q.OrderIndex, q.CreatedAt,
		).Scan(&q.ID); err != nil {
			return fmt.Errorf("insert survey question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create survey: %w", err)
	}
	return nil
}

// GetByID returns one survey.
func (r *SurveyRepository) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	const query = `SELECT id, title, description, active, created_at, updated_at FROM surveys WHERE id = $1`
	var s models.Survey
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	return &s, nil
}

// List returns surveys newest-first. When activeOnly is set only active
// surveys are returned.
func (r *SurveyRepository) List(ctx context.Context, activeOnly bool) ([]models.Survey, error) {
	query := `SELECT id, title, description, active, created_at, updated_at FROM surveys`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var surveys []models.Survey
	if err := r.db.SelectContext(ctx, &surveys, query); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return surveys, nil
}

// Questions returns a survey's questions in display order.
func (r *SurveyRepository) Questions(ctx context.Context, surveyID int64) ([]models.SurveyQuestion, error) {
	const query = `SELECT id, survey_id, question_text, question_type, order_index, created_at
FROM survey_questions WHERE survey_id = $1 ORDER BY order_index ASC`
	var questions []models.SurveyQuestion
	if err := r.db.SelectContext(ctx, &questions, query, surveyID); err != nil {
		return nil, fmt.Errorf("list survey questions: %w", err)
	}
	return questions, nil
}

// SetActive toggles a survey on or off. Returns false when the survey does
// not exist.
func (r *SurveyRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	const query = `UPDATE surveys SET active = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("toggle survey: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle survey: %w", err)
	}
	return affected > 0, nil
}

// SaveResponses inserts one respondent's answers in a single transaction.
func (r *SurveyRepository) SaveResponses(ctx context.Context, responses []models.SurveyResponse) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save responses: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i := range responses {
		if err := insertSurveyResponseTx(ctx, tx, &responses[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save responses: %w", err)
	}
	return nil
}

// Responses returns all responses for a survey, oldest first.
func (r *SurveyRepository) Responses(ctx context.Context, surveyID int64) ([]models.SurveyResponse, error) {
	const query = `SELECT id, survey_id, question_id, response_value, response_text, respondent_id, created_at
FROM survey_responses WHERE survey_id = $1 ORDER BY id ASC`
	var responses []models.SurveyResponse
	if err := r.db.SelectContext(ctx, &responses, query, surveyID); err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	return responses, nil
}

// AverageRating returns the mean of all numeric responses for a survey, or
// nil when it has none.
func (r *SurveyRepository) AverageRating(ctx context.Context, surveyID int64) (*float64, error) {
	const query = `SELECT AVG(response_value) FROM survey_responses WHERE survey_id = $1 AND response_value IS NOT NULL`
	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, query, surveyID); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// InsertResponseTx stages one response inside an import transaction.
func (r *SurveyRepository) InsertResponseTx(ctx context.Context, tx *sqlx.Tx, resp *models.SurveyResponse) error {
	return insertSurveyResponseTx(ctx, tx, resp)
}

func insertSurveyResponseTx(ctx context.Context, tx *sqlx.Tx, resp *models.SurveyResponse) error {
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO survey_responses (survey_id, question_id, response_value, response_text, respondent_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		resp.SurveyID,
		resp.QuestionID,
		resp.ResponseValue,
		resp.ResponseText,
		resp.RespondentID,
		resp.CreatedAt,
	).Scan(&resp.ID); err != nil {
		return fmt.Errorf("insert survey response: %w", err)
	}
	return nil
}
