package models

import "time"

// Survey question types.
const (
	QuestionTypeRating = "rating"
	QuestionTypeText   = "text"
	QuestionTypeChoice = "choice"
)

// Survey is a satisfaction survey definition.
type Survey struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SurveyQuestion is one question within a survey.
type SurveyQuestion struct {
	ID           int64     `db:"id" json:"id"`
	SurveyID     int64     `db:"survey_id" json:"survey_id"`
	QuestionText string    `db:"question_text" json:"question_text"`
	QuestionType string    `db:"question_type" json:"question_type"`
	OrderIndex   int       `db:"order_index" json:"order_index"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SurveyResponse is one answered question. Numeric answers populate
// ResponseValue, free-text answers populate ResponseText.
type SurveyResponse struct {
	ID            int64     `db:"id" json:"id"`
	SurveyID      int64     `db:"survey_id" json:"survey_id"`
	QuestionID    int64     `db:"question_id" json:"question_id"`
	ResponseValue *float64  `db:"response_value" json:"response_value,omitempty"`
	ResponseText  *string   `db:"response_text" json:"response_text,omitempty"`
	RespondentID  *string   `db:"respondent_id" json:"respondent_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
