package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/tabular"
)

const (
	errInvalidFileType  = "Invalid file type. Use .csv or .xlsx"
	importErrorMaxChars = 1000
)

var (
	requestRequiredColumns = []string{"requester_name", "document_type"}
	ticketRequiredColumns  = []string{"subject", "requester_name"}
	logbookRequiredColumns = []string{"visitor_name", "date"}
)

type importBatchStore interface {
	SaveDocumentRequests(ctx context.Context, rows []models.DocumentRequest, logs []models.RequestStatusLog, importLog *models.ImportLog) error
	SaveTickets(ctx context.Context, rows []models.Ticket, importLog *models.ImportLog) error
	SaveLogbookEntries(ctx context.Context, rows []models.LogbookEntry, importLog *models.ImportLog) error
	SaveSurveyResponses(ctx context.Context, rows []models.SurveyResponse, importLog *models.ImportLog) error
	SaveLog(ctx context.Context, importLog *models.ImportLog) error
}

type ticketSequenceSeeder interface {
	MaxID(ctx context.Context) (int64, error)
}

type surveyImportReader interface {
	GetByID(ctx context.Context, id int64) (*models.Survey, error)
	Questions(ctx context.Context, surveyID int64) ([]models.SurveyQuestion, error)
}

// ImportService runs the bulk-import pipeline: type gate, decode, schema
// gate, per-row conversion with independent failures, then a single
// transaction for the staged rows and their import log.
type ImportService struct {
	store     importBatchStore
	allocator TrackingAllocator
	tickets   ticketSequenceSeeder
	surveys   surveyImportReader
	logger    *zap.Logger
	now       func() time.Time
}

// NewImportService constructs the service.
func NewImportService(store importBatchStore, allocator TrackingAllocator, tickets ticketSequenceSeeder, surveys surveyImportReader, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		store:     store,
		allocator: allocator,
		tickets:   tickets,
		surveys:   surveys,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ImportDocumentRequests imports document request rows, allocating fresh
// tracking numbers batch-sequentially. Returns (imported, failed, error).
func (s *ImportService) ImportDocumentRequests(ctx context.Context, file io.Reader, filename, actor string) (int, int, error) {
	sheet, err := s.openSheet(ctx, file, filename, models.ImportTypeDocumentRequests, actor)
	if err != nil {
		return 0, 0, err
	}
	if missing := sheet.MissingColumns(requestRequiredColumns); len(missing) > 0 {
		return 0, 0, missingColumnsError(missing)
	}

	now := s.now()
	numbers, err := s.allocator.Seed(ctx, now, len(sheet.Rows))
	if err != nil {
		return 0, 0, fmt.Errorf("seed tracking numbers: %w", err)
	}

	var (
		staged   []models.DocumentRequest
		logs     []models.RequestStatusLog
		imported int
		failed   int
	)
	note := "Imported from file"
	for _, row := range sheet.Rows {
		name := row.Get("requester_name").String()
		docType := row.Get("document_type").String()
		if name == "" || docType == "" {
			failed++
			continue
		}
		staged = append(staged, models.DocumentRequest{
			TrackingNumber: numbers[imported],
			RequesterName:  name,
			RequesterEmail: optionalString(row.Get("requester_email")),
			DocumentType:   docType,
			Purpose:        optionalString(row.Get("purpose")),
			Status:         models.RequestStatusPending,
			RequestedAt:    now,
		})
		logs = append(logs, models.RequestStatusLog{Status: models.RequestStatusPending, Notes: &note})
		imported++
	}

	importLog := s.newLog(models.ImportTypeDocumentRequests, filename, imported, failed, actor)
	if err := s.store.SaveDocumentRequests(ctx, staged, logs, importLog); err != nil {
		s.recordFailure(ctx, models.ImportTypeDocumentRequests, filename, actor, err)
		return 0, 0, err
	}
	s.logBatch(models.ImportTypeDocumentRequests, filename, imported, failed)
	return imported, failed, nil
}

// ImportTickets imports help-desk ticket rows, numbering them sequentially
// from the current maximum ticket id.
func (s *ImportService) ImportTickets(ctx context.Context, file io.Reader, filename, actor string) (int, int, error) {
	sheet, err := s.openSheet(ctx, file, filename, models.ImportTypeTickets, actor)
	if err != nil {
		return 0, 0, err
	}
	if missing := sheet.MissingColumns(ticketRequiredColumns); len(missing) > 0 {
		return 0, 0, missingColumnsError(missing)
	}

	maxID, err := s.tickets.MaxID(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("seed ticket numbers: %w", err)
	}

	now := s.now()
	var (
		staged   []models.Ticket
		imported int
		failed   int
	)
	for _, row := range sheet.Rows {
		subject := row.Get("subject").String()
		name := row.Get("requester_name").String()
		if subject == "" || name == "" {
			failed++
			continue
		}
		priority := row.Get("priority").String()
		if priority == "" {
			priority = models.TicketPriorityMedium
		}
		staged = append(staged, models.Ticket{
			TicketNumber:   FormatTicketNumber(now, maxID+int64(imported)+1),
			Subject:        subject,
			Description:    optionalString(row.Get("description")),
			RequesterName:  name,
			RequesterEmail: optionalString(row.Get("requester_email")),
			Status:         models.TicketStatusOpen,
			Priority:       priority,
		})
		imported++
	}

	importLog := s.newLog(models.ImportTypeTickets, filename, imported, failed, actor)
	if err := s.store.SaveTickets(ctx, staged, importLog); err != nil {
		s.recordFailure(ctx, models.ImportTypeTickets, filename, actor, err)
		return 0, 0, err
	}
	s.logBatch(models.ImportTypeTickets, filename, imported, failed)
	return imported, failed, nil
}

// ImportLogbook imports visitor logbook rows. The date may carry a time
// component; date-only values check in at midnight.
func (s *ImportService) ImportLogbook(ctx context.Context, file io.Reader, filename, actor string) (int, int, error) {
	sheet, err := s.openSheet(ctx, file, filename, models.ImportTypeLogbook, actor)
	if err != nil {
		return 0, 0, err
	}
	if missing := sheet.MissingColumns(logbookRequiredColumns); len(missing) > 0 {
		return 0, 0, missingColumnsError(missing)
	}

	var (
		staged   []models.LogbookEntry
		imported int
		failed   int
	)
	for _, row := range sheet.Rows {
		name := row.Get("visitor_name").String()
		raw := row.Get("date")
		if raw.Blank() {
			raw = row.Get("time_in")
		}
		if name == "" || raw.Blank() {
			failed++
			continue
		}
		timeIn, ok := parseImportTimestamp(raw.String())
		if !ok {
			failed++
			continue
		}
		staged = append(staged, models.LogbookEntry{
			VisitorName: name,
			Purpose:     optionalString(row.Get("purpose")),
			TimeIn:      timeIn,
			Date:        timeIn.Truncate(24 * time.Hour),
			Remarks:     optionalString(row.Get("remarks")),
		})
		imported++
	}

	importLog := s.newLog(models.ImportTypeLogbook, filename, imported, failed, actor)
	if err := s.store.SaveLogbookEntries(ctx, staged, importLog); err != nil {
		s.recordFailure(ctx, models.ImportTypeLogbook, filename, actor, err)
		return 0, 0, err
	}
	s.logBatch(models.ImportTypeLogbook, filename, imported, failed)
	return imported, failed, nil
}

// ImportSurveyResponses imports survey answers. Each row may answer several
// questions; imported counts recorded answers, not rows. The question column
// is either q<question id> or the first 30 characters of the question text.
func (s *ImportService) ImportSurveyResponses(ctx context.Context, file io.Reader, filename string, surveyID int64, actor string) (int, int, error) {
	if !tabular.AllowedExtension(filename) {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, errInvalidFileType)
	}

	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, appErrors.Clone(appErrors.ErrNotFound, "Survey not found")
		}
		return 0, 0, err
	}
	questions, err := s.surveys.Questions(ctx, survey.ID)
	if err != nil {
		return 0, 0, err
	}
	if len(questions) == 0 {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "Survey has no questions")
	}

	sheet, err := tabular.Decode(file, filename)
	if err != nil {
		s.recordFailure(ctx, models.ImportTypeSurveyResponses, filename, actor, err)
		return 0, 0, err
	}

	var (
		staged   []models.SurveyResponse
		imported int
		failed   int
	)
	for _, row := range sheet.Rows {
		for _, q := range questions {
			key := fmt.Sprintf("q%d", q.ID)
			if !sheet.HasColumn(key) {
				key = tabular.NormalizeColumn(truncateRunes(q.QuestionText, 30))
				if !sheet.HasColumn(key) {
					continue
				}
			}
			val := row.Get(key)
			if val.Blank() {
				continue
			}
			resp := models.SurveyResponse{SurveyID: survey.ID, QuestionID: q.ID}
			if val.Kind == tabular.Number {
				n := val.Number
				resp.ResponseValue = &n
			} else {
				text := val.String()
				resp.ResponseText = &text
			}
			staged = append(staged, resp)
			imported++
		}
	}

	importLog := s.newLog(models.ImportTypeSurveyResponses, filename, imported, failed, actor)
	if err := s.store.SaveSurveyResponses(ctx, staged, importLog); err != nil {
		s.recordFailure(ctx, models.ImportTypeSurveyResponses, filename, actor, err)
		return 0, 0, err
	}
	s.logBatch(models.ImportTypeSurveyResponses, filename, imported, failed)
	return imported, failed, nil
}

// openSheet runs the pre-batch gates shared by the flat import kinds: the
// extension allow-list (no import log on failure) and the decoder (decode
// failures do record a Failed log).
func (s *ImportService) openSheet(ctx context.Context, file io.Reader, filename, importType, actor string) (*tabular.Sheet, error) {
	if !tabular.AllowedExtension(filename) {
		return nil, appErrors.Clone(appErrors.ErrValidation, errInvalidFileType)
	}
	sheet, err := tabular.Decode(file, filename)
	if err != nil {
		s.recordFailure(ctx, importType, filename, actor, err)
		return nil, err
	}
	return sheet, nil
}

func (s *ImportService) newLog(importType, filename string, imported, failed int, actor string) *models.ImportLog {
	log := &models.ImportLog{
		ImportType:   importType,
		Filename:     filename,
		RowsImported: imported,
		RowsFailed:   failed,
		Status:       models.DeriveImportStatus(imported, failed),
	}
	if actor != "" {
		log.ImportedBy = &actor
	}
	return log
}

// recordFailure writes a standalone Failed log after the batch rolled back.
// A failure here is only logged: the original error is what the caller sees.
func (s *ImportService) recordFailure(ctx context.Context, importType, filename, actor string, cause error) {
	msg := truncateRunes(cause.Error(), importErrorMaxChars)
	log := &models.ImportLog{
		ImportType:   importType,
		Filename:     filename,
		Status:       models.ImportStatusFailed,
		ErrorMessage: &msg,
	}
	if actor != "" {
		log.ImportedBy = &actor
	}
	if err := s.store.SaveLog(ctx, log); err != nil {
		s.logger.Error("record failed import", zap.String("import_type", importType), zap.Error(err))
	}
}

func (s *ImportService) logBatch(importType, filename string, imported, failed int) {
	s.logger.Info("import batch committed",
		zap.String("import_type", importType),
		zap.String("filename", filename),
		zap.Int("imported", imported),
		zap.Int("failed", failed))
}

func missingColumnsError(missing []string) error {
	return appErrors.Clone(appErrors.ErrValidation,
		fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
}

func optionalString(v tabular.Value) *string {
	s := v.String()
	if s == "" {
		return nil
	}
	return &s
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var importTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

func parseImportTimestamp(raw string) (time.Time, bool) {
	for _, layout := range importTimestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
