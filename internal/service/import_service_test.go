package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type stubBatchStore struct {
	savedRequests    []models.DocumentRequest
	savedRequestLogs []models.RequestStatusLog
	savedTickets     []models.Ticket
	savedEntries     []models.LogbookEntry
	savedResponses   []models.SurveyResponse
	batchLog         *models.ImportLog
	standaloneLogs   []models.ImportLog
	saveErr          error
}

func (s *stubBatchStore) SaveDocumentRequests(_ context.Context, rows []models.DocumentRequest, logs []models.RequestStatusLog, importLog *models.ImportLog) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedRequests = rows
	s.savedRequestLogs = logs
	s.batchLog = importLog
	return nil
}

func (s *stubBatchStore) SaveTickets(_ context.Context, rows []models.Ticket, importLog *models.ImportLog) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedTickets = rows
	s.batchLog = importLog
	return nil
}

func (s *stubBatchStore) SaveLogbookEntries(_ context.Context, rows []models.LogbookEntry, importLog *models.ImportLog) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedEntries = rows
	s.batchLog = importLog
	return nil
}

func (s *stubBatchStore) SaveSurveyResponses(_ context.Context, rows []models.SurveyResponse, importLog *models.ImportLog) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.savedResponses = rows
	s.batchLog = importLog
	return nil
}

func (s *stubBatchStore) SaveLog(_ context.Context, importLog *models.ImportLog) error {
	s.standaloneLogs = append(s.standaloneLogs, *importLog)
	return nil
}

type stubTicketSeeder struct {
	maxID int64
}

func (s *stubTicketSeeder) MaxID(_ context.Context) (int64, error) {
	return s.maxID, nil
}

type stubSurveyReader struct {
	survey    *models.Survey
	questions []models.SurveyQuestion
}

func (s *stubSurveyReader) GetByID(_ context.Context, id int64) (*models.Survey, error) {
	if s.survey == nil || s.survey.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.survey, nil
}

func (s *stubSurveyReader) Questions(_ context.Context, _ int64) ([]models.SurveyQuestion, error) {
	return s.questions, nil
}

func newImportService(store *stubBatchStore, scanner *stubTrackingScanner, seeder *stubTicketSeeder, surveys *stubSurveyReader) *ImportService {
	if scanner == nil {
		scanner = &stubTrackingScanner{}
	}
	if seeder == nil {
		seeder = &stubTicketSeeder{}
	}
	if surveys == nil {
		surveys = &stubSurveyReader{}
	}
	return NewImportService(store, NewScanTrackingAllocator(scanner), seeder, surveys, nil)
}

func TestImportRequestsRejectsDisallowedExtension(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, nil)

	imported, failed, err := svc.ImportDocumentRequests(context.Background(),
		strings.NewReader("junk"), "data.txt", "admin")
	require.Equal(t, 0, imported)
	require.Equal(t, 0, failed)
	require.EqualError(t, appErrors.FromError(err), "Invalid file type. Use .csv or .xlsx")
	require.Nil(t, store.batchLog)
	require.Empty(t, store.standaloneLogs)
}

func TestImportRequestsReportsMissingColumns(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, nil)

	csv := "Requester Name,Purpose\nJuan,Enrollment\n"
	imported, failed, err := svc.ImportDocumentRequests(context.Background(),
		strings.NewReader(csv), "requests.csv", "admin")
	require.Equal(t, 0, imported)
	require.Equal(t, 0, failed)
	require.EqualError(t, appErrors.FromError(err), "Missing required columns: document_type")
	require.Nil(t, store.batchLog)
	require.Empty(t, store.standaloneLogs)
}

func TestImportRequestsPartialBatch(t *testing.T) {
	store := &stubBatchStore{}
	scanner := &stubTrackingScanner{numbers: []string{"GCO-2025-00009"}}
	svc := newImportService(store, scanner, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC) }

	csv := strings.Join([]string{
		"requester_name,document_type,purpose",
		"Juan Dela Cruz,Certificate,Enrollment",
		"Ana Santos,Good Moral,",
		"Pedro Reyes,,Transfer",
		"Maria Lopez,Form 137,Records",
		"",
	}, "\n")

	imported, failed, err := svc.ImportDocumentRequests(context.Background(),
		strings.NewReader(csv), "requests.csv", "admin")
	require.NoError(t, err)
	require.Equal(t, 3, imported)
	require.Equal(t, 1, failed)

	require.Len(t, store.savedRequests, 3)
	require.Equal(t, "GCO-2025-00010", store.savedRequests[0].TrackingNumber)
	require.Equal(t, "GCO-2025-00011", store.savedRequests[1].TrackingNumber)
	require.Equal(t, "GCO-2025-00012", store.savedRequests[2].TrackingNumber)
	require.Len(t, store.savedRequestLogs, 3)
	require.Equal(t, models.RequestStatusPending, store.savedRequestLogs[0].Status)

	require.NotNil(t, store.batchLog)
	require.Equal(t, models.ImportStatusPartial, store.batchLog.Status)
	require.Equal(t, 3, store.batchLog.RowsImported)
	require.Equal(t, 1, store.batchLog.RowsFailed)
	require.Equal(t, "admin", *store.batchLog.ImportedBy)
}

func TestImportRequestsAllValidIsSuccess(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, nil)

	csv := "requester_name,document_type\nJuan,Certificate\nAna,Form 137\n"
	imported, failed, err := svc.ImportDocumentRequests(context.Background(),
		strings.NewReader(csv), "requests.csv", "")
	require.NoError(t, err)
	require.Equal(t, 2, imported)
	require.Equal(t, 0, failed)
	require.Equal(t, models.ImportStatusSuccess, store.batchLog.Status)
	require.Nil(t, store.batchLog.ImportedBy)
}

func TestImportRequestsCommitFailureWritesFailedLog(t *testing.T) {
	store := &stubBatchStore{saveErr: errors.New("pq: " + strings.Repeat("x", 1200))}
	svc := newImportService(store, nil, nil, nil)

	csv := "requester_name,document_type\nJuan,Certificate\n"
	imported, failed, err := svc.ImportDocumentRequests(context.Background(),
		strings.NewReader(csv), "requests.csv", "admin")
	require.Error(t, err)
	require.Equal(t, 0, imported)
	require.Equal(t, 0, failed)

	require.Len(t, store.standaloneLogs, 1)
	failedLog := store.standaloneLogs[0]
	require.Equal(t, models.ImportStatusFailed, failedLog.Status)
	require.Zero(t, failedLog.RowsImported)
	require.Len(t, []rune(*failedLog.ErrorMessage), 1000)
}

func TestImportTicketsNumbersBatchSequentially(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, &stubTicketSeeder{maxID: 41}, nil)
	svc.now = func() time.Time { return time.Date(2025, time.September, 3, 9, 0, 0, 0, time.UTC) }

	csv := strings.Join([]string{
		"Subject,Requester Name,Priority",
		"Broken printer,Ana,High",
		"ID reprint,Ben,",
		",Carla,Low",
	}, "\n")

	imported, failed, err := svc.ImportTickets(context.Background(),
		strings.NewReader(csv), "tickets.csv", "staff")
	require.NoError(t, err)
	require.Equal(t, 2, imported)
	require.Equal(t, 1, failed)

	require.Equal(t, "TKT-20250903-0042", store.savedTickets[0].TicketNumber)
	require.Equal(t, "TKT-20250903-0043", store.savedTickets[1].TicketNumber)
	require.Equal(t, "High", store.savedTickets[0].Priority)
	require.Equal(t, models.TicketPriorityMedium, store.savedTickets[1].Priority)
	require.Equal(t, models.ImportStatusPartial, store.batchLog.Status)
}

func TestImportLogbookDateOnlyChecksInAtMidnight(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, nil)

	csv := strings.Join([]string{
		"visitor_name,date,purpose",
		"Ana Santos,2025-02-14,Follow up",
		"Ben Cruz,2025-02-14 10:30,Claim stub",
		"Carla Reyes,not-a-date,",
	}, "\n")

	imported, failed, err := svc.ImportLogbook(context.Background(),
		strings.NewReader(csv), "visitors.csv", "staff")
	require.NoError(t, err)
	require.Equal(t, 2, imported)
	require.Equal(t, 1, failed)

	require.Equal(t, time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC), store.savedEntries[0].TimeIn)
	require.Equal(t, time.Date(2025, time.February, 14, 10, 30, 0, 0, time.UTC), store.savedEntries[1].TimeIn)
	require.Equal(t, store.savedEntries[1].Date, time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC))
}

func TestImportSurveyResponsesMapsColumnsToQuestions(t *testing.T) {
	store := &stubBatchStore{}
	surveys := &stubSurveyReader{
		survey: &models.Survey{ID: 5, Title: "Service Feedback"},
		questions: []models.SurveyQuestion{
			{ID: 1, SurveyID: 5, QuestionText: "How satisfied are you with the service"},
			{ID: 2, SurveyID: 5, QuestionText: "Any comments"},
		},
	}
	svc := newImportService(store, nil, nil, surveys)

	csv := strings.Join([]string{
		"q1,any_comments",
		"5,Great service",
		"4,",
		",Slow queue",
	}, "\n")

	imported, failed, err := svc.ImportSurveyResponses(context.Background(),
		strings.NewReader(csv), "responses.csv", 5, "admin")
	require.NoError(t, err)
	require.Equal(t, 4, imported)
	require.Equal(t, 0, failed)

	require.Len(t, store.savedResponses, 4)
	require.Equal(t, 5.0, *store.savedResponses[0].ResponseValue)
	require.Equal(t, "Great service", *store.savedResponses[1].ResponseText)
	require.Equal(t, int64(2), store.savedResponses[3].QuestionID)
	require.Equal(t, models.ImportStatusSuccess, store.batchLog.Status)
}

func TestImportSurveyResponsesUnknownSurvey(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, &stubSurveyReader{})

	_, _, err := svc.ImportSurveyResponses(context.Background(),
		strings.NewReader("q1\n5\n"), "responses.csv", 42, "admin")
	require.EqualError(t, appErrors.FromError(err), "Survey not found")
	require.Nil(t, store.batchLog)
}

func TestImportSurveyResponsesNoQuestions(t *testing.T) {
	store := &stubBatchStore{}
	svc := newImportService(store, nil, nil, &stubSurveyReader{survey: &models.Survey{ID: 7}})

	_, _, err := svc.ImportSurveyResponses(context.Background(),
		strings.NewReader("q1\n5\n"), "responses.csv", 7, "admin")
	require.EqualError(t, appErrors.FromError(err), "Survey has no questions")
}
