package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
)

func newImportStore(db *sqlx.DB) *ImportStore {
	return NewImportStore(db,
		NewDocumentRequestRepository(db),
		NewTicketRepository(db),
		NewLogbookRepository(db),
		NewSurveyRepository(db),
		NewImportLogRepository(db),
	)
}

func TestImportStoreSaveTicketsCommitsRowsAndLogTogether(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	store := newImportStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO import_logs")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	rows := []models.Ticket{
		{TicketNumber: "TKT-20250101-0001", Subject: "Printer down", RequesterName: "Ana"},
		{TicketNumber: "TKT-20250101-0002", Subject: "ID reprint", RequesterName: "Ben"},
	}
	log := &models.ImportLog{
		ImportType:   models.ImportTypeTickets,
		Filename:     "tickets.xlsx",
		RowsImported: 2,
		Status:       models.ImportStatusSuccess,
	}

	require.NoError(t, store.SaveTickets(context.Background(), rows, log))
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, int64(5), log.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportStoreSaveTicketsRollsBackWholeBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	store := newImportStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	rows := []models.Ticket{
		{TicketNumber: "TKT-20250101-0001", Subject: "Printer down", RequesterName: "Ana"},
		{TicketNumber: "TKT-20250101-0002", Subject: "ID reprint", RequesterName: "Ben"},
	}
	err := store.SaveTickets(context.Background(), rows, &models.ImportLog{ImportType: models.ImportTypeTickets})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportStoreSaveDocumentRequestsWritesStatusLogs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	store := newImportStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO document_requests")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO request_status_logs")).
		WithArgs(int64(11), "Pending", sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO import_logs")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	rows := []models.DocumentRequest{
		{TrackingNumber: "GCO-2025-00002", RequesterName: "Ana Santos", DocumentType: "Good Moral"},
	}
	logs := []models.RequestStatusLog{{Status: "Pending"}}
	importLog := &models.ImportLog{
		ImportType:   models.ImportTypeDocumentRequests,
		Filename:     "requests.csv",
		RowsImported: 1,
		Status:       models.ImportStatusSuccess,
	}

	require.NoError(t, store.SaveDocumentRequests(context.Background(), rows, logs, importLog))
	require.Equal(t, int64(11), logs[0].DocumentRequestID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportStoreSaveLogOutsideBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	store := newImportStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO import_logs")).
		WithArgs(models.ImportTypeLogbook, "visitors.csv", 0, 0, models.ImportStatusFailed, sqlmock.AnyArg(), nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	msg := "commit failed"
	err := store.SaveLog(context.Background(), &models.ImportLog{
		ImportType:   models.ImportTypeLogbook,
		Filename:     "visitors.csv",
		Status:       models.ImportStatusFailed,
		ErrorMessage: &msg,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
