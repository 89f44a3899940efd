package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gco-office/gco-api/internal/models"
)

// ImportStore commits a batch of staged rows together with its import log in
// a single transaction. Either everything lands or nothing does.
type ImportStore struct {
	db         *sqlx.DB
	requests   *DocumentRequestRepository
	tickets    *TicketRepository
	logbook    *LogbookRepository
	surveys    *SurveyRepository
	importLogs *ImportLogRepository
}

// NewImportStore constructs the store over the shared connection pool.
func NewImportStore(db *sqlx.DB, requests *DocumentRequestRepository, tickets *TicketRepository, logbook *LogbookRepository, surveys *SurveyRepository, importLogs *ImportLogRepository) *ImportStore {
	return &ImportStore{
		db:         db,
		requests:   requests,
		tickets:    tickets,
		logbook:    logbook,
		surveys:    surveys,
		importLogs: importLogs,
	}
}

// SaveDocumentRequests stages requests, their creation status logs, and the
// import log in one transaction.
func (s *ImportStore) SaveDocumentRequests(ctx context.Context, rows []models.DocumentRequest, logs []models.RequestStatusLog, importLog *models.ImportLog) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i := range rows {
			if err := s.requests.InsertTx(ctx, tx, &rows[i]); err != nil {
				return err
			}
			logs[i].DocumentRequestID = rows[i].ID
			if err := insertStatusLogTx(ctx, tx, &logs[i]); err != nil {
				return err
			}
		}
		return s.importLogs.InsertTx(ctx, tx, importLog)
	})
}

// SaveTickets stages tickets and the import log in one transaction.
func (s *ImportStore) SaveTickets(ctx context.Context, rows []models.Ticket, importLog *models.ImportLog) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i := range rows {
			if err := s.tickets.InsertTx(ctx, tx, &rows[i]); err != nil {
				return err
			}
		}
		return s.importLogs.InsertTx(ctx, tx, importLog)
	})
}

// SaveLogbookEntries stages logbook entries and the import log in one
// transaction.
func (s *ImportStore) SaveLogbookEntries(ctx context.Context, rows []models.LogbookEntry, importLog *models.ImportLog) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i := range rows {
			if err := s.logbook.InsertTx(ctx, tx, &rows[i]); err != nil {
				return err
			}
		}
		return s.importLogs.InsertTx(ctx, tx, importLog)
	})
}

// SaveSurveyResponses stages survey responses and the import log in one
// transaction.
func (s *ImportStore) SaveSurveyResponses(ctx context.Context, rows []models.SurveyResponse, importLog *models.ImportLog) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i := range rows {
			if err := s.surveys.InsertResponseTx(ctx, tx, &rows[i]); err != nil {
				return err
			}
		}
		return s.importLogs.InsertTx(ctx, tx, importLog)
	})
}

// SaveLog writes an import log on its own, outside any batch transaction.
// Used to record Failed outcomes after a batch rolled back.
func (s *ImportStore) SaveLog(ctx context.Context, importLog *models.ImportLog) error {
	return s.importLogs.Create(ctx, importLog)
}

func (s *ImportStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import batch: %w", err)
	}
	return nil
}
