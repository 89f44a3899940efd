package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type fakeRequestStore struct {
	created *models.DocumentRequest
	byTrack map[string]*models.DocumentRequest
}

func (f *fakeRequestStore) Create(_ context.Context, req *models.DocumentRequest, _ *models.RequestStatusLog) error {
	req.ID = 1
	f.created = req
	return nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id int64) (*models.DocumentRequest, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
}

func (f *fakeRequestStore) GetByTracking(_ context.Context, trackingNumber string) (*models.DocumentRequest, error) {
	if req, ok := f.byTrack[trackingNumber]; ok {
		return req, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "tracking number not found")
}

func (f *fakeRequestStore) List(_ context.Context, _ models.DocumentRequestFilter) ([]models.DocumentRequest, error) {
	if f.created == nil {
		return nil, nil
	}
	return []models.DocumentRequest{*f.created}, nil
}

func (f *fakeRequestStore) UpdateStatusWithLog(_ context.Context, id int64, status string, completedAt *time.Time, _ *models.RequestStatusLog) (bool, error) {
	if f.created == nil || f.created.ID != id {
		return false, nil
	}
	f.created.Status = status
	f.created.CompletedAt = completedAt
	return true, nil
}

func (f *fakeRequestStore) History(_ context.Context, _ int64) ([]models.RequestStatusLog, error) {
	return []models.RequestStatusLog{{ID: 1, DocumentRequestID: 1, Status: "Pending"}}, nil
}

type fakeAllocator struct{ next string }

func (f *fakeAllocator) Next(_ context.Context, _ time.Time) (string, error) {
	return f.next, nil
}

func (f *fakeAllocator) Seed(_ context.Context, _ time.Time, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		out[i] = f.next
	}
	return out, nil
}

func newRequestRouter(store *fakeRequestStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewDocumentRequestService(store, &fakeAllocator{next: "GCO-2025-00007"}, nil, nil)
	h := NewDocumentRequestHandler(svc)

	r := gin.New()
	r.POST("/requests", h.Create)
	r.GET("/requests/track/:trackingNumber", h.Track)
	r.PUT("/requests/:id/status", h.UpdateStatus)
	return r
}

func TestDocumentRequestHandlerCreate(t *testing.T) {
	store := &fakeRequestStore{}
	router := newRequestRouter(store)

	body := `{"requester_name":"Juan Dela Cruz","document_type":"Good Moral Certificate"}`
	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data models.DocumentRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "GCO-2025-00007", envelope.Data.TrackingNumber)
	require.Equal(t, "Pending", envelope.Data.Status)
}

func TestDocumentRequestHandlerCreateMissingFields(t *testing.T) {
	router := newRequestRouter(&fakeRequestStore{})

	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString(`{"requester_name":"Juan"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentRequestHandlerTrackUnknown(t *testing.T) {
	router := newRequestRouter(&fakeRequestStore{byTrack: map[string]*models.DocumentRequest{}})

	req := httptest.NewRequest(http.MethodGet, "/requests/track/GCO-2025-99999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentRequestHandlerTrackFound(t *testing.T) {
	store := &fakeRequestStore{byTrack: map[string]*models.DocumentRequest{
		"GCO-2025-00042": {ID: 9, TrackingNumber: "GCO-2025-00042", Status: "Processing"},
	}}
	router := newRequestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/requests/track/GCO-2025-00042", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"GCO-2025-00042"`)
	require.Contains(t, rec.Body.String(), `"history"`)
}

func TestDocumentRequestHandlerUpdateStatus(t *testing.T) {
	store := &fakeRequestStore{}
	router := newRequestRouter(store)

	create := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString(
		`{"requester_name":"Ana","document_type":"Form 137"}`))
	create.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), create)

	update := httptest.NewRequest(http.MethodPut, "/requests/1/status", bytes.NewBufferString(`{"status":"Ready"}`))
	update.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, update)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Ready", store.created.Status)
	require.NotNil(t, store.created.CompletedAt)
}

func TestDocumentRequestHandlerUpdateStatusBadID(t *testing.T) {
	router := newRequestRouter(&fakeRequestStore{})

	req := httptest.NewRequest(http.MethodPut, "/requests/abc/status", bytes.NewBufferString(`{"status":"Ready"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
