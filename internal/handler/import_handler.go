package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/models"
	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

type importHistoryLister interface {
	List(ctx context.Context, limit int) ([]models.ImportLog, error)
}

// ImportHandler accepts spreadsheet uploads and feeds them to the
// import pipeline.
type ImportHandler struct {
	imports   *service.ImportService
	history   importHistoryLister
	metrics   *service.MetricsService
	dashboard *service.DashboardService
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(imports *service.ImportService, history importHistoryLister, metrics *service.MetricsService, dashboard *service.DashboardService) *ImportHandler {
	return &ImportHandler{imports: imports, history: history, metrics: metrics, dashboard: dashboard}
}

type importResult struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

func (h *ImportHandler) runImport(c *gin.Context, importType string,
	run func(ctx context.Context, file io.Reader, filename, actor string) (int, int, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, "IMPORT_READ_FAILED", http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	imported, failed, err := run(c.Request.Context(), file, fileHeader.Filename, actorName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveImport(importType, imported, failed)
	}
	if h.dashboard != nil && imported > 0 {
		h.dashboard.Invalidate(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, importResult{Imported: imported, Failed: failed}, nil)
}

// DocumentRequests godoc
// @Summary Import document requests from a spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} response.Envelope
// @Router /imports/requests [post]
func (h *ImportHandler) DocumentRequests(c *gin.Context) {
	h.runImport(c, "document_requests", h.imports.ImportDocumentRequests)
}

// Tickets godoc
// @Summary Import help-desk tickets from a spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} response.Envelope
// @Router /imports/tickets [post]
func (h *ImportHandler) Tickets(c *gin.Context) {
	h.runImport(c, "tickets", h.imports.ImportTickets)
}

// Logbook godoc
// @Summary Import logbook entries from a spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} response.Envelope
// @Router /imports/logbook [post]
func (h *ImportHandler) Logbook(c *gin.Context) {
	h.runImport(c, "logbook", h.imports.ImportLogbook)
}

// SurveyResponses godoc
// @Summary Import survey responses from a spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param surveyId path int true "Survey ID"
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} response.Envelope
// @Router /imports/surveys/{surveyId}/responses [post]
func (h *ImportHandler) SurveyResponses(c *gin.Context) {
	surveyID, err := strconv.ParseInt(c.Param("surveyId"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid survey id"))
		return
	}
	h.runImport(c, "survey_responses", func(ctx context.Context, file io.Reader, filename, actor string) (int, int, error) {
		return h.imports.ImportSurveyResponses(ctx, file, filename, surveyID, actor)
	})
}

// History godoc
// @Summary List recent import runs
// @Tags Imports
// @Produce json
// @Param limit query int false "Maximum rows, default 50"
// @Success 200 {object} response.Envelope
// @Router /imports/history [get]
func (h *ImportHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}
