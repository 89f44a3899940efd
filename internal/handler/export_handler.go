package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/models"
	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// ExportHandler serves spreadsheet and PDF downloads.
type ExportHandler struct {
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, metrics *service.MetricsService) *ExportHandler {
	return &ExportHandler{exports: exports, metrics: metrics}
}

func exportFormat(c *gin.Context) models.ReportFormat {
	return models.ReportFormat(c.DefaultQuery("format", "csv"))
}

func (h *ExportHandler) serve(c *gin.Context, kind service.ExportKind) {
	format := exportFormat(c)
	if !validExportFormat(format) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx, or pdf"))
		return
	}
	file, err := h.exports.Export(c.Request.Context(), kind, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveExport(string(kind), string(format))
	}
	writeExportFile(c, file)
}

func writeExportFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}

// DocumentRequests godoc
// @Summary Export document requests
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, xlsx, or pdf"
// @Success 200 {file} binary
// @Router /exports/requests [get]
func (h *ExportHandler) DocumentRequests(c *gin.Context) {
	h.serve(c, service.ExportKindDocumentRequests)
}

// Tickets godoc
// @Summary Export help-desk tickets
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, xlsx, or pdf"
// @Success 200 {file} binary
// @Router /exports/tickets [get]
func (h *ExportHandler) Tickets(c *gin.Context) {
	h.serve(c, service.ExportKindTickets)
}

// Logbook godoc
// @Summary Export logbook entries
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, xlsx, or pdf"
// @Success 200 {file} binary
// @Router /exports/logbook [get]
func (h *ExportHandler) Logbook(c *gin.Context) {
	h.serve(c, service.ExportKindLogbook)
}

func validExportFormat(format models.ReportFormat) bool {
	switch format {
	case models.ReportFormatCSV, models.ReportFormatXLSX, models.ReportFormatPDF:
		return true
	}
	return false
}
