package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// ReportHandler exposes monthly summary reports.
type ReportHandler struct {
	reports *service.ReportService
	metrics *service.MetricsService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService, metrics *service.MetricsService) *ReportHandler {
	return &ReportHandler{reports: reports, metrics: metrics}
}

func monthYear(c *gin.Context) (int, int, error) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid month")
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid year")
	}
	return month, year, nil
}

// Generate godoc
// @Summary Generate or regenerate a monthly report
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /reports/{year}/{month}/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, summary, err := h.reports.Generate(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"report": report, "summary": summary}, nil)
}

// Get godoc
// @Summary Get a generated monthly report
// @Tags Reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /reports/{year}/{month} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, summary, err := h.reports.Get(c.Request.Context(), month, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"report": report, "summary": summary}, nil)
}

// List godoc
// @Summary List generated reports
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Download godoc
// @Summary Download a monthly report as CSV, XLSX, or PDF
// @Tags Reports
// @Produce octet-stream
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param format query string false "csv, xlsx, or pdf"
// @Success 200 {file} binary
// @Router /reports/{year}/{month}/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	month, year, err := monthYear(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := exportFormat(c)
	if !validExportFormat(format) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx, or pdf"))
		return
	}
	file, err := h.reports.Render(c.Request.Context(), month, year, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveExport("monthly_report", string(format))
	}
	writeExportFile(c, file)
}
