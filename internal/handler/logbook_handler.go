package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// LogbookHandler exposes the visitor logbook.
type LogbookHandler struct {
	logbook *service.LogbookService
}

// NewLogbookHandler constructs LogbookHandler.
func NewLogbookHandler(logbook *service.LogbookService) *LogbookHandler {
	return &LogbookHandler{logbook: logbook}
}

type checkInPayload struct {
	VisitorName       string  `json:"visitor_name" binding:"required"`
	Purpose           *string `json:"purpose"`
	Remarks           *string `json:"remarks"`
	DocumentRequestID *int64  `json:"document_request_id"`
}

// CheckIn godoc
// @Summary Record a visitor arrival
// @Tags Logbook
// @Accept json
// @Produce json
// @Param payload body checkInPayload true "Check-in payload"
// @Success 201 {object} response.Envelope
// @Router /logbook/check-in [post]
func (h *LogbookHandler) CheckIn(c *gin.Context) {
	var payload checkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid check-in payload"))
		return
	}
	entry, err := h.logbook.CheckIn(c.Request.Context(), service.CheckInInput{
		VisitorName:       payload.VisitorName,
		Purpose:           payload.Purpose,
		Remarks:           payload.Remarks,
		DocumentRequestID: payload.DocumentRequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// CheckOut godoc
// @Summary Record a visitor departure
// @Tags Logbook
// @Produce json
// @Param id path int true "Logbook entry ID"
// @Success 200 {object} response.Envelope
// @Router /logbook/{id}/check-out [put]
func (h *LogbookHandler) CheckOut(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.logbook.CheckOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Today godoc
// @Summary List today's logbook entries
// @Tags Logbook
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logbook/today [get]
func (h *LogbookHandler) Today(c *gin.Context) {
	entries, err := h.logbook.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Active godoc
// @Summary List visitors currently checked in
// @Tags Logbook
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logbook/active [get]
func (h *LogbookHandler) Active(c *gin.Context) {
	entries, err := h.logbook.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Range godoc
// @Summary List logbook entries in a date range
// @Tags Logbook
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /logbook [get]
func (h *LogbookHandler) Range(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be YYYY-MM-DD"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be YYYY-MM-DD"))
		return
	}
	entries, err := h.logbook.Range(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
