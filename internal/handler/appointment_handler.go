package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// AppointmentHandler exposes appointment booking and staff review.
type AppointmentHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

type bookAppointmentPayload struct {
	RequesterName   string  `json:"requester_name" binding:"required"`
	RequesterEmail  string  `json:"requester_email" binding:"required"`
	RequesterPhone  *string `json:"requester_phone"`
	AppointmentType string  `json:"appointment_type" binding:"required"`
	Purpose         *string `json:"purpose"`
	PreferredDate   string  `json:"preferred_date" binding:"required"`
	PreferredTime   string  `json:"preferred_time" binding:"required"`
}

type decideAppointmentPayload struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// Book godoc
// @Summary Book an appointment slot
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body bookAppointmentPayload true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	var payload bookAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid appointment payload"))
		return
	}
	date, err := time.Parse("2006-01-02", payload.PreferredDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "preferred_date must be YYYY-MM-DD"))
		return
	}

	input := service.BookAppointmentInput{
		RequesterName:   payload.RequesterName,
		RequesterEmail:  payload.RequesterEmail,
		RequesterPhone:  payload.RequesterPhone,
		AppointmentType: payload.AppointmentType,
		Purpose:         payload.Purpose,
		PreferredDate:   date,
		PreferredTime:   payload.PreferredTime,
	}
	if claims, ok := currentClaims(c); ok {
		input.UserID = &claims.UserID
	}

	appointment, err := h.appointments.Book(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appointment)
}

// AvailableSlots godoc
// @Summary List open time slots for a date
// @Tags Appointments
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /appointments/slots [get]
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	slots, err := h.appointments.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"date": c.Query("date"), "slots": slots}, nil)
}

// List godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointments.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments, nil)
}

// Mine godoc
// @Summary List the caller's own appointments
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /appointments/mine [get]
func (h *AppointmentHandler) Mine(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	appointments, err := h.appointments.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments, nil)
}

// Get godoc
// @Summary Get one appointment
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	appointment, err := h.appointments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointment, nil)
}

// Decide godoc
// @Summary Approve, reject, or close an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param payload body decideAppointmentPayload true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) Decide(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload decideAppointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
		return
	}
	appointment, err := h.appointments.Decide(c.Request.Context(), id, payload.Status, payload.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointment, nil)
}
