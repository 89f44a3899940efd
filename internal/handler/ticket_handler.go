package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// TicketHandler exposes the help-desk ticket lifecycle.
type TicketHandler struct {
	tickets *service.TicketService
}

// NewTicketHandler constructs TicketHandler.
func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

type createTicketPayload struct {
	Subject        string  `json:"subject" binding:"required"`
	Description    *string `json:"description"`
	RequesterName  string  `json:"requester_name" binding:"required"`
	RequesterEmail *string `json:"requester_email"`
	Priority       string  `json:"priority"`
}

type updateTicketPayload struct {
	Status     string  `json:"status" binding:"required"`
	AssignedTo *string `json:"assigned_to"`
}

// Create godoc
// @Summary Open a help-desk ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body createTicketPayload true "Ticket payload"
// @Success 201 {object} response.Envelope
// @Router /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var payload createTicketPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid ticket payload"))
		return
	}
	ticket, err := h.tickets.Create(c.Request.Context(), service.CreateTicketInput{
		Subject:        payload.Subject,
		Description:    payload.Description,
		RequesterName:  payload.RequesterName,
		RequesterEmail: payload.RequesterEmail,
		Priority:       payload.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ticket)
}

// List godoc
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.tickets.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tickets, nil)
}

// Get godoc
// @Summary Get one ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Envelope
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ticket, err := h.tickets.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket, nil)
}

// Update godoc
// @Summary Update a ticket's status or assignee
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param payload body updateTicketPayload true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload updateTicketPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid ticket payload"))
		return
	}
	ticket, err := h.tickets.Update(c.Request.Context(), id, payload.Status, payload.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket, nil)
}
