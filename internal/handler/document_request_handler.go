package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/models"
	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// DocumentRequestHandler exposes the document request lifecycle.
type DocumentRequestHandler struct {
	requests *service.DocumentRequestService
}

// NewDocumentRequestHandler constructs DocumentRequestHandler.
func NewDocumentRequestHandler(requests *service.DocumentRequestService) *DocumentRequestHandler {
	return &DocumentRequestHandler{requests: requests}
}

type createRequestPayload struct {
	RequesterName  string  `json:"requester_name" binding:"required"`
	RequesterEmail *string `json:"requester_email"`
	DocumentType   string  `json:"document_type" binding:"required"`
	Purpose        *string `json:"purpose"`
	Notes          *string `json:"notes"`
}

type updateStatusPayload struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// Create godoc
// @Summary Submit a document request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Param payload body createRequestPayload true "Request payload"
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *DocumentRequestHandler) Create(c *gin.Context) {
	var payload createRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request payload"))
		return
	}

	input := service.CreateDocumentRequestInput{
		RequesterName:  payload.RequesterName,
		RequesterEmail: payload.RequesterEmail,
		DocumentType:   payload.DocumentType,
		Purpose:        payload.Purpose,
		Notes:          payload.Notes,
	}
	if claims, ok := currentClaims(c); ok {
		input.UserID = &claims.UserID
	}

	req, err := h.requests.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// Track godoc
// @Summary Track a request by tracking number
// @Tags DocumentRequests
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} response.Envelope
// @Router /requests/track/{trackingNumber} [get]
func (h *DocumentRequestHandler) Track(c *gin.Context) {
	req, history, err := h.requests.Track(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"request": req, "history": history}, nil)
}

// List godoc
// @Summary List document requests
// @Tags DocumentRequests
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *DocumentRequestHandler) List(c *gin.Context) {
	filter := models.DocumentRequestFilter{Status: c.Query("status")}
	requests, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Mine godoc
// @Summary List the caller's own requests
// @Tags DocumentRequests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/mine [get]
func (h *DocumentRequestHandler) Mine(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := models.DocumentRequestFilter{UserID: &claims.UserID}
	requests, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Get godoc
// @Summary Get one document request
// @Tags DocumentRequests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *DocumentRequestHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// History godoc
// @Summary Get a request's status history
// @Tags DocumentRequests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/history [get]
func (h *DocumentRequestHandler) History(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	history, err := h.requests.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// UpdateStatus godoc
// @Summary Update a request's status
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body updateStatusPayload true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/status [put]
func (h *DocumentRequestHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid status payload"))
		return
	}

	input := service.UpdateRequestStatusInput{Status: payload.Status, Notes: payload.Notes}
	if actor := actorName(c); actor != "" {
		input.ChangedBy = &actor
	}

	req, err := h.requests.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}
