package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/service"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
	"github.com/gco-office/gco-api/pkg/response"
)

// QRResourceHandler exposes QR code resources: public listing and image
// serving, admin upload and management.
type QRResourceHandler struct {
	resources *service.QRResourceService
}

// NewQRResourceHandler constructs QRResourceHandler.
func NewQRResourceHandler(resources *service.QRResourceService) *QRResourceHandler {
	return &QRResourceHandler{resources: resources}
}

func qrInputFromForm(c *gin.Context) service.QRResourceInput {
	orderIndex, _ := strconv.Atoi(c.PostForm("order_index"))
	input := service.QRResourceInput{
		Name:       c.PostForm("name"),
		OrderIndex: orderIndex,
		Active:     c.DefaultPostForm("active", "true") == "true",
	}
	if v := c.PostForm("description"); v != "" {
		input.Description = &v
	}
	if v := c.PostForm("form_url"); v != "" {
		input.FormURL = &v
	}
	return input
}

// Create godoc
// @Summary Upload a QR resource with its image
// @Tags QRResources
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Resource name"
// @Param image formData file true "QR code image"
// @Success 201 {object} response.Envelope
// @Router /qr-resources [post]
func (h *QRResourceHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, "UPLOAD_READ_FAILED", http.StatusBadRequest, "failed to read uploaded image"))
		return
	}
	defer file.Close() //nolint:errcheck

	resource, err := h.resources.Create(c.Request.Context(), qrInputFromForm(c), file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

// List godoc
// @Summary List QR resources
// @Tags QRResources
// @Produce json
// @Param active query bool false "Only active resources"
// @Success 200 {object} response.Envelope
// @Router /qr-resources [get]
func (h *QRResourceHandler) List(c *gin.Context) {
	resources, err := h.resources.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, nil)
}

// Get godoc
// @Summary Get one QR resource
// @Tags QRResources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Envelope
// @Router /qr-resources/{id} [get]
func (h *QRResourceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resource, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Image godoc
// @Summary Serve a QR resource's image
// @Tags QRResources
// @Produce octet-stream
// @Param id path int true "Resource ID"
// @Success 200 {file} binary
// @Router /qr-resources/{id}/image [get]
func (h *QRResourceHandler) Image(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	path, err := h.resources.ImagePath(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.File(path)
}

// Update godoc
// @Summary Update a QR resource's metadata
// @Tags QRResources
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Envelope
// @Router /qr-resources/{id} [put]
func (h *QRResourceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resource, err := h.resources.Update(c.Request.Context(), id, qrInputFromForm(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Delete godoc
// @Summary Delete a QR resource and its image
// @Tags QRResources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 204 {object} nil
// @Router /qr-resources/{id} [delete]
func (h *QRResourceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.resources.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
