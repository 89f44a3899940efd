package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

var qrImageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

type qrResourceStore interface {
	Create(ctx context.Context, res *models.QRResource) error
	GetByID(ctx context.Context, id int64) (*models.QRResource, error)
	List(ctx context.Context, activeOnly bool) ([]models.QRResource, error)
	Update(ctx context.Context, res *models.QRResource) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type imageStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
	Path(filename string) string
}

// QRResourceInput carries the editable fields of a QR resource.
type QRResourceInput struct {
	Name        string
	Description *string
	FormURL     *string
	OrderIndex  int
	Active      bool
}

// QRResourceService manages admin-uploaded QR code images.
type QRResourceService struct {
	resources qrResourceStore
	storage   imageStorage
	logger    *zap.Logger
}

// NewQRResourceService constructs the service.
func NewQRResourceService(resources qrResourceStore, storage imageStorage, logger *zap.Logger) *QRResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QRResourceService{resources: resources, storage: storage, logger: logger}
}

// Create stores the uploaded image and persists the resource.
func (s *QRResourceService) Create(ctx context.Context, input QRResourceInput, image io.Reader, imageName string) (*models.QRResource, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	ext := strings.ToLower(filepath.Ext(imageName))
	if !qrImageExtensions[ext] {
		return nil, appErrors.Clone(appErrors.ErrValidation, "image must be .png, .jpg, .jpeg or .gif")
	}

	stored := fmt.Sprintf("qr-%s%s", uuid.NewString(), ext)
	if _, err := s.storage.SaveStream(stored, image); err != nil {
		return nil, fmt.Errorf("store qr image: %w", err)
	}

	res := &models.QRResource{
		Name:          input.Name,
		Description:   input.Description,
		ImageFilename: stored,
		FormURL:       input.FormURL,
		OrderIndex:    input.OrderIndex,
		Active:        input.Active,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		if delErr := s.storage.Delete(stored); delErr != nil {
			s.logger.Warn("orphaned qr image", zap.String("filename", stored), zap.Error(delErr))
		}
		return nil, err
	}
	return res, nil
}

// Get returns one resource.
func (s *QRResourceService) Get(ctx context.Context, id int64) (*models.QRResource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "qr resource not found")
		}
		return nil, err
	}
	return res, nil
}

// List returns resources in display order.
func (s *QRResourceService) List(ctx context.Context, activeOnly bool) ([]models.QRResource, error) {
	return s.resources.List(ctx, activeOnly)
}

// ImagePath resolves the on-disk path of a resource's image.
func (s *QRResourceService) ImagePath(ctx context.Context, id int64) (string, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.Path(res.ImageFilename), nil
}

// Update rewrites the editable fields, keeping the stored image.
func (s *QRResourceService) Update(ctx context.Context, id int64, input QRResourceInput) (*models.QRResource, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	res.Name = input.Name
	res.Description = input.Description
	res.FormURL = input.FormURL
	res.OrderIndex = input.OrderIndex
	res.Active = input.Active

	ok, err := s.resources.Update(ctx, res)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "qr resource not found")
	}
	return res, nil
}

// Delete removes the resource and its stored image.
func (s *QRResourceService) Delete(ctx context.Context, id int64) error {
	res, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.resources.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "qr resource not found")
	}
	if err := s.storage.Delete(res.ImageFilename); err != nil {
		s.logger.Warn("qr image cleanup failed", zap.String("filename", res.ImageFilename), zap.Error(err))
	}
	return nil
}
