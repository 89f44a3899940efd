package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type userAdminStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	SetRole(ctx context.Context, id int64, role models.UserRole) (bool, error)
}

// UserService covers the admin side of account management.
type UserService struct {
	users  userAdminStore
	logger *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users userAdminStore, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, logger: logger}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, err
}

// SetActive enables or disables an account. An admin cannot disable
// their own account.
func (s *UserService) SetActive(ctx context.Context, id, actorID int64, active bool) (*models.User, error) {
	if id == actorID && !active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot deactivate your own account")
	}
	ok, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	s.logger.Info("user active flag changed", zap.Int64("user_id", id), zap.Bool("active", active))
	return s.Get(ctx, id)
}

// SetRole changes an account's role. An admin cannot demote themselves.
func (s *UserService) SetRole(ctx context.Context, id, actorID int64, role models.UserRole) (*models.User, error) {
	switch role {
	case models.RoleAdmin, models.RoleStaff, models.RoleUser:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	if id == actorID && role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot change your own role")
	}
	ok, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	s.logger.Info("user role changed", zap.Int64("user_id", id), zap.String("role", string(role)))
	return s.Get(ctx, id)
}
