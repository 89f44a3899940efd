package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type stubUserAdminStore struct {
	users      map[int64]*models.User
	lastRole   models.UserRole
	lastActive bool
}

func (s *stubUserAdminStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserAdminStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserAdminStore) SetActive(_ context.Context, id int64, active bool) (bool, error) {
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.Active = active
	s.lastActive = active
	return true, nil
}

func (s *stubUserAdminStore) SetRole(_ context.Context, id int64, role models.UserRole) (bool, error) {
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.Role = role
	s.lastRole = role
	return true, nil
}

func TestUserServicePromoteToStaff(t *testing.T) {
	store := &stubUserAdminStore{users: map[int64]*models.User{
		3: {ID: 3, Username: "ana", Role: models.RoleUser, Active: true},
	}}
	svc := NewUserService(store, nil)

	updated, err := svc.SetRole(context.Background(), 3, 1, models.RoleStaff)
	require.NoError(t, err)
	require.Equal(t, models.RoleStaff, updated.Role)
}

func TestUserServiceRejectsSelfDemotion(t *testing.T) {
	store := &stubUserAdminStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "admin", Role: models.RoleAdmin, Active: true},
	}}
	svc := NewUserService(store, nil)

	_, err := svc.SetRole(context.Background(), 1, 1, models.RoleUser)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Equal(t, models.RoleAdmin, store.users[1].Role)
}

func TestUserServiceRejectsSelfDeactivation(t *testing.T) {
	store := &stubUserAdminStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "admin", Role: models.RoleAdmin, Active: true},
	}}
	svc := NewUserService(store, nil)

	_, err := svc.SetActive(context.Background(), 1, 1, false)
	require.Error(t, err)
	require.True(t, store.users[1].Active)
}

func TestUserServiceDeactivateOther(t *testing.T) {
	store := &stubUserAdminStore{users: map[int64]*models.User{
		5: {ID: 5, Username: "ghost", Role: models.RoleUser, Active: true},
	}}
	svc := NewUserService(store, nil)

	updated, err := svc.SetActive(context.Background(), 5, 1, false)
	require.NoError(t, err)
	require.False(t, updated.Active)
}

func TestUserServiceUnknownUser(t *testing.T) {
	svc := NewUserService(&stubUserAdminStore{users: map[int64]*models.User{}}, nil)

	_, err := svc.SetRole(context.Background(), 99, 1, models.RoleStaff)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUnknownRole(t *testing.T) {
	svc := NewUserService(&stubUserAdminStore{users: map[int64]*models.User{}}, nil)

	_, err := svc.SetRole(context.Background(), 2, 1, models.UserRole("Superuser"))
	require.Error(t, err)
}
