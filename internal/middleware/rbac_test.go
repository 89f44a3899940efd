package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/models"
)

func rbacRouter(role models.UserRole, withClaims bool, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if withClaims {
			c.Set(ContextUserKey, &models.JWTClaims{UserID: 1, Username: "tester", Role: role})
		}
		c.Next()
	})
	r.GET("/guarded", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireStaffAdmitsAdmin(t *testing.T) {
	router := rbacRouter(models.RoleAdmin, true, RequireStaff())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStaffAdmitsStaff(t *testing.T) {
	router := rbacRouter(models.RoleStaff, true, RequireStaff())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStaffRejectsUser(t *testing.T) {
	router := rbacRouter(models.RoleUser, true, RequireStaff())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	router := rbacRouter("", false, RequireRoles(models.RoleAdmin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRolesAdminOnly(t *testing.T) {
	router := rbacRouter(models.RoleStaff, true, RequireRoles(models.RoleAdmin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
