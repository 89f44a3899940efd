package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gco-office/gco-api/internal/middleware"
	"github.com/gco-office/gco-api/internal/models"
	"github.com/gco-office/gco-api/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth             *AuthHandler
	DocumentRequests *DocumentRequestHandler
	Imports          *ImportHandler
	Exports          *ExportHandler
	Tickets          *TicketHandler
	Logbook          *LogbookHandler
	Appointments     *AppointmentHandler
	Surveys          *SurveyHandler
	Dashboard        *DashboardHandler
	Reports          *ReportHandler
	QRResources      *QRResourceHandler
	Users            *UserHandler
}

// RegisterRoutes mounts the API under the given prefix. Public routes
// carry OptionalJWT so authenticated submissions are attributed to the
// caller; staff and admin groups enforce roles.
func RegisterRoutes(r *gin.Engine, prefix string, auth *service.AuthService, h Handlers) {
	api := r.Group(prefix)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/verify", h.Auth.VerifyEmail)

	public := api.Group("", middleware.OptionalJWT(auth))
	{
		public.POST("/requests", h.DocumentRequests.Create)
		public.GET("/requests/track/:trackingNumber", h.DocumentRequests.Track)

		public.POST("/tickets", h.Tickets.Create)

		public.POST("/appointments", h.Appointments.Book)
		public.GET("/appointments/slots", h.Appointments.AvailableSlots)

		public.GET("/surveys/active", h.Surveys.ListActive)
		public.GET("/surveys/:id", h.Surveys.Get)
		public.POST("/surveys/:id/responses", h.Surveys.Submit)

		public.GET("/qr-resources", h.QRResources.List)
		public.GET("/qr-resources/:id/image", h.QRResources.Image)
	}

	authed := api.Group("", middleware.JWT(auth))
	{
		authed.GET("/me", h.Users.Me)
		authed.GET("/requests/mine", h.DocumentRequests.Mine)
		authed.GET("/appointments/mine", h.Appointments.Mine)
	}

	staff := api.Group("", middleware.JWT(auth), middleware.RequireStaff())
	{
		staff.GET("/requests", h.DocumentRequests.List)
		staff.GET("/requests/:id", h.DocumentRequests.Get)
		staff.GET("/requests/:id/history", h.DocumentRequests.History)
		staff.PUT("/requests/:id/status", h.DocumentRequests.UpdateStatus)

		staff.GET("/tickets", h.Tickets.List)
		staff.GET("/tickets/:id", h.Tickets.Get)
		staff.PUT("/tickets/:id", h.Tickets.Update)

		staff.POST("/logbook/check-in", h.Logbook.CheckIn)
		staff.PUT("/logbook/:id/check-out", h.Logbook.CheckOut)
		staff.GET("/logbook", h.Logbook.Range)
		staff.GET("/logbook/today", h.Logbook.Today)
		staff.GET("/logbook/active", h.Logbook.Active)

		staff.GET("/appointments", h.Appointments.List)
		staff.GET("/appointments/:id", h.Appointments.Get)
		staff.PUT("/appointments/:id/status", h.Appointments.Decide)

		staff.GET("/surveys", h.Surveys.List)
		staff.POST("/surveys", h.Surveys.Create)
		staff.PUT("/surveys/:id/active", h.Surveys.SetActive)
		staff.GET("/surveys/:id/results", h.Surveys.Results)

		staff.POST("/imports/requests", h.Imports.DocumentRequests)
		staff.POST("/imports/tickets", h.Imports.Tickets)
		staff.POST("/imports/logbook", h.Imports.Logbook)
		staff.POST("/imports/surveys/:surveyId/responses", h.Imports.SurveyResponses)
		staff.GET("/imports/history", h.Imports.History)

		staff.GET("/exports/requests", h.Exports.DocumentRequests)
		staff.GET("/exports/tickets", h.Exports.Tickets)
		staff.GET("/exports/logbook", h.Exports.Logbook)

		staff.GET("/dashboard", h.Dashboard.Overview)
		staff.POST("/dashboard/refresh", h.Dashboard.Refresh)

		staff.GET("/reports", h.Reports.List)
		staff.GET("/reports/:year/:month", h.Reports.Get)
		staff.POST("/reports/:year/:month/generate", h.Reports.Generate)
		staff.GET("/reports/:year/:month/download", h.Reports.Download)

		staff.GET("/qr-resources/:id", h.QRResources.Get)
	}

	admin := api.Group("", middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/qr-resources", h.QRResources.Create)
		admin.PUT("/qr-resources/:id", h.QRResources.Update)
		admin.DELETE("/qr-resources/:id", h.QRResources.Delete)

		admin.GET("/users", h.Users.List)
		admin.GET("/users/:id", h.Users.Get)
		admin.PUT("/users/:id/role", h.Users.SetRole)
		admin.PUT("/users/:id/active", h.Users.SetActive)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
