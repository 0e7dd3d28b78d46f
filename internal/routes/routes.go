package routes

import (
	"net/http"

	"workhub_backend/internal/handlers"
	"workhub_backend/internal/middleware"
	"workhub_backend/internal/models"
	"workhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers, quota services.QuotaService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public
	api.POST("/auth/register", h.AuthHandler.Register)
	api.POST("/auth/login", h.AuthHandler.Login)
	api.GET("/plans", h.PlanHandler.ListPlans)
	api.GET("/plans/:id", h.PlanHandler.GetPlan)
	api.GET("/jobs/:id", h.JobHandler.GetJob)
	api.GET("/slots/:ownerId", h.SlotHandler.GetTimeslots)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())

	authed.GET("/me", h.UserHandler.Me)
	authed.GET("/me/plan", h.PlanHandler.MyPlan)
	authed.GET("/me/entitlements/:capability", h.PlanHandler.CheckEntitlement)

	authed.POST("/enrollments", h.PlanHandler.Subscribe)
	authed.GET("/enrollments", h.PlanHandler.MyEnrollments)
	authed.DELETE("/enrollments", h.PlanHandler.CancelEnrollment)

	authed.POST("/users/:id/unlock-contact", h.UserHandler.UnlockContact)
	authed.POST("/users/:id/save",
		middleware.RequireQuota(quota, models.CapabilitySaveProfile),
		h.UserHandler.SaveProfile)

	authed.PUT("/slots", h.SlotHandler.UpsertTimeslots)

	authed.POST("/bookings", h.BookingHandler.Checkout)
	authed.GET("/bookings", h.BookingHandler.MyBookings)
	authed.PATCH("/bookings/:id/reschedule", h.BookingHandler.Reschedule)

	authed.GET("/points/balance", h.PointsHandler.Balance)
	authed.GET("/points/history", h.PointsHandler.History)

	// Jobs: posting is for employers and contractors, applying for workers.
	authed.POST("/jobs",
		middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleContractor),
		h.JobHandler.PostJob)
	authed.GET("/jobs", h.JobHandler.MyJobs)
	authed.POST("/jobs/:id/apply",
		middleware.RequireRoles(models.UserRoleWorker, models.UserRoleAssistant),
		h.JobHandler.Apply)
	authed.GET("/jobs/:id/applications", h.JobHandler.Applications)
}
