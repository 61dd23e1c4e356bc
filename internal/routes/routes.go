package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/handlers"
	"github.com/BruksfildServices01/garage-scheduler/internal/lock"
	"github.com/BruksfildServices01/garage-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/garage-scheduler/internal/usecase/appointment"
)

// Deps are the singletons the routes are built from. DB and Redis are nil
// when not configured.
type Deps struct {
	Log       *zap.Logger
	Repo      domain.Repository
	Locker    lock.Locker
	Events    domain.EventLog
	Policy    ucAppointment.Policy
	JWTSecret string
	RateLimit int

	DB    *gorm.DB
	Redis *redis.Client
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(d.Log))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(d.RateLimit))

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Repo, d.Locker, d.Events, d.Policy)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(d.Repo, d.Locker, d.Events, d.Policy)
	setStatusUC := ucAppointment.NewSetStatus(d.Repo, d.Locker, d.Events, d.Policy)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d.Repo, d.Events)
	getAppointmentUC := ucAppointment.NewGetAppointment(d.Repo)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(d.Repo)
	getAvailabilityUC := ucAppointment.NewGetAvailability(d.Repo, d.Policy)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		setStatusUC,
		deleteAppointmentUC,
		getAppointmentUC,
		listAppointmentsByDateUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.Repo)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Redis)

	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.JWTSecret))
	{
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.ListByDate)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PATCH("/appointments/:id", appointmentHandler.Update)
		api.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.GET("/availability", availabilityHandler.Get)

		api.GET("/working-hours", workingHoursHandler.Get)
		api.PUT("/working-hours", workingHoursHandler.Update)

		if d.DB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
			api.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
