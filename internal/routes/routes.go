package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-citas/internal/audit"
	"github.com/BruksfildServices01/agenda-citas/internal/auth"
	"github.com/BruksfildServices01/agenda-citas/internal/config"
	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-citas/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
	"github.com/BruksfildServices01/agenda-citas/internal/middleware"
	"github.com/BruksfildServices01/agenda-citas/internal/reminder"
	"github.com/BruksfildServices01/agenda-citas/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-citas/internal/usecase/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/usecase/workinghours"
)

// Infra holds the singletons built in main.
type Infra struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *metrics.Collector
	Repo     *infraRepo.AppointmentGormRepository
	Catalog  *infraRepo.CachedCatalog
	Cache    domain.SlotCache
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Scanner  *reminder.Scanner
	Clock    *timezone.Clock
}

func RegisterRoutes(r *gin.Engine, in Infra) {
	cfg := in.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(in.Log),
		middleware.RequestLogger(in.Log, in.Metrics),
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(in.Metrics.Handler()))

	// ======================================================
	// DOMAIN SERVICES
	// ======================================================
	calendar := ucAppointment.NewWorkingHoursCalendar(in.Repo)
	conflicts := ucAppointment.NewConflictDetector(in.Repo, cfg.Booking.ConflictIncludeCanceled)
	calculator := ucAppointment.NewAvailabilityCalculator(
		calendar,
		conflicts,
		cfg.Booking.SlotStep,
		cfg.Booking.ReferenceDuration,
	)

	deps := ucAppointment.Deps{
		Repo:      in.Repo,
		Catalog:   in.Catalog,
		Calendar:  calendar,
		Conflicts: conflicts,
		Cache:     in.Cache,
		Audit:     in.Audit,
		Metrics:   in.Metrics,
		Log:       in.Log,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(deps)
	setStatusUC := ucAppointment.NewSetStatus(deps)
	rescheduleUC := ucAppointment.NewReschedule(deps)
	deleteUC := ucAppointment.NewDeleteAppointment(deps)
	listUC := ucAppointment.NewListAppointments(in.Repo)
	availabilityUC := ucAppointment.NewGetAvailability(deps, calculator)
	clientUC := ucAppointment.NewClientAppointments(deps)

	hoursManager := workinghours.NewManager(in.Repo, in.Cache, in.Audit, in.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	tokens := auth.NewJWTProvider(cfg.JWT)

	authHandler := handlers.NewAuthHandler(in.DB, tokens, in.Log)
	catalogHandler := handlers.NewCatalogHandler(in.DB, in.Catalog)
	publicHandler := handlers.NewPublicHandler(createUC, clientUC, availabilityUC, in.Clock)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		setStatusUC,
		rescheduleUC,
		deleteUC,
		listUC,
		availabilityUC,
		in.Clock,
	)
	workingHoursHandler := handlers.NewWorkingHoursHandler(hoursManager)
	reminderHandler := handlers.NewReminderHandler(in.Scanner, in.Clock)
	auditLogsHandler := handlers.NewAuditLogsHandler(in.AuditLog, in.Clock)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/employees", catalogHandler.ListEmployees)
			publicAPI.GET("/services", catalogHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/appointments/lookup", publicHandler.Lookup)
			publicAPI.POST("/appointments/exists", publicHandler.Exists)
			publicAPI.POST("/appointments/:id/cancel", publicHandler.Cancel)
		}

		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/availability", appointmentHandler.HasAvailability)
			secured.PUT("/appointments/:id/status", appointmentHandler.SetStatus)
			secured.PUT("/appointments/:id/start", appointmentHandler.Reschedule)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/employees", catalogHandler.ListEmployees)
			secured.POST("/employees", catalogHandler.CreateEmployee)
			secured.DELETE("/employees/:id", catalogHandler.DeactivateEmployee)
			secured.GET("/services", catalogHandler.ListServices)
			secured.POST("/services", catalogHandler.CreateService)
			secured.PUT("/services/:id", catalogHandler.UpdateService)

			secured.GET("/employees/:id/working-hours", workingHoursHandler.List)
			secured.POST("/employees/:id/working-hours", workingHoursHandler.Add)
			secured.DELETE("/employees/:id/working-hours", workingHoursHandler.Clear)
			secured.DELETE("/working-hours/:id", workingHoursHandler.Remove)

			secured.GET("/reminders", reminderHandler.List)
			secured.POST("/reminders/:id/dismiss", reminderHandler.Dismiss)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
