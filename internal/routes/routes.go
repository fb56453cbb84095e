package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/audit"
	"github.com/smilemore/clinic-scheduler/internal/cache"
	"github.com/smilemore/clinic-scheduler/internal/config"
	domain "github.com/smilemore/clinic-scheduler/internal/domain/schedule"
	"github.com/smilemore/clinic-scheduler/internal/handlers"
	infraRepo "github.com/smilemore/clinic-scheduler/internal/infra/repository"
	"github.com/smilemore/clinic-scheduler/internal/middleware"
	"github.com/smilemore/clinic-scheduler/internal/sse"
	ucSchedule "github.com/smilemore/clinic-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	calendarCache *cache.CalendarCache,
	broadcaster *sse.Broadcaster,
	loc *time.Location,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	hours := domain.DefaultBusinessHours()

	// ======================================================
	// USE CASES (SCHEDULING)
	// ======================================================
	bookUC := ucSchedule.NewBookAppointment(scheduleRepo, auditDispatcher, hours, loc)
	updateUC := ucSchedule.NewUpdateAppointment(scheduleRepo, auditDispatcher, hours, loc)
	cancelUC := ucSchedule.NewCancelAppointment(scheduleRepo, auditDispatcher, loc)
	completeUC := ucSchedule.NewCompleteAppointment(scheduleRepo, auditDispatcher, loc)
	restoreUC := ucSchedule.NewRestoreAppointment(scheduleRepo, auditDispatcher, hours, loc)
	deleteUC := ucSchedule.NewDeleteAppointment(scheduleRepo, auditDispatcher)
	calendarUC := ucSchedule.NewGetCalendar(scheduleRepo, calendarCache)
	validateUC := ucSchedule.NewValidateSlot(scheduleRepo, hours, loc)
	historyUC := ucSchedule.NewGetPatientHistory(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clinicHandler := handlers.NewClinicHandler(db, calendarCache)
	patientHandler := handlers.NewPatientHandler(db)
	procedureHandler := handlers.NewProcedureHandler(db)
	templateHandler := handlers.NewTemplateHandler(db)
	waTemplateHandler := handlers.NewWaTemplateHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		updateUC,
		cancelUC,
		completeUC,
		restoreUC,
		deleteUC,
		calendarUC,
		validateUC,
		historyUC,
		calendarCache,
		broadcaster,
		loc,
	)

	exportHandler := handlers.NewExportHandler(db, loc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Me)

			// ------------------------------
			// CATALOGS
			// ------------------------------
			secured.GET("/clinics", clinicHandler.List)
			secured.GET("/procedures", procedureHandler.List)
			secured.GET("/templates", templateHandler.List)

			secured.GET("/patients", patientHandler.List)
			secured.GET("/patients/:id", patientHandler.Get)
			secured.POST("/patients", patientHandler.Create)
			secured.PATCH("/patients/:id", patientHandler.Update)
			secured.DELETE("/patients/:id", patientHandler.Delete)
			secured.GET("/patients/:id/appointments", appointmentHandler.PatientHistory)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/calendar", appointmentHandler.Calendar)
			secured.POST("/appointments", appointmentHandler.Book)
			secured.POST("/appointments/validate-slot", appointmentHandler.ValidateSlot)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/restore", appointmentHandler.Restore)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// EVENTS
			// ------------------------------
			secured.GET("/events/stream", broadcaster.Stream)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/users", authHandler.CreateUser)

				admin.POST("/clinics", clinicHandler.Create)
				admin.PATCH("/clinics/:id", clinicHandler.Update)
				admin.DELETE("/clinics/:id", clinicHandler.Delete)

				admin.POST("/procedures", procedureHandler.Create)
				admin.PATCH("/procedures/:id", procedureHandler.Update)
				admin.DELETE("/procedures/:id", procedureHandler.Delete)

				admin.POST("/templates", templateHandler.Create)
				admin.PATCH("/templates/:id", templateHandler.Update)
				admin.DELETE("/templates/:id", templateHandler.Delete)

				admin.GET("/wa-templates", waTemplateHandler.List)
				admin.POST("/wa-templates", waTemplateHandler.Create)
				admin.PATCH("/wa-templates/:id", waTemplateHandler.Update)
				admin.DELETE("/wa-templates/:id", waTemplateHandler.Delete)

				admin.GET("/appointments/export", exportHandler.ExportAppointments)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
