package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-core/internal/audit"
	"github.com/BruksfildServices01/agenda-core/internal/availability"
	"github.com/BruksfildServices01/agenda-core/internal/cache"
	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/export"
	"github.com/BruksfildServices01/agenda-core/internal/handlers"
	infraRepo "github.com/BruksfildServices01/agenda-core/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-core/internal/jobs"
	"github.com/BruksfildServices01/agenda-core/internal/middleware"
	"github.com/BruksfildServices01/agenda-core/internal/notify"
	"github.com/BruksfildServices01/agenda-core/internal/payment"
	"github.com/BruksfildServices01/agenda-core/internal/pricing"
	ucBooking "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	slotStore := infraRepo.NewSlotGormStore(db)

	var slotCache availability.SlotCache
	if cfg.RedisAddr != "" {
		slotCache = cache.NewSlotCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	settings := cfg.Booking()
	availManager := availability.NewManager(
		slotStore,
		bookingRepo,
		slotCache,
		settings.SlotStepMinutes,
	)

	auditLogger := audit.New(db)
	notifier := notify.NewNotifier()
	dispatcher := events.NewDispatcher(auditLogger, notifier)

	pricer := pricing.NewEngine()

	var deposits domain.DepositCollector
	if cfg.MercadoPagoToken != "" {
		collector, err := payment.NewMercadoPagoCollector(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("mercado pago desabilitado: %v", err)
		} else {
			deposits = collector
		}
	}

	var exporter ucBooking.Exporter
	if cfg.S3Bucket != "" {
		exporter = export.NewS3Exporter(
			cfg.AWSRegion,
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			cfg.S3Bucket,
		)
	}

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		availManager,
		pricer,
		deposits,
		dispatcher,
		cfg,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		availManager,
		dispatcher,
		cfg,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		availManager,
		dispatcher,
		cfg,
	)

	finishBookingUC := ucBooking.NewFinishBooking(
		bookingRepo,
		availManager,
		dispatcher,
		cfg,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	recurringUC := ucBooking.NewCreateRecurringSeries(
		bookingRepo,
		createBookingUC,
		cfg,
	)

	waitlistUC := ucBooking.NewWaitlistManager(
		bookingRepo,
		availManager,
		dispatcher,
		cfg,
	)

	analyticsUC := ucBooking.NewBookingAnalytics(bookingRepo, exporter)

	// ======================================================
	// ⏰ BACKGROUND JOBS
	// ======================================================
	scheduler := jobs.NewScheduler(bookingRepo, notifier, waitlistUC, cfg)
	if err := scheduler.Start(); err != nil {
		log.Printf("scheduler não iniciou: %v", err)
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		finishBookingUC,
		listBookingsUC,
		cfg,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(bookingRepo, availManager, cfg)
	recurringHandler := handlers.NewRecurringHandler(recurringUC, cfg)
	waitlistHandler := handlers.NewWaitlistHandler(waitlistUC)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC, cfg)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", catalogHandler.ListServices)
			publicAPI.GET("/staff", catalogHandler.ListStaff)
			publicAPI.GET("/availability", availabilityHandler.Slots)
			publicAPI.GET("/availability/check", availabilityHandler.Check)
			publicAPI.POST("/appointments", bookingHandler.Create)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// CATÁLOGO
			// ------------------------------
			secured.GET("/services", catalogHandler.ListServices)
			secured.POST("/services", catalogHandler.CreateService)
			secured.PATCH("/services/:id", catalogHandler.UpdateService)

			secured.GET("/staff", catalogHandler.ListStaff)
			secured.POST("/staff", catalogHandler.CreateStaff)
			secured.PUT("/staff/:id/services", catalogHandler.AssignServices)
			secured.GET("/staff/:id/working-hours", catalogHandler.GetWorkingHours)
			secured.PUT("/staff/:id/working-hours", catalogHandler.UpdateWorkingHours)

			secured.GET("/customers", catalogHandler.ListCustomers)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", bookingHandler.Create)
			secured.GET("/appointments", bookingHandler.List)
			secured.GET("/appointments/:id", bookingHandler.Get)
			secured.PATCH("/appointments/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/appointments/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", bookingHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", bookingHandler.NoShow)

			// ------------------------------
			// SÉRIES RECORRENTES
			// ------------------------------
			secured.POST("/appointments/recurring", recurringHandler.Create)

			// ------------------------------
			// WAITLIST
			// ------------------------------
			secured.GET("/waitlist", waitlistHandler.List)
			secured.POST("/waitlist/promote", waitlistHandler.Promote)
			secured.PATCH("/waitlist/:id/booked", waitlistHandler.MarkBooked)
			secured.PATCH("/waitlist/:id/cancel", waitlistHandler.Cancel)

			// ------------------------------
			// ANALYTICS
			// ------------------------------
			analytics := secured.Group("/analytics")
			analytics.Use(middleware.RequireRole("owner", "admin"))
			{
				analytics.GET("", analyticsHandler.Report)
				analytics.POST("/export", analyticsHandler.Export)
			}
		}
	}
}
