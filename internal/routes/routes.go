package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/config"
	"github.com/navalhaprime/barbershop-api/internal/domain/team"
	"github.com/navalhaprime/barbershop-api/internal/handlers"
	infraRepo "github.com/navalhaprime/barbershop-api/internal/infra/repository"
	"github.com/navalhaprime/barbershop-api/internal/media"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/notify"
	"github.com/navalhaprime/barbershop-api/internal/payments"
	"github.com/navalhaprime/barbershop-api/internal/store"
	ucAppointment "github.com/navalhaprime/barbershop-api/internal/usecase/appointment"
	ucFinance "github.com/navalhaprime/barbershop-api/internal/usecase/finance"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	snaps *store.Store,
	notifier *notify.Notifier,
	uploader *media.Uploader,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	shopRepo := infraRepo.NewShopGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	pay, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Warn("payment links disabled", zap.Error(err))
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		shopRepo,
		auditDispatcher,
		snaps,
		notifier,
		cfg.Timezone,
		cfg.MinAdvanceMinutes,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		shopRepo,
		auditDispatcher,
		snaps,
		cfg.Timezone,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		shopRepo,
		auditDispatcher,
		snaps,
		notifier,
		cfg.Timezone,
	)

	daySlotsUC := ucAppointment.NewGetDaySlots(shopRepo, cfg.Timezone, cfg.SlotStepMinutes)
	checkSlotUC := ucAppointment.NewCheckSlot(shopRepo)

	reportUC := ucFinance.NewBuildReport(shopRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher, snaps)
	productHandler := handlers.NewProductHandler(db, auditDispatcher, snaps)
	teamHandler := handlers.NewTeamHandler(db, auditDispatcher, snaps)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		auditDispatcher,
		snaps,
		pay,
		createAppointmentUC,
		rescheduleAppointmentUC,
		transitionAppointmentUC,
	)

	financeHandler := handlers.NewFinanceHandler(db, auditDispatcher, snaps, reportUC, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	mediaHandler := handlers.NewMediaHandler(uploader)
	streamHandler := handlers.NewStreamHandler(snaps)

	publicHandler := handlers.NewPublicHandler(
		db,
		snaps,
		createAppointmentUC,
		daySlotsUC,
		checkSlotUC,
	)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.Services)
			publicAPI.GET("/barbers", publicHandler.Barbers)
			publicAPI.GET("/slots", publicHandler.DaySlots)
			publicAPI.GET("/slots/check", publicHandler.CheckSlot)
			publicAPI.POST("/appointments", publicHandler.Book)
			publicAPI.GET("/appointments/:reference", publicHandler.Track)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/events", streamHandler.Changes)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/unread", appointmentHandler.Unread)
			secured.PATCH("/appointments/viewed", appointmentHandler.MarkAllViewed)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.Transition)
			secured.PATCH("/appointments/:id/viewed", appointmentHandler.MarkViewed)
			secured.GET("/appointments/:id/payment-link", appointmentHandler.PaymentLink)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.GET("/products", productHandler.List)
			secured.GET("/team", teamHandler.List)
			secured.GET("/business-hours", businessHoursHandler.Get)

			// ------------------------------
			// ADMIN + RECEPTION
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(team.RoleAdmin, team.RoleReceptionist))
			{
				staff.DELETE("/appointments/:id", appointmentHandler.Delete)

				staff.POST("/services", serviceHandler.Create)
				staff.PATCH("/services/:id", serviceHandler.Update)

				staff.POST("/products", productHandler.Create)
				staff.PATCH("/products/:id", productHandler.Update)
				staff.PATCH("/products/:id/stock", productHandler.AdjustStock)

				staff.POST("/media", mediaHandler.Upload)
			}

			// ------------------------------
			// ADMIN ONLY
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRoles(team.RoleAdmin))
			{
				admin.DELETE("/services/:id", serviceHandler.Delete)
				admin.DELETE("/products/:id", productHandler.Delete)

				admin.POST("/team", teamHandler.Create)
				admin.PATCH("/team/:id", teamHandler.Update)
				admin.DELETE("/team/:id", teamHandler.Delete)

				admin.PUT("/business-hours", businessHoursHandler.Update)

				admin.GET("/finance/report", financeHandler.Report)
				admin.GET("/finance/expenses", financeHandler.ListExpenses)
				admin.POST("/finance/expenses", financeHandler.CreateExpense)
				admin.PATCH("/finance/expenses/:id", financeHandler.UpdateExpense)
				admin.DELETE("/finance/expenses/:id", financeHandler.DeleteExpense)
				admin.GET("/finance/revenues", financeHandler.ListCustomRevenues)
				admin.POST("/finance/revenues", financeHandler.CreateCustomRevenue)
				admin.PATCH("/finance/revenues/:id", financeHandler.UpdateCustomRevenue)
				admin.DELETE("/finance/revenues/:id", financeHandler.DeleteCustomRevenue)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
