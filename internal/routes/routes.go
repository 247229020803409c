package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/audit"
	"github.com/espacoviv/agendamento/internal/auth"
	"github.com/espacoviv/agendamento/internal/config"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/handlers"
	"github.com/espacoviv/agendamento/internal/infra/mailer"
	"github.com/espacoviv/agendamento/internal/infra/slotlock"
	"github.com/espacoviv/agendamento/internal/infra/storage"
	"github.com/espacoviv/agendamento/internal/middleware"
	"github.com/espacoviv/agendamento/internal/models"
	ucAccount "github.com/espacoviv/agendamento/internal/usecase/account"
	ucAvailability "github.com/espacoviv/agendamento/internal/usecase/availability"
	ucBooking "github.com/espacoviv/agendamento/internal/usecase/booking"
	ucCalendar "github.com/espacoviv/agendamento/internal/usecase/calendar"
	ucCatalog "github.com/espacoviv/agendamento/internal/usecase/catalog"
)

// Deps carries the singletons built by main. Avatars stays nil when no
// bucket is configured; DomainCheck is optional.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	Bookings  booking.Repository
	Overrides availability.Repository
	Accounts  account.Repository
	Catalog   catalog.Repository
	Audit     *audit.Dispatcher
	AuditLogs audit.Store

	Locker      slotlock.Locker
	Mailer      mailer.Mailer
	Avatars     storage.AvatarStore
	Tokens      *auth.TokenIssuer
	DomainCheck ucAccount.DomainCheck

	StoreKind string
	Now       func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	// ======================================================
	// 🧠 USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(d.Bookings, d.Locker, d.Audit)
	getBookingUC := ucBooking.NewGetBooking(d.Bookings)
	listBookingsUC := ucBooking.NewListBookings(d.Bookings)
	therapistCalendarUC := ucBooking.NewListTherapistCalendar(d.Bookings)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(d.Bookings, d.Locker, d.Audit, d.Now)

	// ======================================================
	// 🧠 USE CASES: CALENDAR
	// ======================================================
	calendarDeps := ucCalendar.Deps{
		Bookings:  d.Bookings,
		Overrides: d.Overrides,
		Template:  availability.Template{HolidaysClosed: cfg.HolidaysClosed},
		Timezone:  cfg.Timezone,
		Now:       d.Now,
	}

	// ======================================================
	// 🧠 USE CASES: OVERRIDES
	// ======================================================
	setDayUC := ucAvailability.NewSetDay(d.Overrides, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAccount.NewRegister(d.Accounts, d.DomainCheck),
		ucAccount.NewLogin(d.Accounts, d.Tokens, d.Log),
		ucAccount.NewForgotPassword(d.Accounts, d.Mailer, cfg.ResetURLBase, d.Now, d.Log),
		ucAccount.NewResetPassword(d.Accounts, d.Now),
	)

	meHandler := handlers.NewMeHandler(
		ucAccount.NewGetMe(d.Accounts),
		ucAccount.NewUpdateProfile(d.Accounts),
		ucAccount.NewUploadAvatar(d.Accounts, d.Avatars),
		ucAccount.NewListAuditLogs(d.AuditLogs),
	)

	catalogHandler := handlers.NewCatalogHandler(
		ucCatalog.NewListUnits(d.Catalog),
		ucCatalog.NewGetUnit(d.Catalog),
		ucCatalog.NewListServices(d.Catalog),
		ucAccount.NewListTherapistsByUnit(d.Accounts, d.Catalog),
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		getBookingUC,
		listBookingsUC,
		updateStatusUC,
		ucCalendar.NewFreeSlots(calendarDeps),
	)

	calendarHandler := handlers.NewCalendarHandler(
		ucCalendar.NewDayView(calendarDeps),
		ucCalendar.NewWeekView(calendarDeps),
		ucCalendar.NewMonthView(calendarDeps),
		ucCalendar.NewNextAvailable(calendarDeps),
		ucCalendar.NewAvailabilityStats(calendarDeps),
	)

	massagistaHandler := handlers.NewMassagistaHandler(
		setDayUC,
		ucAvailability.NewSetWeek(setDayUC),
		ucAvailability.NewGetDay(d.Overrides, d.Bookings, calendarDeps.Template),
		ucAvailability.NewGetMonth(d.Overrides),
		listBookingsUC,
		therapistCalendarUC,
		updateStatusUC,
	)

	r.GET("/health", handlers.Health(d.StoreKind))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/units", catalogHandler.ListUnits)
		api.GET("/units/:code", catalogHandler.GetUnit)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/massagista/by-unit/:unit_code", catalogHandler.TherapistsByUnit)
		api.GET("/massagista/:id/availability/day/:date", massagistaHandler.GetDay)

		api.POST("/bookings", bookingHandler.Create)
		api.GET("/bookings/available-times/:massagista_id/:date", bookingHandler.AvailableTimes)

		cal := api.Group("/calendar")
		{
			cal.GET("/availability/day/:unit_code/:date", calendarHandler.Day)
			cal.GET("/availability/week/:unit_code", calendarHandler.Week)
			cal.GET("/availability/month/:unit_code/:year/:month", calendarHandler.Month)
			cal.GET("/next-available/:unit_code", calendarHandler.NextAvailable)
			cal.GET("/stats/availability", calendarHandler.Stats)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("")
		secured.Use(
			middleware.AuthMiddleware(d.Tokens),
			middleware.RequireActiveUser(d.Accounts),
		)
		{
			secured.GET("/auth/me", meHandler.GetMe)
			secured.PUT("/profile", meHandler.UpdateProfile)
			secured.PUT("/massagista/avatar", meHandler.UploadAvatar)
			secured.GET("/me/audit-logs", meHandler.AuditLogs)

			// ------------------------------
			// OVERRIDES
			// ------------------------------
			secured.PUT("/massagista/availability/week", massagistaHandler.SetWeek)
			secured.PUT("/massagista/availability/:date", massagistaHandler.SetDay)
			secured.GET("/massagista/availability/month/:year/:month", massagistaHandler.GetMonth)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/massagista/appointments", massagistaHandler.Appointments)
			secured.GET("/massagista/appointments/calendar", massagistaHandler.Calendar)
			secured.PUT("/massagista/appointments/:id/status", massagistaHandler.UpdateAppointmentStatus)

			secured.GET("/bookings/:id", bookingHandler.Get)
		}

		admin := secured.Group("")
		admin.Use(middleware.RequireRole(models.UserTypeAdmin))
		{
			admin.GET("/bookings", bookingHandler.List)
			admin.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
		}
	}
}
