package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/smartlicense/license-api/internal/api/handler"
	"github.com/smartlicense/license-api/internal/api/middleware"
	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
	"github.com/smartlicense/license-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services and settings the router needs.
type Dependencies struct {
	Identity  ports.IdentityService
	Bookings  ports.BookingService
	Profiles  ports.ProfileService
	Stations  ports.StationService
	Recovery  ports.RecoveryService
	Readiness *handlers.HealthDependenciesHandler

	Log         zerolog.Logger
	AuthEnabled bool
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
	}))
	e.Use(middleware.Metrics())

	// --- Access control ---
	// staff may read and run the booking workflow; admins manage accounts,
	// profiles and stations. Both are empty when access control is disabled.
	var staff, admin []echo.MiddlewareFunc
	if d.AuthEnabled {
		authn := middleware.BasicAuth(d.Identity)
		staff = []echo.MiddlewareFunc{authn, middleware.RBAC(domain.StaffRoles...)}
		admin = []echo.MiddlewareFunc{authn, middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)}
	} else {
		d.Log.Warn().Msg("access control disabled: every endpoint is public")
	}

	authHandler := handler.NewAuthHandler(d.Identity)
	userHandler := handler.NewUserHandler(d.Identity)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	stationHandler := handler.NewStationHandler(d.Stations)
	securityHandler := handler.NewSecurityHandler(d.Recovery)

	// --- Public routes ---
	e.GET("/", authHandler.Root)
	e.POST("/login", authHandler.Login)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	readiness := d.Readiness
	if readiness == nil {
		readiness = handlers.NewHealthDependenciesHandler()
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness) // liveness  – is the process alive?
	e.GET("/health/ready", readiness.Readiness)            // readiness – are dependencies up?

	// --- Users ---
	e.POST("/users", userHandler.Create, admin...)
	e.GET("/users/id/:user_id", userHandler.GetByID, staff...)
	e.PUT("/users/id/:user_id", userHandler.Update, admin...)
	e.GET("/users/:username", userHandler.GetByUsername, staff...)
	e.GET("/users/:user_id/is_active", userHandler.GetActive, staff...)
	e.PUT("/users/:user_id/is_active", userHandler.SetActive, admin...)

	// --- Profiles ---
	e.POST("/user-profiles", profileHandler.CreateUser, admin...)
	e.GET("/user-profiles", profileHandler.ListUsers, staff...)
	e.GET("/user-profiles/:user_id", profileHandler.GetUser, staff...)
	e.PUT("/user-profiles/:user_id", profileHandler.UpdateUser, admin...)
	e.DELETE("/user-profiles/:user_id", profileHandler.DeleteUser, admin...)

	e.POST("/instructor-profiles", profileHandler.CreateInstructor, admin...)
	e.GET("/instructor-profiles", profileHandler.ListInstructors, staff...)
	e.GET("/instructor-profiles/:user_id", profileHandler.GetInstructor, staff...)
	e.PUT("/instructor-profiles/:user_id", profileHandler.UpdateInstructor, admin...)
	e.DELETE("/instructor-profiles/:user_id", profileHandler.DeleteInstructor, admin...)

	e.POST("/learner-profiles", profileHandler.CreateLearner, staff...)
	e.GET("/learner-profiles", profileHandler.ListLearners, staff...)
	e.GET("/learner-profiles/:user_id", profileHandler.GetLearner, staff...)
	e.PUT("/learner-profiles/:user_id", profileHandler.UpdateLearner, staff...)
	e.DELETE("/learner-profiles/:user_id", profileHandler.DeleteLearner, staff...)

	// --- Bookings ---
	e.POST("/learner-test-bookings", bookingHandler.Create, staff...)
	e.GET("/learner-test-bookings", bookingHandler.List, staff...)
	e.GET("/learner-test-bookings/learner/:learner_id", bookingHandler.ListByLearner, staff...)
	e.GET("/learner-test-bookings/pending/:date", bookingHandler.Pending, staff...)
	e.GET("/learner-test-bookings/completed/:date", bookingHandler.Completed, staff...)
	e.GET("/learner-test-bookings/results/:date", bookingHandler.Results, staff...)
	e.GET("/learner-test-bookings/:booking_id", bookingHandler.Get, staff...)
	e.PUT("/learner-test-bookings/:booking_id", bookingHandler.Update, staff...)
	e.PUT("/learner-test-bookings/:booking_id/result", bookingHandler.UpdateResult, staff...)
	e.DELETE("/learner-test-bookings/:booking_id", bookingHandler.Delete, staff...)

	// --- Security questions ---
	e.GET("/security-questions", securityHandler.ListQuestions, staff...)
	e.GET("/security-questions/id/:question_id", securityHandler.GetQuestion, staff...)
	e.POST("/user-security-answers", securityHandler.CreateAnswer, staff...)
	e.GET("/user-security-answers/id/:user_id", securityHandler.ListAnswers, staff...)

	// --- Stations ---
	e.POST("/stations", stationHandler.Create, admin...)
	e.GET("/stations", stationHandler.List, staff...)
	e.GET("/stations/:station_id", stationHandler.Get, staff...)
	e.PUT("/stations/:station_id", stationHandler.Update, admin...)
	e.DELETE("/stations/:station_id", stationHandler.Delete, admin...)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
