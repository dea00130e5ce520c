package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lidmar/site-api/docs"
	"github.com/lidmar/site-api/internal/api/handler"
	"github.com/lidmar/site-api/internal/api/middleware"
	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
	"github.com/lidmar/site-api/internal/core/service"
	"github.com/lidmar/site-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. Store handles may be nil when
// the corresponding store is not configured.
type Dependencies struct {
	Log      zerolog.Logger
	Sessions ports.SessionValidator
	Auth     ports.AuthService
	Pages    ports.PageService
	Content  ports.ContentService
	Products ports.ProductService

	Postgres *pgxpool.Pool
	Mongo    *mongo.Database
	Redis    *redis.Client

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestContext)
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(echomiddleware.BodyLimit("2M"))

	requireSession := middleware.Auth(deps.Sessions)
	optionalSession := middleware.OptionalAuth(deps.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(deps.Auth)
	pageHandler := handler.NewPageHandler(deps.Pages)
	contentHandler := handler.NewContentHandler(deps.Content)
	productHandler := handler.NewProductHandler(deps.Products)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session, requireSession)

	v1 := e.Group("/v1")

	// --- Pages ---
	// Reads are public. Mutations need a session; ownership is decided by the
	// page gate inside the service, never by middleware.
	v1.GET("/pages/:id", pageHandler.Get, optionalSession)
	v1.POST("/pages", pageHandler.Create, requireSession)
	v1.PUT("/pages/:id", pageHandler.Update, requireSession)
	v1.DELETE("/pages/:id", pageHandler.Delete, requireSession)
	v1.GET("/me/pages", pageHandler.ListMine, requireSession)

	// --- Site content ---
	v1.GET("/content", contentHandler.Get)
	v1.PUT("/content", contentHandler.Replace, requireSession, adminOnly)
	v1.PATCH("/content", contentHandler.PatchField, requireSession, adminOnly)
	v1.GET("/content/fields", contentHandler.Fields, requireSession, adminOnly)

	// --- Products ---
	v1.GET("/products", productHandler.List)
	v1.POST("/products", productHandler.Create, requireSession, adminOnly)
	v1.PUT("/products/:id", productHandler.Update, requireSession, adminOnly)
	v1.DELETE("/products/:id", productHandler.Delete, requireSession, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(
		handlers.PostgresProbe(deps.Postgres),
		handlers.MongoProbe(deps.Mongo),
		handlers.RedisProbe(deps.Redis),
	)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestContext carries the request id into the request context so the
// service layer can attach it to logs and audit events.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(service.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
