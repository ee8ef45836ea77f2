package httpserver

import (
	"time"

	"github.com/avatarctic/headless-blog/internal/core/ports"
	customMiddleware "github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	ContentService      ports.ContentService
	InvalidationService ports.InvalidationService
	Cache               ports.Cache
	RateLimiterService  ports.RateLimiterService
	HealthCheckers      []ports.HealthChecker

	DefaultLocale    string
	SupportedLocales []string
	NavigationName   string
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	contentSvc     ports.ContentService
	invalidation   ports.InvalidationService
	cache          ports.Cache
	navigationName string
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	navigationName := deps.NavigationName
	if navigationName == "" {
		navigationName = "Navigation"
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		contentSvc:     deps.ContentService,
		invalidation:   deps.InvalidationService,
		cache:          deps.Cache,
		navigationName: navigationName,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			deps.DefaultLocale,
			deps.SupportedLocales,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
