package server

import (
	"strings"
	"time"

	"ai-search-be/internal/bootstrap"
	"ai-search-be/internal/config"
	"ai-search-be/internal/constant"
	"ai-search-be/internal/pkg/serverutils"
	"ai-search-be/internal/service"
	"ai-search-be/pkg/answer/executor"
	"ai-search-be/pkg/llm"
	"ai-search-be/pkg/ratelimit"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

// ErrorRules maps domain errors onto HTTP responses.
func ErrorRules() []serverutils.ErrorRule {
	return []serverutils.ErrorRule{
		serverutils.MapError(executor.ErrEmptyMessage, fiber.StatusBadRequest, constant.MessageEmptyInput),
		serverutils.MapError(llm.ErrTransport, fiber.StatusBadGateway, constant.MessageTransportFailure),
		serverutils.MapError(llm.ErrMalformedResponse, fiber.StatusBadGateway, constant.MessageMalformedResponse),
		serverutils.MapError(service.ErrConversationNotFound, fiber.StatusNotFound, constant.MessageNotFound),
		serverutils.MapError(ratelimit.ErrLimitExceeded, fiber.StatusTooManyRequests, constant.MessageLimitExceeded),
	}
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(cfg.Ai.RequestTimeoutSeconds*3+10) * time.Second,
	})

	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger, constant.MessageServerError, ErrorRules()...))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok", "timestamp": time.Now()})
	})

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// corsConfig allows credentials only for an explicit origin list. A wildcard
// anywhere in the list opens every origin without credentials, the only
// wildcard setup fiber accepts.
func corsConfig(origins string) cors.Config {
	wildcard := false
	for _, origin := range strings.Split(origins, ",") {
		if strings.TrimSpace(origin) == "*" {
			wildcard = true
		}
	}
	if wildcard {
		origins = "*"
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: !wildcard,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	c.ModelController.RegisterRoutes(api)

	identified := api.Group("", serverutils.UserHandleMiddleware(serverutils.HandleConfig{
		Secret:     []byte(cfg.App.SessionSecret),
		CookieName: constant.UserHandleCookie,
		LocalKey:   constant.UserHandleLocal,
		Secure:     cfg.App.SecureCookie,
	}))

	c.ChatController.RegisterRoutes(identified)
	c.ConversationController.RegisterRoutes(identified)
	c.SettingsController.RegisterRoutes(identified)
}
