package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/handlers"
)

const (
	AppName = "TenderBridge ATS API"
	Version = "1.0.0"
)

// multipartOverhead leaves room for form boundaries and headers around a file
// of MaxUploadSize, so oversized files reach the upload handler's own check.
const multipartOverhead = 1 << 20

// allowedHeaders is the header allow-list browsers may send cross-origin.
const allowedHeaders = "authorization, x-client-info, apikey, content-type"

type Options struct {
	MaxUploadSize   int64
	RateLimitMax    int
	RateLimitWindow time.Duration
	Registry        *prometheus.Registry
	Logger          *zap.Logger
}

type Handlers struct {
	Analyze   *handlers.AnalyzeHandler
	Upload    *handlers.UploadHandler
	Documents *handlers.DocumentHandler
	Result    *handlers.ResultHandler
}

// New builds the Fiber app with middleware and routes registered.
func New(opts Options, h Handlers) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	app := fiber.New(fiber.Config{
		AppName:      AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(opts.MaxUploadSize) + multipartOverhead,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: shortuuid.New,
	}))
	app.Use(accessLog(opts.Logger))
	app.Use(preflight(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: allowedHeaders,
	}))
	app.Use(NewMetricsBuilder(opts.Registry).Build())

	limit := limiter.New(limiter.Config{
		Max:        opts.RateLimitMax,
		Expiration: opts.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded, try again later",
			})
		},
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/ats/analyze", limit, h.Analyze.HandleAnalyze)
	// OPTIONS without preflight headers still gets an empty 200
	api.Options("/ats/analyze", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).Send(nil)
	})
	api.Post("/documents", limit, h.Upload.HandleUpload)
	api.Get("/documents", h.Documents.HandleFindDocument)
	api.Get("/documents/:id", h.Documents.HandleGetDocument)
	api.Get("/analyses", h.Result.HandleListAnalyses)
	api.Get("/analyses/:id", h.Result.HandleGetAnalysis)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": AppName,
			"version": Version,
			"endpoints": []string{
				"POST /api/v1/ats/analyze",
				"POST /api/v1/documents",
				"GET /api/v1/documents?filePath=",
				"GET /api/v1/documents/:id",
				"GET /api/v1/analyses?filePath=",
				"GET /api/v1/analyses/:id",
				"GET /api/v1/health",
				"GET /metrics",
			},
		})
	})

	return app
}

// preflight answers CORS preflight requests with 200 instead of 204.
func preflight(cfg cors.Config) fiber.Handler {
	handler := cors.New(cfg)

	return func(c *fiber.Ctx) error {
		if err := handler(c); err != nil {
			return err
		}
		if c.Method() == fiber.MethodOptions && c.Response().StatusCode() == fiber.StatusNoContent {
			c.Response().ResetBody()
			c.Status(fiber.StatusOK)
		}
		return nil
	}
}

func accessLog(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}
