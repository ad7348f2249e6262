// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/app/handlers"
	"github.com/templeworks/Gopuram/app/middleware"
	"github.com/templeworks/Gopuram/config"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app                 *fiber.App
	cfg                 *config.ProductionConfig
	authHandler         *handlers.AuthHandler
	accountHandler      *handlers.AccountHandler
	appointmentHandler  *handlers.AppointmentHandler
	announcementHandler *handlers.AnnouncementHandler
	serviceHandler      *handlers.ServiceHandler
	eventHandler        *handlers.EventHandler
	donationHandler     *handlers.DonationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	appointmentHandler *handlers.AppointmentHandler,
	announcementHandler *handlers.AnnouncementHandler,
	serviceHandler *handlers.ServiceHandler,
	eventHandler *handlers.EventHandler,
	donationHandler *handlers.DonationHandler,
	authMiddleware *middleware.AuthMiddleware,
) Router {
	// Configure Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Gopuram API",
		ServerHeader: "Gopuram",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:                 app,
		cfg:                 cfg,
		authHandler:         authHandler,
		accountHandler:      accountHandler,
		appointmentHandler:  appointmentHandler,
		announcementHandler: announcementHandler,
		serviceHandler:      serviceHandler,
		eventHandler:        eventHandler,
		donationHandler:     donationHandler,
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	// Global middleware
	r.setupMiddleware()

	// Health check route (no rate limiting)
	r.app.Get("/health", r.healthCheck)

	// General rate limiting for all routes
	r.app.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Security.GlobalRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			// Skip rate limiting for health checks
			return c.Path() == "/health"
		},
	}))

	// Stricter rate limiting for credential endpoints
	authLimiter := limiter.New(limiter.Config{
		Max:        r.cfg.Security.AuthRateLimit,
		Expiration: r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	})

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(models.RoleAdmin)
	staffOnly := r.authMiddleware.RequireRole(models.RoleAdmin, models.RolePriest)

	// Authentication endpoints
	r.app.Post("/signup", r.authHandler.Signup, authLimiter)
	r.app.Post("/login", r.authHandler.Login, authLimiter)
	r.app.Post("/logout", r.authHandler.Logout, authenticated)
	r.app.Post("/request-otp", r.authHandler.RequestOTP, authLimiter)
	r.app.Patch("/reset-password", r.authHandler.ResetPassword, authLimiter)

	// Account management endpoints
	r.app.Get("/get-users", r.accountHandler.GetUsers, authenticated, adminOnly)
	r.app.Delete("/delete-user/:id", r.accountHandler.DeleteUser, authenticated, adminOnly)
	r.app.Post("/create-priest", r.accountHandler.CreatePriest, authenticated, adminOnly)
	r.app.Post("/get-priests", r.accountHandler.GetPriests)

	// Appointment endpoints
	r.app.Post("/book-appointment", r.appointmentHandler.Book)
	r.app.Get("/get-appointments", r.appointmentHandler.List, authenticated)
	r.app.Patch("/update-appointment/:id", r.appointmentHandler.Update, authenticated, staffOnly)
	r.app.Delete("/delete-appointment/:id", r.appointmentHandler.Delete, authenticated, staffOnly)

	// Announcement endpoints
	r.app.Get("/announcements", r.announcementHandler.List)
	r.app.Post("/add-announcement", r.announcementHandler.Create, authenticated, adminOnly)
	r.app.Put("/announcements/:id", r.announcementHandler.Update, authenticated, adminOnly)
	r.app.Delete("/announcements/:id", r.announcementHandler.Delete, authenticated, adminOnly)

	// Temple service endpoints
	r.app.Get("/services", r.serviceHandler.List)
	r.app.Post("/add-service", r.serviceHandler.Create, authenticated, adminOnly)
	r.app.Put("/services/:id", r.serviceHandler.Update, authenticated, adminOnly)
	r.app.Delete("/services/:id", r.serviceHandler.Delete, authenticated, adminOnly)

	// Temple event endpoints
	r.app.Get("/events", r.eventHandler.List)
	r.app.Post("/events", r.eventHandler.Create, authenticated, adminOnly)
	r.app.Put("/events/:id", r.eventHandler.Update, authenticated, adminOnly)
	r.app.Delete("/events/:id", r.eventHandler.Delete, authenticated, adminOnly)

	// Donation endpoints
	r.app.Post("/add-donation", r.donationHandler.Add)
	r.app.Get("/get-donations", r.donationHandler.List, authenticated, adminOnly)
	r.app.Get("/export-donations", r.donationHandler.Export, authenticated, adminOnly)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         r.cfg.Security.XSSProtection,
		ContentTypeNosniff:    r.cfg.Security.XContentTypeOptions,
		XFrameOptions:         r.cfg.Security.XFrameOptions,
		ContentSecurityPolicy: r.cfg.Security.CSPPolicy,
		ReferrerPolicy:        r.cfg.Security.ReferrerPolicy,
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Security.AllowedOrigins,
		AllowMethods: r.cfg.Security.AllowedMethods,
		AllowHeaders: r.cfg.Security.AllowedHeaders,
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
			Next: func(c fiber.Ctx) bool {
				// Skip compression for binary content
				contentType := c.Get("Content-Type")
				return strings.Contains(contentType, "image/") ||
					strings.Contains(contentType, "video/") ||
					strings.Contains(contentType, "audio/")
			},
		}))
	}

	// Prometheus metrics per request
	if r.cfg.Server.EnableMetrics {
		r.app.Use(middleware.Metrics())
	}

	// Structured access logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			// Skip logging for health checks in production
			return c.Path() == "/health"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			// Log panic with request context
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   "gopuram-api",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	// Default error code
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a fiber.*Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Log the error
	log.Printf("Error %d: %v", code, err)

	// Get RequestID for tracing
	requestID := c.Locals("requestid")

	// Return JSON error response
	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
