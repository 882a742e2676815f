package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sefazor/classgather-backend/internal/models"
)

type Handlers struct {
	Auth      *AuthHandler
	Event     *EventHandler
	RSVP      *RSVPHandler
	Comment   *CommentHandler
	Photo     *PhotoHandler
	Assistant *AssistantHandler
}

type RouterConfig struct {
	CORSOrigins string
	// RateLimit IP başına dakikalık istek, 0 ise limiter kapalı
	RateLimit int
	BodyLimit int
	// AccessLog fiber logger middleware'i
	AccessLog bool
}

func NewRouter(h Handlers, auth fiber.Handler, cfg RouterConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})

	// Global Middleware'ler önce tanımlanmalı
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + TimezoneHeader,
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
		}))
	}

	api := app.Group("/api")

	// Public routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Get("/devices/:deviceId", h.Auth.DeviceStatus)

	// Protected routes
	api.Use(auth)
	{
		authGroup.Post("/logout", h.Auth.Logout)
		authGroup.Get("/me", h.Auth.Me)

		events := api.Group("/events")
		events.Get("/", h.Event.ListEvents)
		events.Post("/", h.Event.CreateEvent)
		events.Get("/:id", h.Event.GetEvent)
		events.Put("/:id/cost", h.Event.UpdateCost)
		events.Put("/:id/payment-code", h.Event.UpdatePaymentCode)
		events.Get("/:id/qrcode", h.Event.ShareQRCode)

		events.Get("/:id/rsvps", h.RSVP.Summary)
		events.Post("/:id/rsvps", h.RSVP.Join)
		events.Delete("/:id/rsvps", h.RSVP.Cancel)
		events.Post("/:id/check-in", h.RSVP.CheckIn)

		events.Get("/:id/comments", h.Comment.GetComments)
		events.Post("/:id/comments", h.Comment.AddComment)

		events.Get("/:id/photos", h.Photo.GetEventPhotos)
		events.Post("/:id/photos", h.Photo.UploadPhoto)

		assistantGroup := api.Group("/assistant")
		assistantGroup.Get("/suggestions", h.Assistant.Suggestions)
		assistantGroup.Post("/description", h.Assistant.Description)
	}

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(models.ErrorResponse(err.Error()))
}
