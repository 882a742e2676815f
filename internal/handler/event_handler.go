package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/service"
	"github.com/sefazor/classgather-backend/pkg/qrcode"
	"github.com/sefazor/classgather-backend/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	photoService *service.PhotoService
	validator    *utils.Validator
	loc          *time.Location
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, photoService *service.PhotoService, validator *utils.Validator, loc *time.Location, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		photoService: photoService,
		validator:    validator,
		loc:          loc,
		logger:       logger,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, eventRequestError(err))
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), sessionOf(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var query models.ListEventsQuery
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "Invalid query")
	}
	if err := h.validator.Struct(query); err != nil {
		return badRequest(c, "sort must be date or cost")
	}

	events, err := h.eventService.ListEvents(c.UserContext(), query, locationOf(c, h.loc))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventService.GetEvent(c.UserContext(), sessionOf(c), c.Params("id"), locationOf(c, h.loc))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) UpdateCost(c *fiber.Ctx) error {
	var req models.UpdateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return respondError(c, h.logger, service.ErrInvalidCost)
	}

	event, err := h.eventService.UpdateCost(c.UserContext(), sessionOf(c), c.Params("id"), *req.Cost)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, "Cost updated"))
}

// UpdatePaymentCode multipart "file" alanı varsa görseli kodlar, yoksa JSON
// gövdesinde image ya da link bekler
func (h *EventHandler) UpdatePaymentCode(c *fiber.Ctx) error {
	var req models.PaymentCodeRequest

	if file, err := c.FormFile("file"); err == nil {
		image, err := h.photoService.EncodeFile(c.UserContext(), file)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		req.Image = image
	} else {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := h.validator.Struct(req); err != nil {
			return respondError(c, h.logger, service.ErrPaymentCodeRequired)
		}
	}

	event, err := h.eventService.UpdatePaymentCode(c.UserContext(), sessionOf(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(event, "Payment code updated"))
}

func (h *EventHandler) ShareQRCode(c *fiber.Ctx) error {
	size := c.QueryInt("size", qrcode.DefaultSize)
	if size < 64 || size > 1024 {
		size = qrcode.DefaultSize
	}

	png, err := h.eventService.ShareQRCode(c.UserContext(), c.Params("id"), size)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Type("png")
	return c.Send(png)
}

// eventRequestError validator hatasını kullanıcıya gösterilen servis hatasına
// çevirir. Eksik alan, maliyetten ve tarih formatından önce gelir.
func eventRequestError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return service.ErrTitleRequired
	}

	var costErr, scheduleErr bool
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Cost":
			costErr = true
		case "Time":
			scheduleErr = true
		case "Date":
			if fe.Value() == "" {
				return service.ErrTitleRequired
			}
			scheduleErr = true
		default:
			return service.ErrTitleRequired
		}
	}

	switch {
	case costErr:
		return service.ErrInvalidCost
	case scheduleErr:
		return service.ErrInvalidSchedule
	}
	return service.ErrTitleRequired
}
