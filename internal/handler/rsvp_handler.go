package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/service"
)

type RSVPHandler struct {
	attendanceService *service.AttendanceService
	loc               *time.Location
	logger            *zap.Logger
}

func NewRSVPHandler(attendanceService *service.AttendanceService, loc *time.Location, logger *zap.Logger) *RSVPHandler {
	return &RSVPHandler{
		attendanceService: attendanceService,
		loc:               loc,
		logger:            logger,
	}
}

func (h *RSVPHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.attendanceService.Summary(c.UserContext(), sessionOf(c), c.Params("id"), locationOf(c, h.loc))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(summary, ""))
}

func (h *RSVPHandler) Join(c *fiber.Ctx) error {
	var req models.JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rsvp, created, err := h.attendanceService.Join(c.UserContext(), sessionOf(c), c.Params("id"), req.Contact, locationOf(c, h.loc))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if !created {
		return c.JSON(models.SuccessResponse(rsvp, "You are already registered"))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(rsvp, "Registered successfully"))
}

// Cancel onay gövdeden ({"confirm":true}) ya da ?confirm=true ile gelir
func (h *RSVPHandler) Cancel(c *fiber.Ctx) error {
	var req models.CancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}
	confirm := req.Confirm || c.QueryBool("confirm")

	if err := h.attendanceService.Cancel(c.UserContext(), sessionOf(c), c.Params("id"), confirm, locationOf(c, h.loc)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Registration cancelled"))
}

func (h *RSVPHandler) CheckIn(c *fiber.Ctx) error {
	resp, err := h.attendanceService.CheckIn(c.UserContext(), sessionOf(c), c.Params("id"), locationOf(c, h.loc))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Checked in"))
}
