package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/service"
	"github.com/sefazor/classgather-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		if req.DeviceID == "" {
			return badRequest(c, "Device id is required")
		}
		return respondError(c, h.logger, service.ErrNameRequired)
	}
	req.RemoteIP = c.IP()

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

// DeviceStatus giriş ekranı: bu cihaz şifreyi daha önce girdi mi
func (h *AuthHandler) DeviceStatus(c *fiber.Ctx) error {
	verified, err := h.authService.IsDeviceVerified(c.UserContext(), c.Params("deviceId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"verified": verified}, ""))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), sessionOf(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(sessionOf(c), ""))
}
