package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/service"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	logger       *zap.Logger
}

func NewPhotoHandler(photoService *service.PhotoService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

func (h *PhotoHandler) GetEventPhotos(c *fiber.Ctx) error {
	photos, err := h.photoService.GetEventPhotos(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(photos, ""))
}

func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return badRequest(c, "No photo provided")
	}

	photo, err := h.photoService.UploadPhoto(c.UserContext(), sessionOf(c), c.Params("id"), file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(photo, "Photo uploaded successfully"))
}
