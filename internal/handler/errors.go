package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/middleware"
	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/internal/service"
	"github.com/sefazor/classgather-backend/pkg/storage"
)

// TimezoneHeader istemcinin IANA saat dilimi, durumlar buna göre hesaplanır
const TimezoneHeader = "X-Timezone"

func sessionOf(c *fiber.Ctx) models.Session {
	session, _ := c.Locals(middleware.SessionKey).(models.Session)
	return session
}

func locationOf(c *fiber.Ctx, fallback *time.Location) *time.Location {
	return service.ResolveLocation(c.Get(TimezoneHeader), fallback)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.CodedErrorResponse(models.CodeValidation, message))
}

// statusFor servis hatasını HTTP status + hata koduna çevirir
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrPaymentCodeRequired),
		errors.Is(err, service.ErrConfirmationRequired),
		errors.Is(err, storage.ErrUnsupportedImage),
		errors.Is(err, storage.ErrImageTooLarge):
		return fiber.StatusBadRequest, models.CodeValidation
	case errors.Is(err, service.ErrWrongPassphrase),
		errors.Is(err, service.ErrCaptchaFailed),
		errors.Is(err, service.ErrLoginRequired),
		errors.Is(err, service.ErrInvalidToken):
		return fiber.StatusUnauthorized, models.CodeUnauthorized
	case errors.Is(err, service.ErrNotOrganizer):
		return fiber.StatusForbidden, models.CodeForbidden
	case errors.Is(err, service.ErrEventNotFound):
		return fiber.StatusNotFound, models.CodeNotFound
	case errors.Is(err, service.ErrEventEnded),
		errors.Is(err, service.ErrNotRegistered),
		errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrCheckInClosed):
		return fiber.StatusConflict, models.CodeConflict
	case errors.Is(err, repository.ErrStorageFull):
		return fiber.StatusInsufficientStorage, models.CodeStorageFull
	default:
		return fiber.StatusInternalServerError, models.CodeInternal
	}
}

func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(models.CodedErrorResponse(code, "Something went wrong, please try again"))
	}
	return c.Status(status).JSON(models.CodedErrorResponse(code, err.Error()))
}
