package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/assistant"
	"github.com/sefazor/classgather-backend/pkg/utils"
)

// AssistantHandler yanıtları her zaman 200, model hatalarında yedek metin döner
type AssistantHandler struct {
	assistant assistant.Assistant
	validator *utils.Validator
}

func NewAssistantHandler(a assistant.Assistant, validator *utils.Validator) *AssistantHandler {
	return &AssistantHandler{assistant: a, validator: validator}
}

func (h *AssistantHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.assistant.GenerateSuggestions(c.UserContext()), ""))
}

func (h *AssistantHandler) Description(c *fiber.Ctx) error {
	var req models.DescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Please fill in the title and location first")
	}

	text := h.assistant.GenerateDescription(c.UserContext(), req.Title, req.Location)
	return c.JSON(models.SuccessResponse(fiber.Map{"description": text}, ""))
}
