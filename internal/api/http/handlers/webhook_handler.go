package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/service"
)

// encoderCallback is the payload the video encoder posts on status changes.
type encoderCallback struct {
	VideoLibraryID int    `json:"VideoLibraryId"`
	VideoGuid      string `json:"VideoGuid"`
	Status         int    `json:"Status"`
}

// WebhookHandler receives status callbacks from the external video encoder.
// The route is unauthenticated; the encoder cannot carry credentials.
type WebhookHandler struct {
	contentService *service.ContentService
	logger         *zap.Logger
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(contentService *service.ContentService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{contentService: contentService, logger: logger}
}

// HandleEncoderCallback serves /webhooks/bunny for every method. Anything but
// POST gets 405, unparseable bodies get 400, and unknown status codes are
// acknowledged with 200 so the encoder stops retrying. Only a failed store
// update earns a 500.
func (h *WebhookHandler) HandleEncoderCallback(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	var payload encoderCallback
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	handled, err := h.contentService.ApplyEncoderStatus(c.Context(), payload.VideoGuid, payload.Status)
	if err != nil {
		h.logger.Error("encoder callback failed",
			zap.String("video_id", payload.VideoGuid),
			zap.Int("status_code", payload.Status),
			zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if handled {
		h.logger.Info("encoder status applied",
			zap.String("video_id", payload.VideoGuid),
			zap.Int("status_code", payload.Status))
	}
	return c.SendStatus(fiber.StatusOK)
}
