package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/events"
	"github.com/spec-kit/field-intel-service/internal/repository"
)

// ContentService applies encoder callbacks to video content records.
type ContentService struct {
	contents   repository.ContentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContentService creates the service.
func NewContentService(contents repository.ContentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContentService {
	return &ContentService{contents: contents, dispatcher: dispatcher, logger: logger}
}

// ApplyEncoderStatus maps an encoder status code onto the content record for
// the given video id. The bool reports whether the code was meaningful; codes
// outside the mapping and unknown video ids are acknowledged without effect.
func (s *ContentService) ApplyEncoderStatus(ctx context.Context, videoID string, code int) (bool, error) {
	status, ok := domain.StatusFromEncoderCode(code)
	if !ok {
		return false, nil
	}

	content, err := s.contents.GetByVideoID(ctx, videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("encoder callback for unknown video", zap.String("video_id", videoID))
			return false, nil
		}
		return false, err
	}

	oldStatus := content.Status
	if oldStatus == status {
		// Encoders retry callbacks; a repeat of the current status must not
		// rewrite the row or notify anyone again.
		return false, nil
	}
	if err := s.contents.UpdateStatus(ctx, content.ID, status); err != nil {
		return false, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventContentStatusChanged,
			Timestamp: time.Now(),
			Payload: events.ContentStatusChangedPayload{
				ContentID: content.ID,
				VideoID:   content.VideoID,
				Title:     content.Title,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return true, nil
}
