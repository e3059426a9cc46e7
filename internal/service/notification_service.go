package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/events"
	"github.com/spec-kit/field-intel-service/internal/push"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// NotificationService pushes to admin devices when content finishes encoding.
type NotificationService struct {
	dispatcher events.Dispatcher
	devices    repository.DeviceRepository
	pusher     push.Client
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, devices repository.DeviceRepository, pusher push.Client, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		devices:    devices,
		pusher:     pusher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContentStatusChanged, n.handleContentStatusChanged)
}

// RegisterDevice stores a push subscription for a person. The same player id
// registered twice moves to the latest owner.
func (n *NotificationService) RegisterDevice(ctx context.Context, personID, playerID string) (*domain.DeviceSubscription, error) {
	if personID == "" || playerID == "" {
		return nil, apperrors.NewValidationError("person and player id required", nil)
	}
	sub := &domain.DeviceSubscription{PersonID: personID, PlayerID: playerID}
	if err := n.devices.Create(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sub, nil
}

func (n *NotificationService) handleContentStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContentStatusChangedPayload)
	if !ok {
		return nil
	}
	if payload.NewStatus != domain.ContentStatusFinished {
		return nil
	}

	subs, err := n.devices.ListForAdmins(ctx)
	if err != nil {
		n.logger.Error("list admin subscriptions", zap.Error(err))
		return nil
	}
	if len(subs) == 0 {
		return nil
	}

	playerIDs := make([]string, 0, len(subs))
	for _, sub := range subs {
		playerIDs = append(playerIDs, sub.PlayerID)
	}

	invalid, err := n.pusher.Send(ctx, push.Notification{
		Title:     "Video ready",
		Message:   payload.Title + " finished processing",
		PlayerIDs: playerIDs,
	})
	if err != nil {
		n.logger.Error("push send failed", zap.String("content_id", payload.ContentID), zap.Error(err))
	}
	if len(invalid) > 0 {
		if err := n.devices.DeleteByPlayerIDs(ctx, invalid); err != nil {
			n.logger.Error("prune invalid subscriptions", zap.Error(err))
		} else {
			n.logger.Info("pruned invalid subscriptions", zap.Int("count", len(invalid)))
		}
	}
	return nil
}
