package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSpotAllocated, n.handleSpotAllocated)
	n.dispatcher.Subscribe(events.EventSpotReleased, n.handleSpotReleased)
}

func (n *NotificationService) handleSpotAllocated(ctx context.Context, event events.Event) error {
	n.logger.Info("SpotAllocated", zap.Int("spot_id", event.SpotID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSpotReleased(ctx context.Context, event events.Event) error {
	n.logger.Info("SpotReleased", zap.Int("spot_id", event.SpotID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int("spot_id", event.SpotID),
		zap.String("event_type", string(event.Type)))
}
