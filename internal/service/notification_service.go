package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/internship-service/internal/events"
)

// NotificationService logs an audit trail for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInternEnrolled, n.handleInternEnrolled)
	n.dispatcher.Subscribe(events.EventOfferLetterSent, n.handleOfferLetterSent)
	n.dispatcher.Subscribe(events.EventCertificateSent, n.handleCertificateSent)
	n.dispatcher.Subscribe(events.EventContactReceived, n.handleContactReceived)
	n.dispatcher.Subscribe(events.EventRosterSyncCompleted, n.handleSyncCompleted)
}

func (n *NotificationService) handleInternEnrolled(_ context.Context, event events.Event) error {
	n.logger.Info("InternEnrolled", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOfferLetterSent(_ context.Context, event events.Event) error {
	n.logger.Info("OfferLetterSent", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleCertificateSent(_ context.Context, event events.Event) error {
	n.logger.Info("CertificateSent", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleContactReceived(_ context.Context, event events.Event) error {
	n.logger.Info("ContactReceived", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSyncCompleted(_ context.Context, event events.Event) error {
	n.logger.Info("RosterSyncCompleted", zap.Any("payload", event.Payload))
	return nil
}
