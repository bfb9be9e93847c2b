package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/staynest/rental-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is log-only; guests and hosts are identified by the event payload.
type NotificationService struct {
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{logger: logger.Named("notifications")}
}

// Register subscribes to the events that notify someone.
func (n *NotificationService) Register(d events.Dispatcher) {
	d.Subscribe(events.EventUserCreated, n.handleWelcome)
	d.Subscribe(events.EventHostCreated, n.handleWelcome)
	events.SubscribeAll(d, []events.EventType{
		events.EventBookingCreated,
		events.EventBookingUpdated,
		events.EventBookingDeleted,
	}, n.handleBooking)
	d.Subscribe(events.EventReviewCreated, n.handleReviewCreated)
}

func (n *NotificationService) handleWelcome(_ context.Context, event events.Event) error {
	n.logger.Info("welcome notification",
		zap.String("resource", event.Resource),
		zap.String("resource_id", event.ResourceID))
	return nil
}

func (n *NotificationService) handleBooking(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_type", string(event.Type)),
		zap.String("booking_id", event.ResourceID),
		zap.String("actor_id", event.ActorID),
	}
	if p, ok := event.Payload.(BookingEventPayload); ok {
		fields = append(fields,
			zap.String("user_id", p.UserID),
			zap.String("property_id", p.PropertyID),
			zap.String("status", string(p.BookingStatus)),
			zap.Time("checkin", p.CheckinDate))
	}
	n.logger.Info("booking notification", fields...)
	return nil
}

func (n *NotificationService) handleReviewCreated(_ context.Context, event events.Event) error {
	n.logger.Info("host review notification", zap.String("review_id", event.ResourceID), zap.Any("payload", event.Payload))
	return nil
}
