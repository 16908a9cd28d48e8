package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"rocketshop/internal/models"
	"rocketshop/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher publishes storefront events keyed by session, so all
// events of one session land on the same partition in order
type EventPublisher struct {
	producer *Producer
}

func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// SessionKey returns the message key for a session's events
func SessionKey(sessionID string) string {
	return fmt.Sprintf("session-%s", sessionID)
}

func (ep *EventPublisher) PublishCartItemAdded(ctx context.Context, event *models.CartItemAddedEvent) error {
	return ep.producer.PublishEvent(ctx, SessionKey(event.SessionID), event)
}

func (ep *EventPublisher) PublishDiscountActivated(ctx context.Context, event *models.DiscountActivatedEvent) error {
	return ep.producer.PublishEvent(ctx, SessionKey(event.SessionID), event)
}

func (ep *EventPublisher) PublishCheckoutStarted(ctx context.Context, event *models.CheckoutStartedEvent) error {
	return ep.producer.PublishEvent(ctx, SessionKey(event.SessionID), event)
}

func (ep *EventPublisher) PublishPaymentMethodChosen(ctx context.Context, event *models.PaymentMethodChosenEvent) error {
	return ep.producer.PublishEvent(ctx, SessionKey(event.SessionID), event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onPaymentMethodChosen func(context.Context, *models.PaymentMethodChosenEvent) error
	logger                *zap.Logger
}

func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnPaymentMethodChosen registers a handler for PAYMENT_METHOD_CHOSEN events
func (eh *EventHandler) OnPaymentMethodChosen(handler func(context.Context, *models.PaymentMethodChosenEvent) error) {
	eh.onPaymentMethodChosen = handler
}

// HandleMessage decodes the event type and dispatches. Event types with
// no registered handler are acknowledged and skipped.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypePaymentMethodChosen:
		if eh.onPaymentMethodChosen == nil {
			return nil
		}
		var event models.PaymentMethodChosenEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("failed to unmarshal PaymentMethodChosen event: %w", err)
		}
		eh.logger.Debug("Handling event",
			zap.String("type", baseEvent.EventType),
			zap.String("event_id", baseEvent.EventID))
		return eh.onPaymentMethodChosen(ctx, &event)

	case models.EventTypeCartItemAdded, models.EventTypeDiscountActivated, models.EventTypeCheckoutStarted:
		return nil

	default:
		eh.logger.Warn("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
