package session

import (
	"context"

	"rocketshop/internal/models"
)

// EventPublisher receives storefront events
type EventPublisher interface {
	PublishCartItemAdded(ctx context.Context, event *models.CartItemAddedEvent) error
	PublishDiscountActivated(ctx context.Context, event *models.DiscountActivatedEvent) error
	PublishCheckoutStarted(ctx context.Context, event *models.CheckoutStartedEvent) error
	PublishPaymentMethodChosen(ctx context.Context, event *models.PaymentMethodChosenEvent) error
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) PublishCartItemAdded(context.Context, *models.CartItemAddedEvent) error {
	return nil
}

func (NopPublisher) PublishDiscountActivated(context.Context, *models.DiscountActivatedEvent) error {
	return nil
}

func (NopPublisher) PublishCheckoutStarted(context.Context, *models.CheckoutStartedEvent) error {
	return nil
}

func (NopPublisher) PublishPaymentMethodChosen(context.Context, *models.PaymentMethodChosenEvent) error {
	return nil
}
