package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rocketshop/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func base(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   "evt-1",
		EventType: eventType,
		SessionID: "abc",
		Timestamp: time.Now(),
	}
}

func TestPublishKeysBySession(t *testing.T) {
	w := &fakeWriter{}
	publisher := NewEventPublisher(NewProducerWithWriter(w, "storefront-events"))
	ctx := context.Background()

	require.NoError(t, publisher.PublishCartItemAdded(ctx, &models.CartItemAddedEvent{
		BaseEvent: base(models.EventTypeCartItemAdded), ProductID: 3, Quantity: 1,
	}))
	require.NoError(t, publisher.PublishDiscountActivated(ctx, &models.DiscountActivatedEvent{
		BaseEvent: base(models.EventTypeDiscountActivated), Percent: 20,
	}))

	require.Len(t, w.messages, 2)
	for _, msg := range w.messages {
		assert.Equal(t, "session-abc", string(msg.Key))
	}

	var decoded models.CartItemAddedEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, models.EventTypeCartItemAdded, decoded.EventType)
	assert.Equal(t, int64(3), decoded.ProductID)
}

func TestPublishWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	publisher := NewEventPublisher(NewProducerWithWriter(w, "storefront-events"))

	err := publisher.PublishCheckoutStarted(context.Background(), &models.CheckoutStartedEvent{
		BaseEvent: base(models.EventTypeCheckoutStarted),
	})
	assert.Error(t, err)
}

func TestProducerClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewProducerWithWriter(w, "t").Close())
	assert.True(t, w.closed)
}

func TestHandleMessageRoutesPaymentMethodChosen(t *testing.T) {
	handler := NewEventHandler()

	var got *models.PaymentMethodChosenEvent
	handler.OnPaymentMethodChosen(func(_ context.Context, e *models.PaymentMethodChosenEvent) error {
		got = e
		return nil
	})

	value, err := json.Marshal(models.PaymentMethodChosenEvent{
		BaseEvent:  base(models.EventTypePaymentMethodChosen),
		Method:     "sber",
		Total:      1000,
		FinalTotal: 1000,
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleMessage(context.Background(), kafka.Message{Value: value}))
	require.NotNil(t, got)
	assert.Equal(t, "sber", got.Method)
	assert.Equal(t, int64(1000), got.FinalTotal)
}

func TestHandleMessageSkipsOtherEvents(t *testing.T) {
	handler := NewEventHandler()
	called := false
	handler.OnPaymentMethodChosen(func(context.Context, *models.PaymentMethodChosenEvent) error {
		called = true
		return nil
	})

	value, err := json.Marshal(models.DiscountActivatedEvent{BaseEvent: base(models.EventTypeDiscountActivated)})
	require.NoError(t, err)

	assert.NoError(t, handler.HandleMessage(context.Background(), kafka.Message{Value: value}))
	assert.NoError(t, handler.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"event_type":"SOMETHING_ELSE"}`)}))
	assert.False(t, called)
}

func TestHandleMessageInvalidJSON(t *testing.T) {
	handler := NewEventHandler()
	assert.Error(t, handler.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")}))
}

func TestHandleMessagePropagatesHandlerError(t *testing.T) {
	handler := NewEventHandler()
	handler.OnPaymentMethodChosen(func(context.Context, *models.PaymentMethodChosenEvent) error {
		return errors.New("db down")
	})

	value, err := json.Marshal(models.PaymentMethodChosenEvent{BaseEvent: base(models.EventTypePaymentMethodChosen)})
	require.NoError(t, err)

	assert.Error(t, handler.HandleMessage(context.Background(), kafka.Message{Value: value}))
}

func TestHandleWithRetryRecovers(t *testing.T) {
	calls := 0
	handler := func(context.Context, kafka.Message) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}

	require.NoError(t, handleWithRetry(context.Background(), handler, kafka.Message{}, 3, time.Millisecond))
	assert.Equal(t, 3, calls)
}

func TestHandleWithRetryGivesUp(t *testing.T) {
	calls := 0
	handler := func(context.Context, kafka.Message) error {
		calls++
		return errors.New("permanent")
	}

	err := handleWithRetry(context.Background(), handler, kafka.Message{}, 3, time.Millisecond)
	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 3, calls)
}

func TestHandleWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	handler := func(context.Context, kafka.Message) error {
		calls++
		cancel()
		return errors.New("failing")
	}

	err := handleWithRetry(ctx, handler, kafka.Message{}, 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
