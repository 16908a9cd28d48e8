package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"rocketshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	seen  map[string]bool
	saved []models.Purchase
	err   error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{seen: make(map[string]bool)}
}

func (r *fakeRecorder) RecordOrderPurchases(_ context.Context, orderID, _ string, purchases []models.Purchase) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if r.seen[orderID] {
		return false, nil
	}
	r.seen[orderID] = true
	r.saved = append(r.saved, purchases...)
	return true, nil
}

func chosenEvent() *models.PaymentMethodChosenEvent {
	return &models.PaymentMethodChosenEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypePaymentMethodChosen,
			SessionID: "abc",
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		OrderID:  "abc-4",
		Username: "player",
		Method:   "sber",
		Items: []models.LineItemData{
			{ProductID: 3, Name: "V-Bucks 2800", Game: "Fortnite", Amount: "2800 V-Bucks", Quantity: 1, UnitPrice: 1299},
			{ProductID: 5, Name: "Robux 1700", Game: "Roblox", Amount: "1700 Robux", Quantity: 2, UnitPrice: 1590},
		},
	}
}

func newTestWorker(recorder PurchaseRecorder) *PurchaseWorker {
	return NewPurchaseWorker(nil, recorder)
}

func TestPendingPurchases(t *testing.T) {
	purchases := PendingPurchases(chosenEvent())

	require.Len(t, purchases, 2)
	assert.Equal(t, "Fortnite", purchases[0].Product)
	assert.Equal(t, "2800 V-Bucks", purchases[0].Amount)
	assert.Equal(t, int64(1299), purchases[0].Price)
	assert.Equal(t, "1700 Robux × 2", purchases[1].Amount)
	assert.Equal(t, int64(3180), purchases[1].Price)
	for _, p := range purchases {
		assert.Equal(t, models.PurchaseStatusPending, p.Status)
		assert.Equal(t, "player", p.Username)
		assert.Equal(t, "abc-4", p.OrderID)
	}
}

func TestPendingPurchasesWithoutUsername(t *testing.T) {
	event := chosenEvent()
	event.Username = ""
	assert.Empty(t, PendingPurchases(event))
}

func TestHandlePaymentMethodChosenIsIdempotent(t *testing.T) {
	recorder := newFakeRecorder()
	w := newTestWorker(recorder)
	ctx := context.Background()

	require.NoError(t, w.HandlePaymentMethodChosen(ctx, chosenEvent()))
	require.NoError(t, w.HandlePaymentMethodChosen(ctx, chosenEvent()))

	assert.Len(t, recorder.saved, 2)
}

func TestRechoosingMethodRecordsOrderOnce(t *testing.T) {
	recorder := newFakeRecorder()
	w := newTestWorker(recorder)
	ctx := context.Background()

	// each choice publishes a fresh event id for the same unchanged cart
	for _, eventID := range []string{"evt-1", "evt-2", "evt-3"} {
		event := chosenEvent()
		event.EventID = eventID
		require.NoError(t, w.HandlePaymentMethodChosen(ctx, event))
	}
	assert.Len(t, recorder.saved, 2)

	changed := chosenEvent()
	changed.EventID = "evt-4"
	changed.OrderID = "abc-5"
	require.NoError(t, w.HandlePaymentMethodChosen(ctx, changed))
	assert.Len(t, recorder.saved, 4)
}

func TestOrderKeyFallsBackToEventID(t *testing.T) {
	event := chosenEvent()
	event.OrderID = ""
	purchases := PendingPurchases(event)
	require.NotEmpty(t, purchases)
	assert.Equal(t, "evt-1", purchases[0].OrderID)
}

func TestHandlePaymentMethodChosenRecorderError(t *testing.T) {
	recorder := newFakeRecorder()
	recorder.err = errors.New("db down")
	w := newTestWorker(recorder)

	assert.Error(t, w.HandlePaymentMethodChosen(context.Background(), chosenEvent()))
}
