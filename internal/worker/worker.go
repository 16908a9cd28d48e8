package worker

import (
	"context"
	"fmt"

	"rocketshop/internal/broker"
	"rocketshop/internal/models"
	"rocketshop/internal/util"

	"go.uber.org/zap"
)

// PurchaseRecorder stores the purchases of one order exactly once
type PurchaseRecorder interface {
	RecordOrderPurchases(ctx context.Context, orderID, eventID string, purchases []models.Purchase) (bool, error)
}

// PurchaseWorker turns chosen payment methods into pending purchase history entries
type PurchaseWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	recorder     PurchaseRecorder
	logger       *zap.Logger
}

func NewPurchaseWorker(consumer *broker.Consumer, recorder PurchaseRecorder) *PurchaseWorker {
	w := &PurchaseWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		recorder:     recorder,
		logger:       util.GetLogger(),
	}
	w.eventHandler.OnPaymentMethodChosen(w.HandlePaymentMethodChosen)
	return w
}

// Start consumes until ctx is cancelled
func (w *PurchaseWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting purchase worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

func (w *PurchaseWorker) Stop() error {
	w.logger.Info("Stopping purchase worker")
	return w.consumer.Close()
}

// HandlePaymentMethodChosen records one pending purchase per cart line.
// Events for an order that is already recorded, whether redelivered or from
// choosing a method again over the same cart, are skipped.
func (w *PurchaseWorker) HandlePaymentMethodChosen(ctx context.Context, event *models.PaymentMethodChosenEvent) error {
	ctx, span := util.StartSpan(ctx, "PurchaseWorker.HandlePaymentMethodChosen")
	defer span.End()

	purchases := PendingPurchases(event)
	if len(purchases) == 0 {
		return nil
	}

	orderID := orderKey(event)
	recorded, err := w.recorder.RecordOrderPurchases(ctx, orderID, event.EventID, purchases)
	if err != nil {
		return fmt.Errorf("failed to record purchases: %w", err)
	}
	if !recorded {
		w.logger.Info("Order already recorded, skipping",
			zap.String("order_id", orderID),
			zap.String("event_id", event.EventID))
		return nil
	}

	util.PendingPurchasesRecordedTotal.Add(float64(len(purchases)))
	util.SessionLogger(event.SessionID).Info("Pending purchases recorded",
		zap.String("username", event.Username),
		zap.String("order_id", orderID),
		zap.String("method", event.Method),
		zap.Int("count", len(purchases)))
	return nil
}

// PendingPurchases converts the event's line items into history entries
func PendingPurchases(event *models.PaymentMethodChosenEvent) []models.Purchase {
	if event.Username == "" {
		return nil
	}

	purchases := make([]models.Purchase, 0, len(event.Items))
	for _, item := range event.Items {
		amount := item.Amount
		if item.Quantity > 1 {
			amount = fmt.Sprintf("%s × %d", item.Amount, item.Quantity)
		}
		purchases = append(purchases, models.Purchase{
			Username: event.Username,
			Date:     event.Timestamp,
			Product:  item.Game,
			Amount:   amount,
			Price:    item.UnitPrice * int64(item.Quantity),
			Status:   models.PurchaseStatusPending,
			OrderID:  orderKey(event),
		})
	}
	return purchases
}

// orderKey falls back to the event id for events published without an order id
func orderKey(event *models.PaymentMethodChosenEvent) string {
	if event.OrderID != "" {
		return event.OrderID
	}
	return event.EventID
}
