package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rocketshop/internal/catalog"
	"rocketshop/internal/checkout"
	"rocketshop/internal/models"
	"rocketshop/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings are the shop parameters applied to every session
type Settings struct {
	DefaultUsername string
	DiscountPercent int64
	Payment         checkout.PaymentDetails
}

// Service applies catalog, cart and checkout operations to stored sessions
type Service struct {
	store     Store
	locker    Locker
	catalog   *catalog.Catalog
	publisher EventPublisher
	settings  Settings
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new session service
func NewService(
	store Store,
	locker Locker,
	cat *catalog.Catalog,
	publisher EventPublisher,
	settings Settings,
) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Service{
		store:     store,
		locker:    locker,
		catalog:   cat,
		publisher: publisher,
		settings:  settings,
		logger:    util.GetLogger(),
		now:       time.Now,
	}
}

// Catalog returns the product catalog
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Create starts a new session
func (s *Service) Create(ctx context.Context, username string) (*View, error) {
	ctx, span := util.StartSpan(ctx, "SessionService.Create")
	defer span.End()

	if username == "" {
		username = s.settings.DefaultUsername
	}

	sess := New(uuid.New().String(), username, s.settings.DiscountPercent, s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	util.SessionsCreatedTotal.Inc()
	s.logger.Info("Session created", zap.String("session_id", sess.ID))

	return sessionView(sess, s.settings.Payment), nil
}

// Get returns the session view
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sessionView(sess, s.settings.Payment), nil
}

// Delete ends a session
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Find runs a stateless catalog query
func (s *Service) Find(ctx context.Context, q catalog.Query) catalog.Result {
	_, span := util.StartSpan(ctx, "SessionService.Find")
	defer span.End()

	res := s.catalog.Find(q)
	util.CatalogQueriesTotal.Inc()
	util.CatalogQueryResults.Observe(float64(res.Total))
	return res
}

// SetFilters replaces the session's catalog filters and returns the matching products
func (s *Service) SetFilters(ctx context.Context, id string, q catalog.Query) (catalog.Result, error) {
	sess, err := s.update(ctx, id, "SessionService.SetFilters", func(sess *Session) error {
		sess.Filters = q.Normalize()
		return nil
	})
	if err != nil {
		return catalog.Result{}, err
	}
	return s.Find(ctx, sess.Filters), nil
}

// Browse runs the session's current catalog filters
func (s *Service) Browse(ctx context.Context, id string) (catalog.Result, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return catalog.Result{}, err
	}
	return s.Find(ctx, sess.Filters), nil
}

// Cart returns the session cart
func (s *Service) Cart(ctx context.Context, id string) (CartView, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	return cartView(sess), nil
}

// AddToCart adds one unit of a catalog product and opens the cart
func (s *Service) AddToCart(ctx context.Context, id string, productID int64) (*AddResult, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	var res AddResult
	sess, err := s.update(ctx, id, "SessionService.AddToCart", func(sess *Session) error {
		res.AddResult = sess.Cart.Add(product)
		if res.OpenCart {
			sess.CartOpen = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Cart = cartView(sess)

	util.CartItemsAddedTotal.Inc()
	util.SessionLogger(id).Info("Product added to cart",
		zap.Int64("product_id", productID),
		zap.Int("quantity", res.Line.Quantity))

	event := &models.CartItemAddedEvent{
		BaseEvent: s.baseEvent(models.EventTypeCartItemAdded, id),
		ProductID: productID,
		Quantity:  res.Line.Quantity,
	}
	if err := s.publisher.PublishCartItemAdded(ctx, event); err != nil {
		s.logger.Error("Failed to publish CartItemAdded event", zap.Error(err))
	}

	return &res, nil
}

// RemoveFromCart deletes a line; an absent product is a no-op
func (s *Service) RemoveFromCart(ctx context.Context, id string, productID int64) (CartView, error) {
	removed := false
	sess, err := s.update(ctx, id, "SessionService.RemoveFromCart", func(sess *Session) error {
		removed = sess.Cart.Remove(productID)
		sess.closeCheckoutIfEmpty()
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	if removed {
		util.CartItemsRemovedTotal.Inc()
	}
	return cartView(sess), nil
}

// UpdateQuantity sets a line quantity, clamped to at least 1
func (s *Service) UpdateQuantity(ctx context.Context, id string, productID int64, quantity int) (CartView, error) {
	return s.mutateCart(ctx, id, "SessionService.UpdateQuantity", func(sess *Session) {
		sess.Cart.UpdateQuantity(productID, quantity)
	})
}

// IncrementQuantity raises a line quantity by one
func (s *Service) IncrementQuantity(ctx context.Context, id string, productID int64) (CartView, error) {
	return s.mutateCart(ctx, id, "SessionService.IncrementQuantity", func(sess *Session) {
		sess.Cart.Increment(productID)
	})
}

// DecrementQuantity lowers a line quantity by one, never below 1
func (s *Service) DecrementQuantity(ctx context.Context, id string, productID int64) (CartView, error) {
	return s.mutateCart(ctx, id, "SessionService.DecrementQuantity", func(sess *Session) {
		sess.Cart.Decrement(productID)
	})
}

// ClearCart removes every line
func (s *Service) ClearCart(ctx context.Context, id string) (CartView, error) {
	return s.mutateCart(ctx, id, "SessionService.ClearCart", func(sess *Session) {
		sess.Cart.Clear()
		sess.closeCheckoutIfEmpty()
	})
}

// SetCartOpen shows or hides the cart. The checkout dialog is left as is.
func (s *Service) SetCartOpen(ctx context.Context, id string, open bool) (CartView, error) {
	return s.mutateCart(ctx, id, "SessionService.SetCartOpen", func(sess *Session) {
		sess.CartOpen = open
	})
}

// ActivateDiscount switches on the promo discount; repeated calls are no-ops
func (s *Service) ActivateDiscount(ctx context.Context, id string) (CartView, error) {
	activated := false
	sess, err := s.update(ctx, id, "SessionService.ActivateDiscount", func(sess *Session) error {
		activated = sess.Discount.Activate()
		return nil
	})
	if err != nil {
		return CartView{}, err
	}

	if activated {
		util.DiscountActivationsTotal.Inc()
		util.SessionLogger(id).Info("Discount activated", zap.Int64("percent", sess.Discount.Percent))

		event := &models.DiscountActivatedEvent{
			BaseEvent: s.baseEvent(models.EventTypeDiscountActivated, id),
			Percent:   sess.Discount.Percent,
		}
		if err := s.publisher.PublishDiscountActivated(ctx, event); err != nil {
			s.logger.Error("Failed to publish DiscountActivated event", zap.Error(err))
		}
	}

	return cartView(sess), nil
}

// Checkout returns the payment dialog state
func (s *Service) Checkout(ctx context.Context, id string) (checkout.View, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return checkout.View{}, err
	}
	return checkoutView(sess, s.settings.Payment), nil
}

// OpenCheckout opens the payment dialog at method selection
func (s *Service) OpenCheckout(ctx context.Context, id string) (checkout.View, error) {
	sess, err := s.update(ctx, id, "SessionService.OpenCheckout", func(sess *Session) error {
		return sess.Checkout.Open(&sess.Cart)
	})
	if err != nil {
		s.recordRejection(err)
		return checkout.View{}, err
	}

	util.CheckoutsStartedTotal.Inc()
	totals := sess.Totals()
	event := &models.CheckoutStartedEvent{
		BaseEvent: s.baseEvent(models.EventTypeCheckoutStarted, id),
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Total:     totals.Total,
		Items:     models.LineItems(sess.Cart.Lines),
	}
	if err := s.publisher.PublishCheckoutStarted(ctx, event); err != nil {
		s.logger.Error("Failed to publish CheckoutStarted event", zap.Error(err))
	}

	return checkoutView(sess, s.settings.Payment), nil
}

// ChooseMethod selects a payment method and issues payment instructions
func (s *Service) ChooseMethod(ctx context.Context, id, method string) (checkout.View, error) {
	sess, err := s.update(ctx, id, "SessionService.ChooseMethod", func(sess *Session) error {
		_, err := sess.Checkout.Choose(method)
		return err
	})
	if err != nil {
		s.recordRejection(err)
		return checkout.View{}, err
	}

	view := checkoutView(sess, s.settings.Payment)
	util.PaymentMethodsChosenTotal.WithLabelValues(method).Inc()
	util.SessionLogger(id).Info("Payment method chosen",
		zap.String("method", method),
		zap.Int64("final_total", view.Quote.FinalTotal))

	event := &models.PaymentMethodChosenEvent{
		BaseEvent:  s.baseEvent(models.EventTypePaymentMethodChosen, id),
		OrderID:    sess.OrderID(),
		Username:   sess.Username,
		Method:     method,
		Total:      view.Quote.Total,
		Commission: view.Quote.Commission,
		FinalTotal: view.Quote.FinalTotal,
		Items:      models.LineItems(sess.Cart.Lines),
	}
	if err := s.publisher.PublishPaymentMethodChosen(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentMethodChosen event", zap.Error(err))
	}

	return view, nil
}

// BackToMethods clears the chosen method without closing the dialog
func (s *Service) BackToMethods(ctx context.Context, id string) (checkout.View, error) {
	sess, err := s.update(ctx, id, "SessionService.BackToMethods", func(sess *Session) error {
		return sess.Checkout.Back()
	})
	if err != nil {
		s.recordRejection(err)
		return checkout.View{}, err
	}
	return checkoutView(sess, s.settings.Payment), nil
}

// CloseCheckout dismisses the payment dialog
func (s *Service) CloseCheckout(ctx context.Context, id string) (checkout.View, error) {
	sess, err := s.update(ctx, id, "SessionService.CloseCheckout", func(sess *Session) error {
		sess.Checkout.Close()
		return nil
	})
	if err != nil {
		return checkout.View{}, err
	}
	return checkoutView(sess, s.settings.Payment), nil
}

func (s *Service) mutateCart(ctx context.Context, id, spanName string, fn func(*Session)) (CartView, error) {
	sess, err := s.update(ctx, id, spanName, func(sess *Session) error {
		fn(sess)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return cartView(sess), nil
}

// update loads the session under its lock, applies fn and saves the result.
// Nothing is saved when fn fails.
func (s *Service) update(ctx context.Context, id, spanName string, fn func(*Session) error) (*Session, error) {
	ctx, span := util.StartSpan(ctx, spanName)
	defer span.End()

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := sess.Clone()
	if err := fn(sess); err != nil {
		return nil, err
	}
	if !sess.sameOrder(before) {
		sess.CartVersion++
	}

	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (s *Service) recordRejection(err error) {
	switch {
	case errors.Is(err, checkout.ErrCartEmpty):
		util.CheckoutsRejectedTotal.WithLabelValues("cart_empty").Inc()
	case errors.Is(err, checkout.ErrMethodDisabled):
		util.CheckoutsRejectedTotal.WithLabelValues("method_disabled").Inc()
	case errors.Is(err, checkout.ErrUnknownMethod):
		util.CheckoutsRejectedTotal.WithLabelValues("unknown_method").Inc()
	case errors.Is(err, checkout.ErrInvalidTransition):
		util.CheckoutsRejectedTotal.WithLabelValues("invalid_transition").Inc()
	}
}

func (s *Service) baseEvent(eventType, sessionID string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		SessionID: sessionID,
		Timestamp: s.now(),
	}
}
