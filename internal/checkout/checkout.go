// Package checkout sequences detail collection, payment capture, and order
// persistence. It is a strict pipeline: each step starts only after the
// previous one succeeded, and the order save is the failure-isolation
// boundary — once the gateway has captured money, the save runs exactly once
// per explicit (re)try and is never retried automatically.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/furnimart/storefront/internal/backend"
	"github.com/furnimart/storefront/internal/entity"
	"github.com/furnimart/storefront/internal/metrics"
	"github.com/furnimart/storefront/internal/pricing"
	"github.com/furnimart/storefront/internal/session"
	"github.com/furnimart/storefront/internal/stock"
)

// Checkout pipeline states.
const (
	StatusCollectingDetails = "collecting_details"
	StatusAwaitingPayment   = "awaiting_payment"
	StatusPaymentConfirmed  = "payment_confirmed"
	StatusOrderSaved        = "order_saved"
	StatusFailed            = "failed"
)

// ErrSubmitInProgress guards against double submission while a pipeline run
// is in flight.
var ErrSubmitInProgress = errors.New("checkout submission already in progress")

// ErrPaymentCaptured is returned by Submit after a capture has happened; only
// RetrySave may touch the backend at that point.
var ErrPaymentCaptured = errors.New("payment already captured, retry the order save instead")

// Backend is the slice of the store API the orchestrator needs.
type Backend interface {
	GetUser(ctx context.Context, userID int) (*entity.User, error)
	GetCart(ctx context.Context, userID int) ([]entity.CartEntry, error)
	GetProduct(ctx context.Context, id int, productType entity.ProductType) (*entity.Product, error)
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
	SaveOrder(ctx context.Context, req backend.SaveOrderRequest, idemKey string) error
	CheckoutCart(ctx context.Context, req backend.CheckoutCartRequest, idemKey string) error
}

// PaymentConfirmation is what the collector reports back after the shopper
// completed the hosted payment flow.
type PaymentConfirmation struct {
	IntentRef string
}

// PaymentCollector is the third-party payment widget boundary. The real
// implementation hands control to a hosted card-entry UI and resumes on its
// callback; tests inject a fake.
type PaymentCollector interface {
	Confirm(ctx context.Context, clientSecret string) (*PaymentConfirmation, error)
}

// buyNowLine pins the server-confirmed snapshot for a direct purchase.
type buyNowLine struct {
	product  entity.Product
	quantity int
}

// Checkout is one checkout session. It lives in memory only: abandoning it
// before payment capture leaves no server-side state, and it is not
// persisted across process restarts.
type Checkout struct {
	backend     Backend
	collector   PaymentCollector
	sess        *session.Session
	currency    string
	saveTimeout time.Duration

	mu           sync.Mutex
	inFlight     bool
	status       string
	details      entity.ShippingDetails
	quote        pricing.Quote
	buyNow       *buyNowLine // nil when checking out the whole cart
	idemKey      string
	intentRef    string
	captured     bool
	lastErr      error
	onOrderSaved func()
}

// Config carries the orchestrator's collaborators.
type Config struct {
	Backend     Backend
	Collector   PaymentCollector
	Session     *session.Session
	Currency    string
	SaveTimeout time.Duration
	// OnOrderSaved fires after successful persistence (cart cleared,
	// navigation shell notified).
	OnOrderSaved func()
}

// BeginFromCart starts a checkout for the user's whole cart. The user must be
// authenticated and the cart must have a positive subtotal.
func BeginFromCart(ctx context.Context, cfg Config) (*Checkout, error) {
	c, err := begin(ctx, cfg)
	if err != nil {
		return nil, err
	}

	entries, err := cfg.Backend.GetCart(ctx, cfg.Session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !subtotalOf(entries).IsPositive() {
		return nil, fmt.Errorf("%w: cart is empty", entity.ErrValidation)
	}
	return c, nil
}

// BeginBuyNow starts a checkout for a single product, pinning a fresh
// server-confirmed price snapshot for the session.
func BeginBuyNow(ctx context.Context, cfg Config, productID int, productType entity.ProductType, quantity int) (*Checkout, error) {
	c, err := begin(ctx, cfg)
	if err != nil {
		return nil, err
	}

	product, err := cfg.Backend.GetProduct(ctx, productID, productType)
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	if !product.InStock() {
		return nil, fmt.Errorf("%w: %s is out of stock", entity.ErrStockConflict, product.Name)
	}
	c.buyNow = &buyNowLine{
		product:  *product,
		quantity: stock.ClampQuantity(quantity, product.Stock),
	}
	return c, nil
}

func begin(ctx context.Context, cfg Config) (*Checkout, error) {
	if !cfg.Session.Authenticated() {
		return nil, entity.ErrAuthRequired
	}

	c := &Checkout{
		backend:      cfg.Backend,
		collector:    cfg.Collector,
		sess:         cfg.Session,
		currency:     cfg.Currency,
		saveTimeout:  cfg.SaveTimeout,
		status:       StatusCollectingDetails,
		idemKey:      uuid.New().String(),
		onOrderSaved: cfg.OnOrderSaved,
	}

	// Prefill identity from the stored profile. Name and email are not
	// editable in this flow; phone is a starting point, address is always
	// entered fresh.
	user, err := cfg.Backend.GetUser(ctx, cfg.Session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	c.details = entity.ShippingDetails{
		Name:  user.Username,
		Email: user.Email,
		Phone: user.MobileNumber,
	}
	return c, nil
}

// SetShipping updates the user-editable shipping fields. Entered values
// survive failed attempts so the user never retypes them.
func (c *Checkout) SetShipping(phone, address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details.Phone = phone
	c.details.Address = address
}

// Details returns the current shipping details.
func (c *Checkout) Details() entity.ShippingDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details
}

// Status returns the current pipeline state.
func (c *Checkout) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the failure that moved the session to StatusFailed, if any.
func (c *Checkout) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Quote returns the latest computed quote. Zero before the first Submit.
func (c *Checkout) Quote() pricing.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quote
}

// Submit runs the pipeline: validate details, price the order against fresh
// server snapshots, create the payment intent, collect payment, persist the
// order. On pre-capture failure the session moves to StatusFailed but may be
// re-submitted; entered details are preserved. A second Submit while one is
// running returns ErrSubmitInProgress.
func (c *Checkout) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if c.captured {
		c.mu.Unlock()
		return ErrPaymentCaptured
	}
	if c.status != StatusCollectingDetails && c.status != StatusFailed {
		status := c.status
		c.mu.Unlock()
		return fmt.Errorf("cannot submit checkout in state %q", status)
	}
	if !c.details.Complete() {
		c.mu.Unlock()
		return fmt.Errorf("%w: address and phone number are required", entity.ErrValidation)
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	return c.run(ctx)
}

func (c *Checkout) run(ctx context.Context) error {
	subtotal, err := c.liveSubtotal(ctx)
	if err != nil {
		return c.fail(err)
	}
	if !subtotal.IsPositive() {
		return c.fail(fmt.Errorf("%w: nothing to check out", entity.ErrValidation))
	}

	quote, err := pricing.ComputeQuote(subtotal)
	if err != nil {
		return c.fail(fmt.Errorf("failed to price order: %w", err))
	}
	c.setQuote(quote)

	// Step: payment intent.
	c.setStatus(StatusAwaitingPayment)
	secret, err := c.backend.CreatePaymentIntent(ctx, quote.MinorUnits(), c.currency)
	metrics.RecordCheckoutStep("initiate_payment", err == nil)
	if err != nil {
		return c.fail(err)
	}

	// Step: hand control to the hosted payment widget and wait for its
	// verdict. This is the one genuine suspension point in the pipeline.
	conf, err := c.collector.Confirm(ctx, secret)
	metrics.RecordCheckoutStep("confirm_payment", err == nil)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %v", entity.ErrGateway, err))
	}

	c.mu.Lock()
	c.captured = true
	c.intentRef = conf.IntentRef
	c.status = StatusPaymentConfirmed
	c.mu.Unlock()
	slog.Info("Payment captured", "user_id", c.sess.UserID, "intent_ref", conf.IntentRef, "amount_minor", quote.MinorUnits())

	return c.saveOrder(ctx)
}

// RetrySave re-attempts order persistence after an OrderPersistenceError.
// It reuses the session's idempotency key so one payment can never produce
// two orders on a backend that honors the key, and it never touches the
// payment gateway again.
func (c *Checkout) RetrySave(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if !c.captured || c.status != StatusFailed {
		status := c.status
		c.mu.Unlock()
		return fmt.Errorf("nothing to retry in state %q", status)
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	return c.saveOrder(ctx)
}

// saveOrder issues exactly one persistence request per call, under its own
// deadline. Any failure here — including an ambiguous timeout — is surfaced
// as ErrOrderPersistence and never retried automatically, because the payment
// is already captured.
func (c *Checkout) saveOrder(ctx context.Context) error {
	saveCtx := ctx
	if c.saveTimeout > 0 {
		var cancel context.CancelFunc
		saveCtx, cancel = context.WithTimeout(ctx, c.saveTimeout)
		defer cancel()
	}

	err := c.buildSaveRequest()(saveCtx)
	metrics.RecordCheckoutStep("save_order", err == nil)
	if err != nil {
		slog.Error("Order save failed after payment capture", "user_id", c.sess.UserID, "intent_ref", c.intentRef, "err", err)
		return c.fail(fmt.Errorf("%w: %v", entity.ErrOrderPersistence, err))
	}

	c.setStatus(StatusOrderSaved)
	slog.Info("Order saved", "user_id", c.sess.UserID, "intent_ref", c.intentRef)
	if c.onOrderSaved != nil {
		c.onOrderSaved()
	}
	return nil
}

func (c *Checkout) buildSaveRequest() func(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buyNow != nil {
		req := backend.SaveOrderRequest{
			UserID:        c.sess.UserID,
			ProductID:     c.buyNow.product.ID,
			ProductName:   c.buyNow.product.Name,
			Quantity:      c.buyNow.quantity,
			Price:         c.quote.GrandTotal,
			Username:      c.details.Name,
			Email:         c.details.Email,
			MobileNumber:  c.details.Phone,
			Address:       c.details.Address,
			OrderType:     c.buyNow.product.Type,
			OrderStatus:   entity.OrderToBeShipped,
			PaymentStatus: entity.PaymentPaid,
		}
		key := c.idemKey
		return func(ctx context.Context) error {
			return c.backend.SaveOrder(ctx, req, key)
		}
	}

	req := backend.CheckoutCartRequest{
		UserID:        c.sess.UserID,
		Username:      c.details.Name,
		Email:         c.details.Email,
		MobileNumber:  c.details.Phone,
		Address:       c.details.Address,
		PaymentStatus: entity.PaymentPaid,
	}
	key := c.idemKey
	return func(ctx context.Context) error {
		return c.backend.CheckoutCart(ctx, req, key)
	}
}

// liveSubtotal prices the session from server-confirmed snapshots: the cart's
// own price snapshots for a cart checkout, or a stock re-check on the pinned
// line for buy-now. A buy-now quantity above live stock is clamped and
// surfaced as ErrStockConflict so the user can confirm the adjusted amount.
func (c *Checkout) liveSubtotal(ctx context.Context) (decimal.Decimal, error) {
	c.mu.Lock()
	buyNow := c.buyNow
	c.mu.Unlock()

	if buyNow == nil {
		entries, err := c.backend.GetCart(ctx, c.sess.UserID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load cart: %w", err)
		}
		return subtotalOf(entries), nil
	}

	product, err := c.backend.GetProduct(ctx, buyNow.product.ID, buyNow.product.Type)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to re-check stock: %w", err)
	}
	if product.Stock < buyNow.quantity {
		clamped := stock.ClampQuantity(buyNow.quantity, product.Stock)
		c.mu.Lock()
		c.buyNow.quantity = clamped
		c.mu.Unlock()
		return decimal.Zero, fmt.Errorf("%w: only %d of %s available, quantity adjusted",
			entity.ErrStockConflict, product.Stock, product.Name)
	}

	unit := buyNow.product.UnitPrice // price pinned at buy-now time
	return unit.Mul(decimal.NewFromInt(int64(buyNow.quantity))), nil
}

func (c *Checkout) fail(err error) error {
	c.mu.Lock()
	c.status = StatusFailed
	c.lastErr = err
	c.mu.Unlock()
	return err
}

func (c *Checkout) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func (c *Checkout) setQuote(q pricing.Quote) {
	c.mu.Lock()
	c.quote = q
	c.mu.Unlock()
}

func subtotalOf(entries []entity.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}
