package checkout

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jrmolina/tienda-whatsapp/internal/cart"
	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
	"github.com/jrmolina/tienda-whatsapp/internal/order"
)

// ErrInvalidDeliveryDetails marks delivery form rejections: missing fields, a
// malformed or past date, or an unknown delivery window.
var ErrInvalidDeliveryDetails = errors.New("invalid delivery details")

var validate = validator.New()

// Config carries the storefront constants a session needs.
type Config struct {
	ShippingCost    decimal.Decimal
	Finalizer       *order.Finalizer
	DeliveryWindows []string
}

// Session owns one shopper's cart, checkout step and pending order snapshot.
// All mutations are routed through named transition methods; guarded triggers
// that fail are silent no-ops, never errors.
type Session struct {
	mu   sync.Mutex
	step Step
	cart *cart.Cart
	ord  *order.Details
	cfg  Config
}

func NewSession(cfg Config) *Session {
	return &Session{
		step: StepSelection,
		cart: cart.New(),
		cfg:  cfg,
	}
}

// State is a point-in-time view of the session with totals recomputed from the
// live cart.
type State struct {
	Step      Step
	Items     []cart.Item
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	Order     *order.Details
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Step:      s.step,
		Items:     s.cart.Items(),
		ItemCount: s.cart.ItemCount(),
		Subtotal:  s.cart.Subtotal(),
		Shipping:  s.cfg.ShippingCost,
		Total:     s.cart.Total(s.cfg.ShippingCost),
		Order:     s.ord,
	}
}

// Cart operations. These do not change the step.

func (s *Session) AddItem(p catalog.Product) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(p)
	return s.stateLocked()
}

func (s *Session) SetQuantity(productID string, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, quantity)
	return s.stateLocked()
}

func (s *Session) RemoveItem(productID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	return s.stateLocked()
}

func (s *Session) ClearCart() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.stateLocked()
}

// Step transitions.

// ProceedToSummary moves selection -> summary when the cart is non-empty.
func (s *Session) ProceedToSummary() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.IsEmpty() {
		s.transition(StepSummary)
	}
	return s.stateLocked()
}

// GoBack steps summary -> selection or delivery -> summary.
func (s *Session) GoBack() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepSummary:
		s.transition(StepSelection)
	case StepDelivery:
		s.transition(StepSummary)
	}
	return s.stateLocked()
}

// ProceedToDelivery moves summary -> delivery when the cart is non-empty.
func (s *Session) ProceedToDelivery() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.IsEmpty() {
		s.transition(StepDelivery)
	}
	return s.stateLocked()
}

// StartNewOrder leaves confirmation for a fresh selection, discarding the
// order snapshot.
func (s *Session) StartNewOrder() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepConfirmation && s.transition(StepSelection) {
		s.ord = nil
		s.cart.Clear()
	}
	return s.stateLocked()
}

// GoHome resets to selection from any step, clearing cart and snapshot. It is
// the one trigger that bypasses the transition table.
func (s *Session) GoHome() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepSelection
	s.ord = nil
	s.cart.Clear()
	return s.stateLocked()
}

// FinalizeResult reports a completed finalization. Link is empty and Warning
// set when the rendered message was over the channel budget; the order is
// still finalized in that case.
type FinalizeResult struct {
	Order   *order.Details
	Link    string
	Warning string
}

// Finalize validates the delivery form, freezes the order snapshot, clears the
// cart and advances to confirmation. Called outside the delivery step or with
// an empty cart it is a silent no-op returning a nil result.
func (s *Session) Finalize(details order.DeliveryDetails) (*FinalizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !allowedTransitions[s.step][StepConfirmation] || s.cart.IsEmpty() {
		return nil, nil
	}

	if err := s.validateDelivery(details); err != nil {
		return nil, err
	}

	o := s.cfg.Finalizer.Finalize(details, s.cart.Items(), s.cart.Subtotal(), s.cfg.ShippingCost)
	res := &FinalizeResult{Order: o}

	link, err := s.cfg.Finalizer.Link(o)
	if err != nil {
		// Over-budget message: the order stands, only the hand-off is skipped.
		res.Warning = "El mensaje del pedido es demasiado largo para enviarse por WhatsApp. Contacta al cliente directamente para confirmar."
	} else {
		res.Link = link
	}

	s.ord = o
	s.cart.Clear()
	s.transition(StepConfirmation)
	return res, nil
}

func (s *Session) validateDelivery(details order.DeliveryDetails) error {
	if err := validate.Struct(details); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", ErrInvalidDeliveryDetails, fieldErrs)
		}
		return fmt.Errorf("%w: %w", ErrInvalidDeliveryDetails, err)
	}

	date, err := time.Parse("2006-01-02", details.DeliveryDate)
	if err != nil {
		return fmt.Errorf("%w: delivery date must be YYYY-MM-DD", ErrInvalidDeliveryDetails)
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return fmt.Errorf("%w: delivery date is in the past", ErrInvalidDeliveryDetails)
	}

	if len(s.cfg.DeliveryWindows) > 0 && !containsWindow(s.cfg.DeliveryWindows, details.DeliveryWindow) {
		return fmt.Errorf("%w: unknown delivery window %q", ErrInvalidDeliveryDetails, details.DeliveryWindow)
	}

	return nil
}

func containsWindow(windows []string, window string) bool {
	for _, w := range windows {
		if w == window {
			return true
		}
	}
	return false
}

func (s *Session) transition(to Step) bool {
	if !allowedTransitions[s.step][to] {
		log.Debug().Stringer("from", s.step).Stringer("to", to).Msg("checkout: transition not allowed, ignoring")
		return false
	}
	s.step = to
	return true
}
