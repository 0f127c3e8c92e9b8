// Package payment orchestrates the order lifecycle against the gateway:
// initiation creates an order and checkout options, completion verifies the
// gateway signature server-side and confirms the booking exactly once.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"astroconsult/internal/domain"
	"astroconsult/internal/modules/flow"
	"astroconsult/internal/modules/notifier"
)

const currency = "INR"

const (
	msgSuccess      = "Payment successful! Redirecting to schedule your meeting..."
	msgVerifyFailed = "Payment verification failed. Please contact support."
	msgFailed       = "Payment failed. Please try again."
	msgCancelled    = "Payment cancelled."
	msgPrecondition = "Please fill in all required fields"
	msgSlotTaken    = "Selected slot is no longer available. Please pick another time."
	msgSetupFailed  = "Something went wrong. Please try again."
)

type Config struct {
	MerchantName string
	ThemeColor   string
}

type Service struct {
	gateway  orderGateway
	orders   orderStore
	flow     bookingFlow
	notifier statusNotifier
	links    linkBuilder
	slots    SlotChecker
	cfg      Config
	now      func() time.Time
}

func NewService(gateway orderGateway, orders orderStore, bookings bookingFlow, n statusNotifier, links linkBuilder, slots SlotChecker, cfg Config) *Service {
	if slots == nil {
		slots = alwaysAvailable{}
	}
	return &Service{
		gateway:  gateway,
		orders:   orders,
		flow:     bookings,
		notifier: n,
		links:    links,
		slots:    slots,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Initiate creates a gateway order for the session's selection and records
// the attempt. No gateway call is made unless the selection is complete.
func (s *Service) Initiate(ctx context.Context, userID int64, sessionID string) (*InitiateResponse, error) {
	sess, err := s.flow.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.Step != flow.StepEnteringDetails || !sess.Selection.Complete() {
		s.notifier.Show(userID, notifier.KindError, msgPrecondition)
		return nil, ErrPreconditionFailed
	}
	sel := sess.Selection

	free, err := s.slots.CheckSlot(ctx, sel.Date, sel.TimeLabel)
	if err != nil {
		return nil, fmt.Errorf("slot check: %w", err)
	}
	if !free {
		s.notifier.Show(userID, notifier.KindError, msgSlotTaken)
		return nil, ErrSlotUnavailable
	}

	attemptToken := uuid.NewString()
	receipt := fmt.Sprintf("rcpt_%d_%d", userID, s.now().Unix())

	order, err := s.gateway.CreateOrder(ctx, sel.Offering.Price, currency, receipt)
	if err != nil {
		log.Printf("payment_setup_failed session_id=%s user_id=%d err=%v", sessionID, userID, err)
		s.notifier.Show(userID, notifier.KindError, msgSetupFailed)
		return nil, fmt.Errorf("%w: %v", ErrPaymentSetupFailed, err)
	}

	record := &domain.PaymentOrder{
		OrderID:      order.ID,
		SessionID:    sessionID,
		UserID:       userID,
		AttemptToken: attemptToken,
		OfferingID:   sel.Offering.ID,
		Amount:       order.Amount,
		Currency:     order.Currency,
		Status:       domain.OrderCreated,
	}
	if err := s.orders.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	description := sel.Offering.Name + " Consultation"
	checkout := s.gateway.CheckoutOptions(order, s.cfg.MerchantName, description, s.cfg.ThemeColor, sel.Details)

	return &InitiateResponse{
		OrderID:      order.ID,
		AttemptToken: attemptToken,
		Checkout:     checkout,
	}, nil
}

// Complete handles the checkout success callback. The signature is verified
// server-side before anything is trusted; confirmation side effects run at
// most once per order no matter how many times the callback arrives.
func (s *Service) Complete(ctx context.Context, userID int64, req CompleteRequest) (*CompleteResponse, error) {
	order, err := s.lookupOwned(ctx, userID, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	if order.AttemptToken != req.AttemptToken {
		return nil, ErrAttemptMismatch
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if err := s.orders.MarkFailed(ctx, order.OrderID, "signature verification failed"); err != nil {
			log.Printf("mark_failed_error order_id=%s err=%v", order.OrderID, err)
		}
		s.notifier.Show(userID, notifier.KindError, msgVerifyFailed)
		return nil, ErrVerificationFailed
	}

	changed, err := s.orders.MarkPaidIdempotent(ctx, order.OrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	sess, err := s.flow.MarkConfirmed(order.SessionID)
	if err != nil {
		// the payment is captured either way; confirmation state is what
		// the client retries against
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	if changed {
		s.notifier.Show(userID, notifier.KindSuccess, msgSuccess)
		log.Printf("payment_completed order_id=%s session_id=%s user_id=%d", order.OrderID, order.SessionID, userID)
	}

	return &CompleteResponse{
		Confirmed:    true,
		SessionID:    order.SessionID,
		CalendarLink: s.links.BuildLink(sess.Selection),
	}, nil
}

// Fail records a gateway-declared failure. The selection is left untouched
// so the user may retry without redoing earlier steps.
func (s *Service) Fail(ctx context.Context, userID int64, req FailureRequest) error {
	order, err := s.lookupOwned(ctx, userID, req.OrderID)
	if err != nil {
		return err
	}

	reason := req.Description
	if reason == "" {
		reason = msgFailed
	}
	if err := s.orders.MarkFailed(ctx, order.OrderID, reason); err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	s.notifier.Show(userID, notifier.KindError, reason)
	return nil
}

// Dismiss records the user closing the checkout modal without paying.
func (s *Service) Dismiss(ctx context.Context, userID int64, req DismissRequest) error {
	order, err := s.lookupOwned(ctx, userID, req.OrderID)
	if err != nil {
		return err
	}

	if err := s.orders.MarkCancelled(ctx, order.OrderID); err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}
	s.notifier.Show(userID, notifier.KindError, msgCancelled)
	return nil
}

func (s *Service) lookupOwned(ctx context.Context, userID int64, orderID string) (*domain.PaymentOrder, error) {
	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
