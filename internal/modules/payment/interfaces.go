package payment

import (
	"context"
	"time"

	"astroconsult/internal/domain"
	"astroconsult/internal/gateway/razorpay"
	"astroconsult/internal/modules/flow"
)

type orderGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	CheckoutOptions(order *razorpay.Order, merchantName, description, themeColor string, contact domain.ContactDetails) razorpay.CheckoutOptions
}

type orderStore interface {
	Create(ctx context.Context, p *domain.PaymentOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error)
	MarkPaidIdempotent(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, orderID, reason string) error
	MarkCancelled(ctx context.Context, orderID string) error
}

type bookingFlow interface {
	Get(sessionID string, userID int64) (*flow.Session, error)
	MarkConfirmed(sessionID string) (*flow.Session, error)
}

type statusNotifier interface {
	Show(userID int64, kind, message string)
}

type linkBuilder interface {
	BuildLink(sel domain.Selection) string
}

// SlotChecker answers whether a slot is still free at payment time. The
// default implementation grants everything; a real scheduler backend can be
// plugged in without touching the service.
type SlotChecker interface {
	CheckSlot(ctx context.Context, date time.Time, label string) (bool, error)
}

type alwaysAvailable struct{}

func (alwaysAvailable) CheckSlot(context.Context, time.Time, string) (bool, error) {
	return true, nil
}
