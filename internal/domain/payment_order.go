package domain

import "time"

type PaymentOrderStatus string

const (
	OrderCreated   PaymentOrderStatus = "created"
	OrderPaid      PaymentOrderStatus = "paid"
	OrderFailed    PaymentOrderStatus = "failed"
	OrderCancelled PaymentOrderStatus = "cancelled"
)

// PaymentOrder is the server-side record of one payment attempt against the
// gateway. Exactly one row is created per initiated attempt; a retry creates
// a new row, never reuses an old one.
type PaymentOrder struct {
	ID            int64              `gorm:"primaryKey" json:"id"`
	OrderID       string             `gorm:"uniqueIndex;type:varchar(64);not null" json:"order_id"`
	SessionID     string             `gorm:"index;type:varchar(64);not null" json:"session_id"`
	UserID        int64              `gorm:"index;not null" json:"user_id"`
	AttemptToken  string             `gorm:"uniqueIndex;type:varchar(64);not null" json:"attempt_token"`
	OfferingID    string             `gorm:"type:varchar(32)" json:"offering_id"`
	Amount        int64              `gorm:"not null" json:"amount"`
	Currency      string             `gorm:"type:varchar(8);not null" json:"currency"`
	Status        PaymentOrderStatus `gorm:"type:varchar(20);default:'created';index" json:"status"`
	PaymentID     string             `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	Signature     string             `gorm:"type:varchar(128)" json:"-"`
	FailureReason string             `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (PaymentOrder) TableName() string { return "payment_orders" }
