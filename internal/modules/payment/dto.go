package payment

import "astroconsult/internal/gateway/razorpay"

// InitiateResponse carries everything the browser needs to open checkout.
type InitiateResponse struct {
	OrderID      string                   `json:"order_id"`
	AttemptToken string                   `json:"attempt_token"`
	Checkout     razorpay.CheckoutOptions `json:"checkout"`
}

// CompleteRequest is the checkout success callback relayed by the browser.
type CompleteRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	AttemptToken      string `json:"attempt_token" binding:"required"`
}

// FailureRequest reports a gateway-declared payment failure.
type FailureRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	Description string `json:"description"`
}

// DismissRequest reports the user closing the checkout modal.
type DismissRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// CompleteResponse reports the confirmed booking and its calendar link.
type CompleteResponse struct {
	Confirmed    bool   `json:"confirmed"`
	SessionID    string `json:"session_id"`
	CalendarLink string `json:"calendar_link"`
}
