package payment

import "errors"

var (
	// ErrPreconditionFailed means the session is not ready to pay: wrong
	// step, incomplete selection, or missing contact details. No gateway
	// call was made.
	ErrPreconditionFailed = errors.New("booking is not ready for payment")

	// ErrSlotUnavailable means the chosen slot was taken between selection
	// and payment initiation.
	ErrSlotUnavailable = errors.New("selected slot is no longer available")

	// ErrPaymentSetupFailed means order creation at the gateway failed.
	// Transient; the client may re-initiate.
	ErrPaymentSetupFailed = errors.New("payment setup failed")

	// ErrVerificationFailed means the gateway reported success but the
	// signature did not check out. The booking stays unconfirmed.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrAttemptMismatch means the completion callback carried a token
	// from a different initiation attempt.
	ErrAttemptMismatch = errors.New("payment attempt token mismatch")

	ErrOrderNotFound = errors.New("payment order not found")
)
