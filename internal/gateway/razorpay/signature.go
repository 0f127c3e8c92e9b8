package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a gateway-reported payment result server-side. The
// expected signature is hex(HMAC-SHA256(order_id + "|" + payment_id)) keyed
// with the secret; the comparison is constant-time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(c.keySecret, orderID, paymentID, signature)
}

func verifySignature(secret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment produces the signature the gateway would emit for a payment.
// Kept for tests and local sandboxing.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
