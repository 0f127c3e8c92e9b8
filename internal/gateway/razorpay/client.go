package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Order is the gateway-issued payment intent. The client passes it through
// to the checkout UI untouched; the amount is whatever the gateway echoed
// back, never recomputed locally.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Client talks to the Razorpay Orders API with basic auth. Every call is
// bounded by the HTTP client timeout so a hung gateway cannot stall a
// booking attempt indefinitely.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	httpc     *http.Client
}

func NewClient(keyID, keySecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		httpc:     &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API host (sandbox, tests).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// KeyID is the public key the checkout UI is constructed with.
func (c *Client) KeyID() string { return c.keyID }

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder requests a payment order for amount in minor currency units.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("razorpay: invalid order amount %d", amount)
	}
	if currency == "" {
		currency = "INR"
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: order create request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("razorpay: reading order response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("razorpay: order create returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("razorpay: decoding order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay: order response missing id")
	}
	return &order, nil
}
