package razorpay

import "astroconsult/internal/domain"

// CheckoutOptions is the construction contract of the gateway's hosted
// checkout UI. Amount and currency are echoed from the server-issued order
// so the client cannot tamper with what gets charged.
type CheckoutOptions struct {
	Key         string          `json:"key"`
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OrderID     string          `json:"order_id"`
	Prefill     CheckoutPrefill `json:"prefill"`
	Theme       CheckoutTheme   `json:"theme"`
}

type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CheckoutTheme struct {
	Color string `json:"color"`
}

// CheckoutOptions builds the options for one order, prefilled with the
// buyer's contact details.
func (c *Client) CheckoutOptions(order *Order, merchantName, description, themeColor string, contact domain.ContactDetails) CheckoutOptions {
	return CheckoutOptions{
		Key:         c.keyID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        merchantName,
		Description: description,
		OrderID:     order.ID,
		Prefill: CheckoutPrefill{
			Name:    contact.Name,
			Email:   contact.Email,
			Contact: contact.Phone,
		},
		Theme: CheckoutTheme{Color: themeColor},
	}
}
