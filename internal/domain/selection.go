package domain

import (
	"strings"
	"time"
)

// ContactDetails holds the buyer's contact fields collected on the details
// step. Name, email and phone are required before payment; topic and
// questions are free text.
type ContactDetails struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Topic     string `json:"topic,omitempty"`
	Questions string `json:"questions,omitempty"`
}

func (c ContactDetails) Complete() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Phone) != ""
}

// Selection is the aggregate a booking session fills in step order. It is
// owned by the flow session for the lifetime of one booking attempt and is
// never persisted.
type Selection struct {
	Offering  *Offering      `json:"offering,omitempty"`
	Date      time.Time      `json:"date,omitempty"`
	TimeLabel string         `json:"time,omitempty"`
	Details   ContactDetails `json:"details"`
}

// Complete reports whether every field needed to commit the booking is set.
func (s Selection) Complete() bool {
	return s.Offering != nil && !s.Date.IsZero() && s.TimeLabel != "" && s.Details.Complete()
}
