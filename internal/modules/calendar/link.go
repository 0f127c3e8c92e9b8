// Package calendar builds Google Calendar "render" deep links for confirmed
// consultations. The link is a pure function of the selection; nothing is
// written to any calendar server.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"astroconsult/internal/domain"
)

const renderURL = "https://calendar.google.com/calendar/render"

// timestamps in the dates parameter use basic ISO format in UTC
const stampLayout = "20060102T150405Z"

// Builder renders event links for one advisor in one booking timezone.
type Builder struct {
	AdvisorEmail string
	Location     *time.Location
}

func NewBuilder(advisorEmail string, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{AdvisorEmail: advisorEmail, Location: loc}
}

// BuildLink returns the prefilled event URL for a complete selection, or "#"
// when any required piece is missing.
func (b *Builder) BuildLink(sel domain.Selection) string {
	if !sel.Complete() {
		return "#"
	}

	start, err := b.eventStart(sel)
	if err != nil {
		return "#"
	}
	end := start.Add(time.Duration(sel.Offering.DurationMin) * time.Minute)

	questions := strings.TrimSpace(sel.Details.Questions)
	if questions == "" {
		questions = "General consultation"
	}

	details := fmt.Sprintf(
		"📌 Consultation Type: %s\n👤 Client: %s\n📧 Email: %s\n📱 Phone: %s\n\n❓ Questions/Topics:\n%s\n\n⏰ Duration: %d minutes\n💰 Payment: Completed via Razorpay",
		sel.Offering.Name,
		sel.Details.Name,
		sel.Details.Email,
		sel.Details.Phone,
		questions,
		sel.Offering.DurationMin,
	)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", "AstroTech Consultation: "+sel.Offering.Name)
	q.Set("dates", start.UTC().Format(stampLayout)+"/"+end.UTC().Format(stampLayout))
	q.Set("details", details)
	q.Set("add", sel.Details.Email+","+b.AdvisorEmail)
	q.Set("sf", "true")

	return renderURL + "?" + q.Encode()
}

// eventStart combines the selected date with the 12-hour slot label in the
// builder's timezone.
func (b *Builder) eventStart(sel domain.Selection) (time.Time, error) {
	tod, err := time.Parse("03:04 PM", sel.TimeLabel)
	if err != nil {
		return time.Time{}, err
	}
	d := sel.Date
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, b.Location), nil
}
