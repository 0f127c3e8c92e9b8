package availability

import "time"

const (
	// Scan up to scanDays calendar days ahead but never return more than
	// maxDates candidates, whichever limit is hit first.
	scanDays = 21
	maxDates = 14
)

// blackoutWeekday is the advisor's fixed day off.
const blackoutWeekday = time.Sunday

var slotLabels = []string{
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
	"06:00 PM",
	"07:00 PM",
	"08:00 PM",
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DateCandidate struct {
	Date  time.Time `json:"date"`
	Slots []Slot    `json:"slots"`
}

// Generator produces candidate booking dates from an injected clock. It is
// pure: same clock, same output.
type Generator struct {
	now func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Dates returns the upcoming candidate dates starting tomorrow, skipping the
// blackout weekday. Every candidate carries the same fixed slot list; slot
// collision with existing bookings is not checked here.
func (g *Generator) Dates() []DateCandidate {
	today := g.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	out := make([]DateCandidate, 0, maxDates)
	for i := 1; i <= scanDays && len(out) < maxDates; i++ {
		d := today.AddDate(0, 0, i)
		if d.Weekday() == blackoutWeekday {
			continue
		}
		out = append(out, DateCandidate{Date: d, Slots: g.Slots()})
	}
	return out
}

// Slots returns the fixed time-of-day slot list.
func (g *Generator) Slots() []Slot {
	out := make([]Slot, len(slotLabels))
	for i, label := range slotLabels {
		out[i] = Slot{Time: label, Available: true}
	}
	return out
}

// HasSlot reports whether label is one of the offered time-of-day slots.
func (g *Generator) HasSlot(label string) bool {
	for _, s := range slotLabels {
		if s == label {
			return true
		}
	}
	return false
}

// HasDate reports whether the calendar day is one of the current candidate
// dates. Comparison is by calendar day, so the caller's timezone does not
// matter.
func (g *Generator) HasDate(d time.Time) bool {
	for _, c := range g.Dates() {
		if c.Date.Year() == d.Year() && c.Date.YearDay() == d.YearDay() {
			return true
		}
	}
	return false
}
