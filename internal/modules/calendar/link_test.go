package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroconsult/internal/domain"
)

func sampleSelection() domain.Selection {
	return domain.Selection{
		Offering: &domain.Offering{
			ID:          "career",
			Name:        "Career & Business Consultation",
			DurationMin: 45,
		},
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		TimeLabel: "02:00 PM",
		Details: domain.ContactDetails{
			Name:      "Asha",
			Email:     "asha@example.com",
			Phone:     "+911234567890",
			Questions: "Should I switch jobs?",
		},
	}
}

func TestBuildLink_EventWindow(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	link := NewBuilder("advisor@example.com", ist).BuildLink(sampleSelection())
	u, err := url.Parse(link)
	require.NoError(t, err)

	// 02:00 PM IST is 08:30 UTC; 45 minutes later is 09:15 UTC.
	assert.Equal(t, "20260914T083000Z/20260914T091500Z", u.Query().Get("dates"))
	assert.Equal(t, "TEMPLATE", u.Query().Get("action"))
	assert.Equal(t, "AstroTech Consultation: Career & Business Consultation", u.Query().Get("text"))
	assert.Equal(t, "asha@example.com,advisor@example.com", u.Query().Get("add"))
}

func TestBuildLink_DetailsBlock(t *testing.T) {
	link := NewBuilder("advisor@example.com", time.UTC).BuildLink(sampleSelection())
	u, err := url.Parse(link)
	require.NoError(t, err)

	details := u.Query().Get("details")
	assert.Contains(t, details, "📌 Consultation Type: Career & Business Consultation")
	assert.Contains(t, details, "👤 Client: Asha")
	// questions sit on their own line under the label, after a blank line
	assert.Contains(t, details, "📱 Phone: +911234567890\n\n❓ Questions/Topics:\nShould I switch jobs?\n\n⏰ Duration: 45 minutes")
	assert.Contains(t, details, "💰 Payment: Completed via Razorpay")
}

func TestBuildLink_DefaultsEmptyQuestions(t *testing.T) {
	sel := sampleSelection()
	sel.Details.Questions = "   "

	link := NewBuilder("advisor@example.com", time.UTC).BuildLink(sel)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("details"), "Questions/Topics:\nGeneral consultation")
}

func TestBuildLink_IncompleteSelection(t *testing.T) {
	b := NewBuilder("advisor@example.com", time.UTC)

	sel := sampleSelection()
	sel.Offering = nil
	assert.Equal(t, "#", b.BuildLink(sel))

	sel = sampleSelection()
	sel.TimeLabel = ""
	assert.Equal(t, "#", b.BuildLink(sel))

	sel = sampleSelection()
	sel.Details.Email = ""
	assert.Equal(t, "#", b.BuildLink(sel))
}

func TestBuildLink_Deterministic(t *testing.T) {
	b := NewBuilder("advisor@example.com", time.UTC)
	first := b.BuildLink(sampleSelection())
	second := b.BuildLink(sampleSelection())
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "https://calendar.google.com/calendar/render?"))
}
