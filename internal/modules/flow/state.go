package flow

import (
	"time"

	"astroconsult/internal/domain"
)

// Step is the pointer into the booking wizard.
type Step int

const (
	StepChoosingOffering Step = iota + 1
	StepChoosingDate
	StepChoosingTime
	StepEnteringDetails
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepChoosingOffering:
		return "choosing_offering"
	case StepChoosingDate:
		return "choosing_date"
	case StepChoosingTime:
		return "choosing_time"
	case StepEnteringDetails:
		return "entering_details"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

func (s Step) Title() string {
	switch s {
	case StepChoosingOffering:
		return "Choose Type"
	case StepChoosingDate:
		return "Select Date"
	case StepChoosingTime:
		return "Select Time"
	case StepEnteringDetails:
		return "Your Details"
	case StepConfirmed:
		return "Confirmed"
	default:
		return ""
	}
}

// StepView is a sum type over the wizard steps. Each variant carries exactly
// the data that is valid at that step, so callers cannot read fields the
// flow has not committed yet.
type StepView interface {
	Step() Step
}

type ChoosingOffering struct{}

type ChoosingDate struct {
	Offering domain.Offering
}

type ChoosingTime struct {
	Offering domain.Offering
	Date     time.Time
}

type EnteringDetails struct {
	Offering  domain.Offering
	Date      time.Time
	TimeLabel string
	// Details previously entered on this step survive a Back/Next round
	// trip and are replayed here.
	Details domain.ContactDetails
}

type Confirmed struct {
	Selection domain.Selection
}

func (ChoosingOffering) Step() Step { return StepChoosingOffering }
func (ChoosingDate) Step() Step     { return StepChoosingDate }
func (ChoosingTime) Step() Step     { return StepChoosingTime }
func (EnteringDetails) Step() Step  { return StepEnteringDetails }
func (Confirmed) Step() Step        { return StepConfirmed }

// Session is one booking attempt. The selection is filled strictly in step
// order; going Back never clears the values recorded for steps ahead of the
// pointer.
type Session struct {
	ID        string
	UserID    int64
	Step      Step
	Selection domain.Selection
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View projects the session onto the variant for its current step.
func (s *Session) View() StepView {
	switch s.Step {
	case StepChoosingDate:
		return ChoosingDate{Offering: *s.Selection.Offering}
	case StepChoosingTime:
		return ChoosingTime{Offering: *s.Selection.Offering, Date: s.Selection.Date}
	case StepEnteringDetails:
		return EnteringDetails{
			Offering:  *s.Selection.Offering,
			Date:      s.Selection.Date,
			TimeLabel: s.Selection.TimeLabel,
			Details:   s.Selection.Details,
		}
	case StepConfirmed:
		return Confirmed{Selection: s.Selection}
	default:
		return ChoosingOffering{}
	}
}
