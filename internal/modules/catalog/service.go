package catalog

import (
	"errors"

	"astroconsult/internal/domain"
)

var ErrOfferingNotFound = errors.New("offering not found")

// The catalog is fixed at build time. Prices are in paise.
var offerings = []domain.Offering{
	{
		ID:          "career",
		Name:        "Career & Business",
		Icon:        "ph:briefcase-fill",
		Description: "Job changes, promotions, business decisions",
		DurationMin: 45,
		Price:       299900,
	},
	{
		ID:          "relationship",
		Name:        "Relationships & Marriage",
		Icon:        "ph:heart-fill",
		Description: "Love life, marriage timing, compatibility",
		DurationMin: 45,
		Price:       299900,
	},
	{
		ID:          "finance",
		Name:        "Finance & Investments",
		Icon:        "ph:currency-inr-fill",
		Description: "Wealth, investments, financial planning",
		DurationMin: 45,
		Price:       299900,
	},
	{
		ID:          "health",
		Name:        "Health & Wellness",
		Icon:        "ph:heartbeat-fill",
		Description: "Health concerns, recovery, wellness guidance",
		DurationMin: 45,
		Price:       299900,
	},
	{
		ID:          "general",
		Name:        "General Life Guidance",
		Icon:        "ph:compass-fill",
		Description: "Overall life direction, yearly predictions",
		DurationMin: 60,
		Price:       299900,
	},
	{
		ID:          "remedies",
		Name:        "Remedies & Solutions",
		Icon:        "ph:sparkle-fill",
		Description: "Gemstones, mantras, rituals for specific issues",
		DurationMin: 30,
		Price:       299900,
	},
}

var plans = []domain.Plan{
	{ID: "report", Name: "Report Generation", Description: "Personalized yearly prediction report", Price: 49900},
	{ID: "consultancy", Name: "Expert Consultancy", Description: "One-on-one session with a renowned expert", Price: 299900, Popular: true},
	{ID: "trading", Name: "Trading Insights", Description: "Market timing windows for active traders", Price: 499900},
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Offerings() []domain.Offering {
	out := make([]domain.Offering, len(offerings))
	copy(out, offerings)
	return out
}

func (s *Service) OfferingByID(id string) (*domain.Offering, error) {
	for i := range offerings {
		if offerings[i].ID == id {
			o := offerings[i]
			return &o, nil
		}
	}
	return nil, ErrOfferingNotFound
}

func (s *Service) Plans() []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	return out
}
