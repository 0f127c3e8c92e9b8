package domain

// Offering is a purchasable consultation topic. The list is fixed at build
// time; prices are stored in paise.
type Offering struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min"`
	Price       int64  `json:"price"`
}

// Plan is a top-level purchase option shown on the pricing page.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Popular     bool   `json:"popular"`
}
