// Package domain holds DTOs for insights http and service contracts
package domain

// TimeRange filters on the ticket creation date, both days inclusive (UTC)
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// SummaryInput asks for a themed summary of one main category's tickets
type SummaryInput struct {
	Range        TimeRange `json:"range"`
	MainCategory string    `json:"main_category" validate:"required,min=1,max=200" example:"Hardware"`
	CompanyTag   string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
	// MaxTickets caps how many descriptions feed the prompt
	MaxTickets int `json:"max_tickets,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// SummaryOutput carries the model's themed summary
type SummaryOutput struct {
	MainCategory string `json:"main_category" example:"Hardware"`
	Tickets      int    `json:"tickets" example:"37"`
	Summary      string `json:"summary"`
	Model        string `json:"model" example:"gpt-4o-mini"`
}
