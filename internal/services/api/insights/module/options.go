package module

import (
	"deskscope/internal/platform/config"
)

// Options holds insights configuration
type Options struct {
	APIKey     string
	Model      string
	MaxTickets int
}

// FromConfig reads the insights options with CORE_INSIGHTS_ prefix
func FromConfig(cfg config.Conf) Options {
	ic := cfg.Prefix("CORE_INSIGHTS_")
	return Options{
		APIKey:     ic.MayString("API_KEY", ""),
		Model:      ic.MayString("MODEL", ""),
		MaxTickets: ic.MayInt("MAX_TICKETS", 50),
	}
}
