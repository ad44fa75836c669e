package module

import (
	"deskscope/internal/platform/config"
	ticketsvc "deskscope/internal/services/api/tickets/service"
)

// FromConfig reads the tickets read options with CORE_TICKETS_ prefix
func FromConfig(cfg config.Conf) ticketsvc.Config {
	tc := cfg.Prefix("CORE_TICKETS_")
	return ticketsvc.Config{
		DoneCategory: tc.MayString("DONE_CATEGORY", "Done"),
		DefaultLimit: tc.MayInt("DEFAULT_LIMIT", 200),
	}
}
