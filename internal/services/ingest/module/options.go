package module

import (
	"strings"
	"time"

	"deskscope/internal/platform/config"
)

// TenantOptions is the per-tenant slice of the ingest config
type TenantOptions struct {
	Name       string
	Project    string
	CompanyTag string

	JiraURL   string
	JiraEmail string
	JiraToken string
}

// Options holds configuration options for the ingest service
type Options struct {
	Tenants []TenantOptions

	// CategoriesPath points at the exported category mapping JSON
	CategoriesPath string

	// MaxIssues caps a single window fetch per tenant; 0 = unlimited
	MaxIssues int

	DryRun bool

	RunTimeout   time.Duration
	FetchTimeout time.Duration
	DBTimeout    time.Duration

	// MirrorEnabled controls the ClickHouse append per run
	MirrorEnabled bool
}

// FromConfig reads the ingest options from config with CORE_INGEST_ prefix.
// Tenants are named in CORE_INGEST_TENANTS and each one gets its own
// CORE_INGEST_TENANT_<NAME>_ block
func FromConfig(cfg config.Conf) Options {
	ing := cfg.Prefix("CORE_INGEST_")

	var tenants []TenantOptions
	for _, name := range ing.MayCSV("TENANTS", nil) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tc := ing.Prefix("TENANT_" + strings.ToUpper(name) + "_")
		tenants = append(tenants, TenantOptions{
			Name:       name,
			Project:    tc.MustString("PROJECT"),
			CompanyTag: tc.MayString("TAG", name),
			JiraURL:    tc.MustString("JIRA_URL"),
			JiraEmail:  tc.MayString("JIRA_EMAIL", ""),
			JiraToken:  tc.MayString("JIRA_TOKEN", ""),
		})
	}

	return Options{
		Tenants:        tenants,
		CategoriesPath: ing.MayString("CATEGORIES_PATH", "assets/categories.json"),
		MaxIssues:      ing.MayInt("MAX_ISSUES", 5000),
		DryRun:         ing.MayBool("DRY_RUN", false),
		RunTimeout:     ing.MayDuration("RUN_TIMEOUT", 0),
		FetchTimeout:   ing.MayDuration("FETCH_TIMEOUT", 10*time.Minute),
		DBTimeout:      ing.MayDuration("DB_TIMEOUT", 2*time.Minute),
		MirrorEnabled:  ing.MayBool("MIRROR", false),
	}
}
