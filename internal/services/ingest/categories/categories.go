// Package categories resolves insight category object ids to display names
package categories

import (
	"encoding/json"
	"os"

	perr "deskscope/internal/platform/errors"
)

// Resolver is a read-only id to name map loaded once at startup
type Resolver struct {
	main map[string]string
	sub  map[string]string
}

// mapping is the on-disk JSON shape
type mapping struct {
	Main map[string]string `json:"main"`
	Sub  map[string]string `json:"sub"`
}

// Load reads the category mapping file. The file is an operator-maintained
// asset exported from the Jira insight schema, not something we fetch live
func Load(path string) (*Resolver, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read category mapping %s", path)
	}
	var m mapping
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "parse category mapping %s", path)
	}
	return New(m.Main, m.Sub), nil
}

// New builds a Resolver from in-memory maps; nil maps are fine
func New(main, sub map[string]string) *Resolver {
	if main == nil {
		main = map[string]string{}
	}
	if sub == nil {
		sub = map[string]string{}
	}
	return &Resolver{main: main, sub: sub}
}

// MainName resolves a main category id; ok is false for unknown or empty ids
func (r *Resolver) MainName(id string) (string, bool) {
	name, ok := r.main[id]
	return name, ok
}

// SubName resolves a sub category id. Unknown ids return the literal "NA",
// which is what the reporting side renders for unclassified tickets
func (r *Resolver) SubName(id string) string {
	if name, ok := r.sub[id]; ok {
		return name
	}
	return "NA"
}
