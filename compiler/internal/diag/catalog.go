package diag

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed codes.json
var codesJSON []byte

// CodeEntry is a single diagnostic code definition.
type CodeEntry struct {
	ID    string `json:"id"`    // e.g., "SE0001"
	Title string `json:"title"` // short human title e.g., "name already declared"
	Help  string `json:"help"`  // optional default help text
}

// Registry is the top-level catalog format, one section per compiler stage.
type Registry struct {
	Parser map[string]CodeEntry `json:"parser"`
	Check  map[string]CodeEntry `json:"check"`
}

var (
	regOnce sync.Once
	reg     Registry
	regErr  error
)

func load() error {
	regOnce.Do(func() {
		if len(codesJSON) == 0 {
			regErr = nil // empty catalog is allowed
			return
		}
		regErr = json.Unmarshal(codesJSON, &reg)
	})
	return regErr
}

// Lookup returns a code entry by (domain, key).
// Domain should be one of: "parser", "check".
func Lookup(domain, key string) (CodeEntry, bool) {
	if err := load(); err != nil {
		return CodeEntry{}, false
	}
	var section map[string]CodeEntry
	switch domain {
	case "parser":
		section = reg.Parser
	case "check":
		section = reg.Check
	}
	if section == nil {
		return CodeEntry{}, false
	}
	ce, ok := section[key]
	return ce, ok
}

// MustLookup is a convenience that returns an entry if found; otherwise it
// returns a synthesized placeholder with the provided defaultID and title.
// Use this when you want stable codes even if the JSON is temporarily missing.
func MustLookup(domain, key, defaultID, defaultTitle string) CodeEntry {
	if ce, ok := Lookup(domain, key); ok {
		return ce
	}
	return CodeEntry{ID: defaultID, Title: defaultTitle}
}
