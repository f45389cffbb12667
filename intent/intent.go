package intent

import (
	"strings"

	"sqlintent/catalog"
)

// Match is the result of resolving query text against the catalog.
type Match struct {
	Template catalog.Template
	Rule     []string // the keywords that fired
}

// Resolve selects the first template, in catalog load order, whose every
// keyword appears in the lower-cased query text. First match wins: a
// template whose rule is a subset of a later template's rule shadows it,
// which keeps resolution deterministic and reproducible.
//
// Returns false when nothing matches. Never fails.
func Resolve(queryText string, cat *catalog.Catalog) (*Match, bool) {
	if cat == nil {
		return nil, false
	}

	lower := strings.ToLower(queryText)
	for _, tpl := range cat.Templates() {
		if matchesAll(lower, tpl.Keywords) {
			return &Match{Template: tpl, Rule: tpl.Keywords}, true
		}
	}

	return nil, false
}

func matchesAll(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(lowerText, strings.ToLower(kw)) {
			return false
		}
	}
	return len(keywords) > 0
}
