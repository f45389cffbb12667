package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"sqlintent/catalog"
	"sqlintent/models"
)

// Rule binds one parameter from free text. Apply returns the typed value
// and whether the rule fired; it must be pure and must never panic.
type Rule struct {
	Param string
	Apply func(queryText string) (interface{}, bool)
}

// DefaultRules are the baseline deterministic extraction rules, applied in
// order. A richer extractor (for example a language-model-backed one) can be
// swapped in by replacing this table while keeping the Extract contract.
var DefaultRules = []Rule{
	{Param: "date", Apply: extractDate},
	{Param: "year", Apply: extractYear},
	{Param: "limit", Apply: extractLimit},
	{Param: "name", Apply: extractQuoted},
}

// Extract produces the parameter set for a resolved template. A rule only
// binds when the template's SQL actually references the parameter; values
// that cannot be extracted are simply absent, never defaulted.
func Extract(queryText string, tpl catalog.Template) models.Params {
	params := models.Params{}

	referenced := make(map[string]bool)
	for _, name := range tpl.Placeholders() {
		referenced[name] = true
	}

	for _, rule := range DefaultRules {
		if !referenced[rule.Param] {
			continue
		}
		if _, done := params[rule.Param]; done {
			continue
		}
		if v, ok := rule.Apply(queryText); ok {
			params[rule.Param] = v
		}
	}

	return params
}

var (
	yearPattern  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	datePattern  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	limitPattern = regexp.MustCompile(`(?i)\b(?:top|limit|first)\s+(\d+)\b`)
	quotePattern = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

func extractYear(text string) (interface{}, bool) {
	for _, loc := range yearPattern.FindAllStringIndex(text, -1) {
		// Skip year-looking tokens that are part of an ISO date.
		if loc[1] < len(text) && text[loc[1]] == '-' {
			continue
		}
		if loc[0] > 0 && text[loc[0]-1] == '-' {
			continue
		}
		year, err := strconv.Atoi(text[loc[0]:loc[1]])
		if err != nil {
			return nil, false
		}
		return year, true
	}
	return nil, false
}

func extractDate(text string) (interface{}, bool) {
	m := datePattern.FindString(text)
	if m == "" {
		return nil, false
	}
	d, err := time.Parse("2006-01-02", m)
	if err != nil {
		return nil, false
	}
	return d, true
}

func extractLimit(text string) (interface{}, bool) {
	m := limitPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil, false
	}
	return n, true
}

func extractQuoted(text string) (interface{}, bool) {
	m := quotePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return nil, false
	}
	return name, true
}
