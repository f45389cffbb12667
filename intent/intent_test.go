package intent_test

import (
	"testing"

	"sqlintent/catalog"
	"sqlintent/intent"
)

func mustCatalog(t *testing.T, templates ...catalog.Template) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(templates)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func TestResolveMatchesAllKeywords(t *testing.T) {
	cat := mustCatalog(t, catalog.Template{
		Name:     "sales_2023",
		SQL:      "SELECT * FROM SALES WHERE YEAR = :year",
		Keywords: []string{"sales", "2023"},
	})

	match, ok := intent.Resolve("show me sales from 2023", cat)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Template.Name != "sales_2023" {
		t.Errorf("resolved %q, want sales_2023", match.Template.Name)
	}
	if len(match.Rule) != 2 {
		t.Errorf("expected the full rule to be reported, got %v", match.Rule)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	cat := mustCatalog(t, catalog.Template{
		Name: "sales", SQL: "SELECT 1", Keywords: []string{"Sales", "REPORT"},
	})

	if _, ok := intent.Resolve("SALES report please", cat); !ok {
		t.Error("expected case-insensitive match")
	}
}

func TestResolveNoMatchNeverFails(t *testing.T) {
	cat := mustCatalog(t, catalog.Template{
		Name: "sales_2023", SQL: "SELECT 1", Keywords: []string{"sales", "2023"},
	})

	queries := []string{
		"show me inventory",
		"",
		"sales", // only one of the two keywords
		"!!!???",
	}
	for _, q := range queries {
		if _, ok := intent.Resolve(q, cat); ok {
			t.Errorf("query %q should not resolve", q)
		}
	}

	if _, ok := intent.Resolve("anything", nil); ok {
		t.Error("nil catalog should not resolve")
	}
}

// Overlapping rules resolve to whichever template was loaded first, so a
// broader rule loaded earlier shadows a narrower one. This is deliberate
// first-match semantics, not best-match.
func TestResolveFirstMatchWinsInLoadOrder(t *testing.T) {
	broadFirst := mustCatalog(t,
		catalog.Template{Name: "all_sales", SQL: "SELECT 1", Keywords: []string{"sales"}},
		catalog.Template{Name: "sales_2023", SQL: "SELECT 1", Keywords: []string{"sales", "2023"}},
	)
	match, ok := intent.Resolve("show me sales from 2023", broadFirst)
	if !ok || match.Template.Name != "all_sales" {
		t.Errorf("broad rule loaded first should win, got %v", match)
	}

	narrowFirst := mustCatalog(t,
		catalog.Template{Name: "sales_2023", SQL: "SELECT 1", Keywords: []string{"sales", "2023"}},
		catalog.Template{Name: "all_sales", SQL: "SELECT 1", Keywords: []string{"sales"}},
	)
	match, ok = intent.Resolve("show me sales from 2023", narrowFirst)
	if !ok || match.Template.Name != "sales_2023" {
		t.Errorf("narrow rule loaded first should win, got %v", match)
	}
}
