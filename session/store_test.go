package session_test

import (
	"fmt"
	"sync"
	"testing"

	"sqlintent/models"
	"sqlintent/session"
)

func TestRecordThenGet(t *testing.T) {
	store := session.New(0)

	params := models.Params{"year": 2023}
	store.Record("u1", "sales_2023", params)

	ctx, ok := store.Get("u1")
	if !ok {
		t.Fatal("expected a context for u1")
	}
	if ctx.LastTemplate != "sales_2023" {
		t.Errorf("LastTemplate = %q, want sales_2023", ctx.LastTemplate)
	}
	if got := ctx.LastParams["year"]; got != 2023 {
		t.Errorf("LastParams[year] = %v, want 2023", got)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store := session.New(0)

	if _, ok := store.Get("never-written"); ok {
		t.Error("expected no context for an unknown session id")
	}
}

func TestRecordOverwritesFully(t *testing.T) {
	store := session.New(0)

	store.Record("u1", "sales_2023", models.Params{"year": 2023, "limit": 10})
	store.Record("u1", "inventory", models.Params{})

	ctx, ok := store.Get("u1")
	if !ok {
		t.Fatal("expected a context")
	}
	if ctx.LastTemplate != "inventory" {
		t.Errorf("LastTemplate = %q, want inventory", ctx.LastTemplate)
	}
	// Overwrite, never merge: the old params must be gone.
	if len(ctx.LastParams) != 0 {
		t.Errorf("expected empty params after overwrite, got %v", ctx.LastParams)
	}
}

func TestContextsAreIsolatedFromCallerMaps(t *testing.T) {
	store := session.New(0)

	recorded := models.Params{"year": 2023}
	store.Record("u1", "sales_2023", recorded)

	// Mutating the map passed to Record must not reach the store.
	recorded["year"] = 1999
	ctx, ok := store.Get("u1")
	if !ok {
		t.Fatal("expected a context")
	}
	if ctx.LastParams["year"] != 2023 {
		t.Errorf("stored params mutated through caller map: %v", ctx.LastParams)
	}

	// Mutating a returned context must not reach the store either.
	ctx.LastParams["year"] = 1999
	again, _ := store.Get("u1")
	if again.LastParams["year"] != 2023 {
		t.Errorf("stored params mutated through returned context: %v", again.LastParams)
	}
}

func TestConcurrentRecords(t *testing.T) {
	store := session.New(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i%10)
			store.Record(id, "sales_2023", models.Params{"year": 2000 + i})
			store.Get(id)
		}(i)
	}
	wg.Wait()

	if store.Len() != 10 {
		t.Errorf("expected 10 tracked sessions, got %d", store.Len())
	}
	for i := 0; i < 10; i++ {
		ctx, ok := store.Get(fmt.Sprintf("session-%d", i))
		if !ok {
			t.Fatalf("missing session-%d", i)
		}
		// Last-writer-wins: the value must be a complete write from one
		// of the racing goroutines, never a torn mix.
		if ctx.LastTemplate != "sales_2023" {
			t.Errorf("torn write: %+v", ctx)
		}
		if _, ok := ctx.LastParams["year"].(int); !ok {
			t.Errorf("torn params: %+v", ctx.LastParams)
		}
	}
}
