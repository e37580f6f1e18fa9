package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
)

// DescriptionLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.DescriptionLoader. want maps IDs to the
// descriptions the adapter must return for them.
func DescriptionLoaderContractTest(t *testing.T, loader ports.DescriptionLoader, want map[string]ui.Node) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for id, expected := range want {
			got, err := loader.Load(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", id, err)
			}
			gotHash, err := ui.Hash(got)
			if err != nil {
				t.Fatalf("loaded description %s is not encodable: %v", id, err)
			}
			wantHash, _ := ui.Hash(expected)
			if gotHash != wantHash {
				t.Errorf("description mismatch for %s. got %+v, want %+v", id, got, expected)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-description")
		if err == nil {
			t.Fatal("expected error for non-existent description, got nil")
		}
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected domain.ErrNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing descriptions: %v", err)
		}

		if len(ids) != len(want) {
			t.Errorf("expected %d descriptions, got %d", len(want), len(ids))
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range want {
			if !lookup[id] {
				t.Errorf("description %s missing from list", id)
			}
		}
	})
}
