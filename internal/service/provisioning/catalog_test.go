package provisioning

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/janisto/connect-provisioner/internal/service/connect"
)

func TestBuildLookup(t *testing.T) {
	lookup := BuildLookup([]connect.ProfileSummary{
		{ID: "sp-1", Name: "Agent"},
		{ID: "sp-2", Name: "Admin"},
		{ID: "sp-3", Name: "Agent"},
	})

	if len(lookup) != 2 {
		t.Fatalf("expected 2 names, got %d", len(lookup))
	}
	if lookup["Agent"] != "sp-3" {
		t.Errorf("expected last listed Agent to win, got %s", lookup["Agent"])
	}
	if lookup["Admin"] != "sp-2" {
		t.Errorf("expected Admin=sp-2, got %s", lookup["Admin"])
	}
}

func TestResolveNamePreservesOrder(t *testing.T) {
	lookup := map[string]string{"Agent": "sp-1", "Admin": "sp-2", "QA": "sp-3"}

	ids, err := ResolveNames(ProfileKindSecurity, lookup, []string{"QA", "Agent", "Admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids, []string{"sp-3", "sp-1", "sp-2"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestResolveNameIsCaseSensitive(t *testing.T) {
	_, err := ResolveName(ProfileKindRouting, map[string]string{"Basic": "rp-1"}, "basic")

	var keyErr *KeyResolutionError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected KeyResolutionError, got %v", err)
	}
	if keyErr.Name != "basic" || keyErr.Profile != ProfileKindRouting {
		t.Fatalf("unexpected error details: %+v", keyErr)
	}
	if keyErr.Error() != "Unknown routing profile: basic" {
		t.Fatalf("unexpected message: %q", keyErr.Error())
	}
}

func TestResolveNamesFailsWhole(t *testing.T) {
	ids, err := ResolveNames(ProfileKindSecurity, map[string]string{"Agent": "sp-1"}, []string{"Agent", "Ghost"})
	if err == nil {
		t.Fatal("expected error for unknown name")
	}
	if ids != nil {
		t.Fatalf("expected no partial result, got %v", ids)
	}
}

func TestFetchCatalogListingOrderAndErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	mock := connect.NewMockConnectService(nil, nil)
	mock.ListSecurityErr = boom
	_, err := fetchCatalog(ctx, mock, "inst-1", 10)

	var catErr *CatalogError
	if !errors.As(err, &catErr) || catErr.Profile != ProfileKindSecurity {
		t.Fatalf("expected security CatalogError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	if mock.ListRoutingCalls != 0 {
		t.Fatalf("expected routing listing to be skipped after failure, got %d calls", mock.ListRoutingCalls)
	}

	mock = connect.NewMockConnectService(nil, nil)
	mock.ListRoutingErr = boom
	_, err = fetchCatalog(ctx, mock, "inst-1", 10)
	if !errors.As(err, &catErr) || catErr.Profile != ProfileKindRouting {
		t.Fatalf("expected routing CatalogError, got %v", err)
	}
	if err.Error() != "Failed to list routing profiles: boom" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
