package provisioning

import (
	"context"

	"github.com/janisto/connect-provisioner/internal/service/connect"
)

// Catalog maps profile names to platform identifiers. It is built fresh for
// every request and never shared.
type Catalog struct {
	Security map[string]string
	Routing  map[string]string
}

// BuildLookup indexes profiles by name. When names repeat, the last listed wins.
func BuildLookup(profiles []connect.ProfileSummary) map[string]string {
	lookup := make(map[string]string, len(profiles))
	for _, p := range profiles {
		lookup[p.Name] = p.ID
	}
	return lookup
}

// ResolveName returns the identifier for name using a case-sensitive exact match.
func ResolveName(kind ProfileKind, lookup map[string]string, name string) (string, error) {
	id, ok := lookup[name]
	if !ok {
		return "", &KeyResolutionError{Profile: kind, Name: name}
	}
	return id, nil
}

// ResolveNames resolves every name, preserving order. Any unknown name fails
// the whole set.
func ResolveNames(kind ProfileKind, lookup map[string]string, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, err := ResolveName(kind, lookup, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchCatalog lists security profiles, then routing profiles.
func fetchCatalog(ctx context.Context, client connect.Service, instanceID string, pageSize int32) (*Catalog, error) {
	security, err := client.ListSecurityProfiles(ctx, instanceID, pageSize)
	if err != nil {
		return nil, &CatalogError{Profile: ProfileKindSecurity, cause: err}
	}
	routing, err := client.ListRoutingProfiles(ctx, instanceID, pageSize)
	if err != nil {
		return nil, &CatalogError{Profile: ProfileKindRouting, cause: err}
	}
	return &Catalog{
		Security: BuildLookup(security),
		Routing:  BuildLookup(routing),
	}, nil
}
