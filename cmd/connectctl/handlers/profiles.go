package handlers

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
)

type profileList struct {
	SecurityProfiles []string `json:"securityProfiles"`
	RoutingProfiles  []string `json:"routingProfiles"`
}

// Profiles prints the profile names of the configured instance. Format
// "table" prints one row per profile.
func Profiles(ctx context.Context, format string, out io.Writer) error {
	svc, err := NewService(ctx)
	if err != nil {
		return err
	}
	catalog, err := svc.Catalog(ctx)
	if err != nil {
		return err
	}

	if format != "table" {
		return writeOutput(out, format, profileList{
			SecurityProfiles: sortedKeys(catalog.Security),
			RoutingProfiles:  sortedKeys(catalog.Routing),
		})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNAME\tID")
	for _, name := range sortedKeys(catalog.Security) {
		fmt.Fprintf(tw, "security\t%s\t%s\n", name, catalog.Security[name])
	}
	for _, name := range sortedKeys(catalog.Routing) {
		fmt.Fprintf(tw, "routing\t%s\t%s\n", name, catalog.Routing[name])
	}
	return tw.Flush()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
