// Package handlers implements the connectctl commands. Commands in the
// commands package only bind flags and delegate here.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/janisto/connect-provisioner/internal/config"
	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Service is the provisioning surface used by the commands.
type Service interface {
	Provision(ctx context.Context, req provisioning.Request) (*provisioning.Result, error)
	Catalog(ctx context.Context) (*provisioning.Catalog, error)
}

// NewService builds the provisioning service from the environment. Tests replace it.
var NewService = func(ctx context.Context, opts ...provisioning.Option) (Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client, err := connect.NewClient(ctx, cfg.Session())
	if err != nil {
		return nil, err
	}
	return provisioning.NewService(client, cfg.Instance(), append(cfg.ServiceOptions(), opts...)...), nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(v)
	case FormatJSON, "":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unsupported output format %q: want json or yaml", format)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = w.Write(out)
	return err
}
