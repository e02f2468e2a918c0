package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// CreateOptions configures the create command.
type CreateOptions struct {
	File           string
	UniqueUsername bool
	ErrorMode      string
	Format         string
	Stdin          io.Reader
	Out            io.Writer
	Now            func() time.Time
}

// Create provisions the agent described by a JSON or YAML event file.
func Create(ctx context.Context, opts CreateOptions) error {
	data, err := readInput(opts.File, opts.Stdin)
	if err != nil {
		return fmt.Errorf("read event: %w", err)
	}

	var req provisioning.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode event %s: %w", opts.File, err)
	}
	if opts.UniqueUsername {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		req.Username = fmt.Sprintf("Tester-%d", now().Unix())
		applog.LogInfo(ctx, "using generated username", zap.String("username", req.Username))
	}

	var svcOpts []provisioning.Option
	if opts.ErrorMode != "" {
		mode, err := provisioning.ParseErrorMode(opts.ErrorMode)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, provisioning.WithErrorMode(mode))
	}

	svc, err := NewService(ctx, svcOpts...)
	if err != nil {
		return err
	}

	res, err := svc.Provision(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(opts.Out, opts.Format, res)
}
