package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/service/connect"
)

const (
	// DefaultPageSize is the number of profiles requested per listing call.
	DefaultPageSize int32 = 100
	// MaxPageSize is the largest page Connect accepts for profile listings.
	MaxPageSize int32 = 1000

	auditResourceType = "connect_user"
)

// ErrorMode selects how Provision emits failures.
type ErrorMode int

const (
	// ErrorModeStrict returns failures as a non-nil *Error and a nil Result.
	ErrorModeStrict ErrorMode = iota
	// ErrorModePermissive returns failures inside the Result with a nil error.
	ErrorModePermissive
)

func (m ErrorMode) String() string {
	switch m {
	case ErrorModeStrict:
		return "strict"
	case ErrorModePermissive:
		return "permissive"
	default:
		return fmt.Sprintf("ErrorMode(%d)", int(m))
	}
}

// ParseErrorMode parses "strict" or "permissive" (case-insensitive).
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return ErrorModeStrict, nil
	case "permissive":
		return ErrorModePermissive, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q: want strict or permissive", s)
	}
}

// Observer receives one observation per provisioning attempt. Outcome is
// "success" or the failure Kind.
type Observer interface {
	ObserveProvision(outcome string, elapsed time.Duration)
}

// Service orchestrates validation, profile resolution and user creation.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	client     connect.Service
	instanceID string
	pageSize   int32
	mode       ErrorMode
	observer   Observer
}

// Option configures a Service.
type Option func(*Service)

// WithErrorMode sets the failure emission policy.
func WithErrorMode(mode ErrorMode) Option {
	return func(s *Service) {
		s.mode = mode
	}
}

// WithPageSize sets the listing page size; values outside 1..MaxPageSize are ignored.
func WithPageSize(n int32) Option {
	return func(s *Service) {
		if n > 0 && n <= MaxPageSize {
			s.pageSize = n
		}
	}
}

// WithObserver registers an observer for attempt outcomes.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// NewService creates a provisioning service bound to a Connect instance.
func NewService(client connect.Service, instanceID string, opts ...Option) *Service {
	s := &Service{
		client:     client,
		instanceID: instanceID,
		pageSize:   DefaultPageSize,
		mode:       ErrorModeStrict,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode reports the configured error mode.
func (s *Service) Mode() ErrorMode {
	return s.mode
}

// Provision creates the agent described by req.
//
// In permissive mode every failure is returned as a Result with Error set and
// a nil error. In strict mode failures are returned as a *Error and the
// Result is nil. Validation failures never reach the remote platform.
func (s *Service) Provision(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	data, perr := s.provision(ctx, req)
	if perr != nil {
		s.observe(string(perr.Kind), start)
		applog.LogAuditEvent(ctx, "create", auditResourceType, req.Username, "failure",
			map[string]any{"kind": string(perr.Kind), "error": categorizeError(perr)})
		if perr.Kind == KindValidation {
			applog.LogInfo(ctx, "provisioning request rejected", zap.String("reason", perr.Message))
		} else {
			applog.LogError(ctx, "provisioning failed", perr.Unwrap(),
				zap.String("kind", string(perr.Kind)),
				zap.String("username", req.Username),
			)
		}
		if s.mode == ErrorModeStrict {
			return nil, perr
		}
		return errorResult(perr), nil
	}

	s.observe("success", start)
	applog.LogAuditEvent(ctx, "create", auditResourceType, req.Username, "success",
		map[string]any{"user_id": data.UserID})
	return successResult(data), nil
}

func (s *Service) provision(ctx context.Context, req Request) (*UserData, *Error) {
	if err := Validate(req); err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, validationError(err.Error())
	}

	catalog, err := fetchCatalog(ctx, s.client, s.instanceID, s.pageSize)
	if err != nil {
		return nil, resolutionError(err)
	}

	spec, err := NewUserSpec(req, catalog, s.instanceID)
	if err != nil {
		return nil, resolutionError(err)
	}

	created, err := s.client.CreateUser(ctx, spec.CreateUserParams())
	if err != nil {
		return nil, remoteCreationError(err)
	}

	return &UserData{
		UserID:  created.UserID,
		UserARN: created.UserARN,
		ResponseMetadata: &ResponseMetadata{
			RequestID:      created.RequestID,
			HTTPStatusCode: created.HTTPStatusCode,
		},
	}, nil
}

// Catalog lists the current profile catalog of the instance.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	return fetchCatalog(ctx, s.client, s.instanceID, s.pageSize)
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveProvision(outcome, time.Since(start))
	}
}
