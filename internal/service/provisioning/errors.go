package provisioning

import (
	"errors"
	"fmt"

	"github.com/janisto/connect-provisioner/internal/service/connect"
)

// Kind classifies where provisioning failed.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindResolution     Kind = "resolution"
	KindRemoteCreation Kind = "remote_creation"
)

// Error is the single failure type returned by Provision. Message is the
// text surfaced to callers under "error".
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func resolutionError(cause error) *Error {
	return &Error{Kind: KindResolution, Message: cause.Error(), cause: cause}
}

func remoteCreationError(cause error) *Error {
	return &Error{Kind: KindRemoteCreation, Message: cause.Error(), cause: cause}
}

// KindOf reports the provisioning kind of err, if it is a provisioning error.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// ProfileKind names a profile catalog.
type ProfileKind string

const (
	ProfileKindSecurity ProfileKind = "security"
	ProfileKindRouting  ProfileKind = "routing"
)

// KeyResolutionError reports a profile name missing from the catalog.
type KeyResolutionError struct {
	Profile ProfileKind
	Name    string
}

func (e *KeyResolutionError) Error() string {
	return fmt.Sprintf("Unknown %s profile: %s", e.Profile, e.Name)
}

// CatalogError reports a failure to list a profile catalog.
type CatalogError struct {
	Profile ProfileKind
	cause   error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("Failed to list %s profiles: %v", e.Profile, e.cause)
}

func (e *CatalogError) Unwrap() error {
	return e.cause
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	var keyErr *KeyResolutionError
	var catErr *CatalogError
	switch {
	case errors.As(err, &keyErr):
		return "unknown_profile"
	case errors.As(err, &catErr):
		return "catalog_unavailable"
	case errors.Is(err, connect.ErrDuplicateUser):
		return "duplicate_user"
	case errors.Is(err, connect.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, connect.ErrForbidden):
		return "forbidden"
	case errors.Is(err, connect.ErrThrottled):
		return "throttled"
	}
	if kind, ok := KindOf(err); ok && kind == KindValidation {
		return "invalid_input"
	}
	return "internal_error"
}
