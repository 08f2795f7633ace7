package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/clothing-store/internal/domain"
)

// FailureKind distinguishes why a request was rejected. Kinds are for
// logs and metrics only; responses collapse all stage-one kinds.
type FailureKind int

const (
	KindMissingCredential FailureKind = iota + 1
	KindInvalidCredential
	KindIdentityNotFound
	KindLookupTimeout
	KindLookupFailed
	KindRoleNotPermitted
)

func (k FailureKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindIdentityNotFound:
		return "identity_not_found"
	case KindLookupTimeout:
		return "lookup_timeout"
	case KindLookupFailed:
		return "lookup_failed"
	case KindRoleNotPermitted:
		return "role_not_permitted"
	default:
		return "unknown"
	}
}

// Sentinels matched with errors.Is against an *Error of the same kind.
var (
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrIdentityNotFound  = &Error{Kind: KindIdentityNotFound}
	ErrLookupTimeout     = &Error{Kind: KindLookupTimeout}
	ErrLookupFailed      = &Error{Kind: KindLookupFailed}
	ErrRoleNotPermitted  = &Error{Kind: KindRoleNotPermitted}
)

const unauthorizedMessage = "Not authorized to access this route"

// Error is a terminal authentication or authorization failure.
type Error struct {
	Kind FailureKind
	// Role is the caller's role, set for KindRoleNotPermitted.
	Role domain.Role
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return "auth: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// HTTPStatus is 403 for role failures and 401 for everything else.
func (e *Error) HTTPStatus() int {
	if e.Kind == KindRoleNotPermitted {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// PublicMessage is the text safe to return to the caller.
func (e *Error) PublicMessage() string {
	if e.Kind == KindRoleNotPermitted {
		return fmt.Sprintf("User role %s is not authorized to access this route", e.Role)
	}
	return unauthorizedMessage
}

func newError(kind FailureKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the failure kind from err, or 0 when err is not an auth error.
func KindOf(err error) FailureKind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return 0
}
