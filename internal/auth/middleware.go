package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/domain"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
)

const (
	DefaultCookieName    = "token"
	defaultLookupTimeout = 3 * time.Second
)

// IdentityStore resolves identity ids to stored accounts. Implementations
// return domain.ErrNotFound when the account does not exist.
type IdentityStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RevocationList reports tokens invalidated before their expiry.
type RevocationList interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// VerifierOptions configures a Verifier. Zero values select defaults.
type VerifierOptions struct {
	CookieName    string
	LookupTimeout time.Duration
	Revocations   RevocationList
	Logger        *zap.Logger
}

// Verifier authenticates requests and attaches the resolved identity.
type Verifier struct {
	tokens        *TokenManager
	store         IdentityStore
	revocations   RevocationList
	cookieName    string
	lookupTimeout time.Duration
	logger        *zap.Logger
}

// NewVerifier constructs the token verifier.
func NewVerifier(tokens *TokenManager, store IdentityStore, opts VerifierOptions) *Verifier {
	v := &Verifier{
		tokens:        tokens,
		store:         store,
		revocations:   opts.Revocations,
		cookieName:    opts.CookieName,
		lookupTimeout: opts.LookupTimeout,
		logger:        opts.Logger,
	}
	if v.cookieName == "" {
		v.cookieName = DefaultCookieName
	}
	if v.lookupTimeout <= 0 {
		v.lookupTimeout = defaultLookupTimeout
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	return v
}

// CookieName is the cookie the verifier reads tokens from.
func (v *Verifier) CookieName() string {
	return v.cookieName
}

// Verify runs extraction, token validation and identity lookup, in that order.
func (v *Verifier) Verify(ctx context.Context, cred Credential) (*Identity, error) {
	tokenStr, err := ExtractToken(cred)
	if err != nil {
		return nil, err
	}

	claims, err := v.tokens.ParseToken(tokenStr)
	if err != nil {
		return nil, newError(KindInvalidCredential, err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, v.lookupTimeout)
	defer cancel()

	if v.revocations != nil && claims.ID != "" {
		revoked, err := v.revocations.IsRevoked(lookupCtx, claims.ID)
		if err != nil {
			return nil, lookupError(err)
		}
		if revoked {
			return nil, newError(KindInvalidCredential, errors.New("token revoked"))
		}
	}

	user, err := v.store.GetByID(lookupCtx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, newError(KindIdentityNotFound, err)
		}
		return nil, lookupError(err)
	}
	if user == nil {
		return nil, newError(KindIdentityNotFound, nil)
	}

	token := claims.Token()
	token.Role = user.Role
	return &Identity{ID: user.ID, Role: user.Role, User: user, Token: token}, nil
}

// Handle enforces authentication for protected routes.
func (v *Verifier) Handle(c *fiber.Ctx) error {
	identity, err := v.Verify(c.UserContext(), Credential{
		Header: c.Get(fiber.HeaderAuthorization),
		Cookie: c.Cookies(v.cookieName),
	})
	if err != nil {
		v.logger.Debug("request not authenticated",
			zap.String("kind", KindOf(err).String()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return ToHTTPError(err)
	}

	attach(c, identity)
	return c.Next()
}

func lookupError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindLookupTimeout, err)
	}
	return newError(KindLookupFailed, err)
}

// ToHTTPError converts an auth failure to the response error, keeping the
// failure as the cause for diagnostics.
func ToHTTPError(err error) error {
	var authErr *Error
	if !errors.As(err, &authErr) {
		return err
	}
	code := "UNAUTHORIZED"
	if authErr.Kind == KindRoleNotPermitted {
		code = "FORBIDDEN"
	}
	return apperrors.NewDomainError(code, authErr.PublicMessage(), authErr.HTTPStatus(), nil).WithCause(authErr)
}
