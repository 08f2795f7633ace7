package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-store/internal/domain"
)

const identityLocalsKey = "auth_identity"

type contextKey int

const identityKey contextKey = iota

// Identity is the principal resolved from a verified credential.
type Identity struct {
	ID   string
	Role domain.Role
	User *domain.User
	// Token describes the credential the identity was resolved from.
	Token domain.Token
}

// WithIdentity returns a copy of ctx carrying the identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the identity attached by the verifier.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

// IdentityFromCtx retrieves the identity from fiber locals.
func IdentityFromCtx(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(identityLocalsKey).(*Identity)
	return identity, ok && identity != nil
}

func attach(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityLocalsKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
}
