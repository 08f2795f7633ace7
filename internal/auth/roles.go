package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-store/internal/domain"
)

// RoleGate admits identities whose role is in a fixed set.
type RoleGate struct {
	allowed map[domain.Role]struct{}
}

// NewRoleGate builds a gate for the given roles. An empty set admits nobody.
func NewRoleGate(roles ...domain.Role) RoleGate {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return RoleGate{allowed: allowed}
}

// Allows reports whether role is in the gate's set.
func (g RoleGate) Allows(role domain.Role) bool {
	_, ok := g.allowed[role]
	return ok
}

// Check decides whether the already-verified identity may proceed.
func (g RoleGate) Check(identity *Identity) error {
	if identity == nil {
		return newError(KindMissingCredential, nil)
	}
	if !g.Allows(identity.Role) {
		return &Error{Kind: KindRoleNotPermitted, Role: identity.Role}
	}
	return nil
}

// Handler returns the gate as fiber middleware. It must run after Verifier.Handle.
func (g RoleGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromCtx(c)
		if err := g.Check(identity); err != nil {
			return ToHTTPError(err)
		}
		return c.Next()
	}
}

// Authorize is shorthand for NewRoleGate(roles...).Handler().
func Authorize(roles ...domain.Role) fiber.Handler {
	return NewRoleGate(roles...).Handler()
}
