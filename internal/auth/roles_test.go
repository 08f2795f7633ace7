package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/clothing-store/internal/domain"
)

func TestRoleGate_Check(t *testing.T) {
	gate := NewRoleGate(domain.RoleSeller, domain.RoleAdmin)

	assert.NoError(t, gate.Check(&Identity{ID: "s", Role: domain.RoleSeller}))
	assert.NoError(t, gate.Check(&Identity{ID: "a", Role: domain.RoleAdmin}))

	err := gate.Check(&Identity{ID: "u", Role: domain.RoleUser})
	assert.True(t, errors.Is(err, ErrRoleNotPermitted), "got %v", err)

	var authErr *Error
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusForbidden, authErr.HTTPStatus())
	assert.Equal(t, "User role user is not authorized to access this route", authErr.PublicMessage())
}

func TestRoleGate_NoHierarchy(t *testing.T) {
	gate := NewRoleGate(domain.RoleSeller)

	assert.True(t, errors.Is(gate.Check(&Identity{Role: domain.RoleAdmin}), ErrRoleNotPermitted))
}

func TestRoleGate_EmptySetAdmitsNobody(t *testing.T) {
	gate := NewRoleGate()

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleSeller, domain.RoleAdmin} {
		assert.Error(t, gate.Check(&Identity{Role: role}))
	}
}

func TestRoleGate_WithoutIdentity(t *testing.T) {
	err := NewRoleGate(domain.RoleAdmin).Check(nil)

	assert.True(t, errors.Is(err, ErrMissingCredential), "got %v", err)
}

func TestAuthorize_Handler(t *testing.T) {
	admin := sampleUser("a-1", domain.RoleAdmin)
	user := sampleUser("u-1", domain.RoleUser)
	v, tm := newTestVerifier(newFakeStore(admin, user), VerifierOptions{})

	app := newTestApp()
	ok := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) }
	app.Get("/protected", v.Handle, Authorize(domain.RoleSeller, domain.RoleAdmin), ok)

	status, _, _ := doRequest(t, app, "Bearer "+issueToken(t, tm, admin), "")
	assert.Equal(t, http.StatusOK, status)

	status, body, _ := doRequest(t, app, "Bearer "+issueToken(t, tm, user), "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "user")
	assert.Equal(t, "User role user is not authorized to access this route", body.Error)
}

func TestAuthorize_AdminOnlyRoute(t *testing.T) {
	admin := sampleUser("a-1", domain.RoleAdmin)
	v := NewVerifier(NewTokenManager(testSecret, time.Hour), newFakeStore(admin), VerifierOptions{})
	tm := NewTokenManager(testSecret, time.Hour)

	app := newTestApp()
	app.Get("/protected", v.Handle, Authorize(domain.RoleAdmin), func(c *fiber.Ctx) error {
		identity, _ := IdentityFromCtx(c)
		return c.JSON(fiber.Map{"success": true, "role": identity.Role})
	})

	status, _, raw := doRequest(t, app, "Bearer "+issueToken(t, tm, admin), "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"role":"admin"}`, raw)
}

func TestAuthorize_WithoutVerifierRejects(t *testing.T) {
	app := newTestApp()
	app.Get("/protected", Authorize(domain.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	status, body, _ := doRequest(t, app, "", "")

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authorized to access this route", body.Error)
}
