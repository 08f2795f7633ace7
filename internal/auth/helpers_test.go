package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clothing-store/internal/domain"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
)

const testSecret = "test-secret-key-for-jwt-signing-0001"

type fakeStore struct {
	users map[string]*domain.User
	err   error
	delay time.Duration
	calls atomic.Int32
}

func newFakeStore(users ...*domain.User) *fakeStore {
	s := &fakeStore{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

func sampleUser(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Name: "Test " + id, Email: id + "@example.com", Role: role}
}

func issueToken(t *testing.T, tm *TokenManager, user *domain.User) string {
	t.Helper()
	token, _, err := tm.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// signClaims signs arbitrary claims, for expired or foreign tokens.
func signClaims(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T, userID string) string {
	return signClaims(t, testSecret, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
}

// newTestApp renders errors the same way the API error middleware does.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
			}
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "error": de.Message})
		},
	})
}
