package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/events"
	"github.com/spec-kit/clothing-store/internal/repository"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
)

const invalidCredentialsMessage = "Invalid credentials"

// TokenRevoker invalidates an issued token until its expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users       repository.UserRepository
	revocations TokenRevoker
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations TokenRevoker
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// RegisterInput describes a self-service sign up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is a signed-in account and its freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
	Claim domain.Token
}

// NewAuthService builds the service.
func NewAuthService(tokens *auth.TokenManager, bcryptCost int, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		tokenMgr:    tokens,
		bcryptCost:  bcryptCost,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Register creates a new account. Role defaults to user; admin accounts
// cannot be self-assigned.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewBadRequest("invalid role " + string(role))
	}
	if role == domain.RoleAdmin {
		return nil, apperrors.NewBadRequest("Cannot register with role admin")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperrors.NewConflict("Email already registered")
		}
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID,
		events.Actor{UserID: user.ID, Role: user.Role},
		events.UserPayload{Email: user.Email, Role: user.Role}))
	return result, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentialsMessage)
	}
	return s.issue(user)
}

// Logout revokes the token the identity was verified with.
func (s *AuthService) Logout(ctx context.Context, identity *auth.Identity) error {
	if identity == nil || s.revocations == nil || identity.Token.ID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, identity.Token.ID, identity.Token.ExpiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Me reloads the caller's account.
func (s *AuthService) Me(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("Not authorized to access this route")
	}
	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, claim, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, Claim: claim}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
