package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/events"
	"github.com/spec-kit/clothing-store/internal/repository"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
)

// UserService backs the account administration endpoints.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, dispatcher: dispatcher, logger: logger}
}

// List returns accounts, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role *domain.Role, page Page) ([]domain.User, error) {
	page = page.Normalize()
	if role != nil && !role.Valid() {
		return nil, apperrors.NewBadRequest("invalid role " + string(*role))
	}
	return s.users.List(ctx, repository.UserFilter{Role: role, Limit: page.Limit, Offset: page.offset()})
}

// Get loads one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// UserUpdateInput carries the account fields an admin may change. Nil fields
// are left as they are.
type UserUpdateInput struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// Update changes an account's name, email or role. A role change applies to
// the account's existing tokens on their next request.
func (s *UserService) Update(ctx context.Context, actor *auth.Identity, id string, in UserUpdateInput) (*domain.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, apperrors.NewBadRequest("invalid role " + string(*in.Role))
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil && actor != nil && actor.ID == id && *in.Role != user.Role {
		return nil, apperrors.NewBadRequest("Cannot change your own role")
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperrors.NewConflict("Email already registered")
		}
		return nil, notFound(err, "user")
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserUpdated, id, actorOf(actor),
		events.UserPayload{Email: user.Email, Role: user.Role}))
	return user, nil
}

// Delete removes an account. Tokens issued to it stop resolving to an identity.
func (s *UserService) Delete(ctx context.Context, actor *auth.Identity, id string) error {
	if actor != nil && actor.ID == id {
		return apperrors.NewBadRequest("Cannot delete your own account")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserDeleted, id, actorOf(actor),
		events.UserPayload{Email: user.Email, Role: user.Role}))
	return nil
}

func actorOf(identity *auth.Identity) events.Actor {
	if identity == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: identity.ID, Role: identity.Role}
}
