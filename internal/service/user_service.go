package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip_logger/internal/model"
	"trip_logger/internal/store"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrSelfDeletion      = errors.New("cannot delete your own account")
	ErrUserNotFound      = errors.New("user not found")
)

// UserService covers the admin user management surface
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	AddUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id, actorID string) error
}

type userService struct {
	store store.Store
}

// NewUserService creates a new UserService
func NewUserService(s store.Store) UserService {
	return &userService{store: s}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

// AddUser creates a user after checking that no existing username matches
// case-insensitively. The check-then-write is not transactional; a concurrent
// create can still slip through, same as the rest of the system's
// read-then-write sequences.
func (s *userService) AddUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, req.Username) {
			return nil, ErrDuplicateUsername
		}
	}

	user := model.User{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return &user, nil
}

// UpdateUser edits a user. A blank password in the request keeps the stored
// password; the username collision check excludes the user being edited.
func (s *userService) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var current *model.User
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			continue
		}
		if strings.EqualFold(users[i].Username, req.Username) {
			return nil, ErrDuplicateUsername
		}
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	updated := model.User{
		ID:       id,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	if strings.TrimSpace(req.Password) == "" {
		updated.Password = current.Password
	}

	if err := s.store.UpdateUser(ctx, id, updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user. Self-deletion is forbidden.
func (s *userService) DeleteUser(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return ErrSelfDeletion
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
