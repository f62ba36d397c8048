package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"trip_logger/internal/model"
	"trip_logger/internal/store"
	"trip_logger/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Default account created by the seeder when no head driver exists yet
const (
	defaultAdminName     = "Admin"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "password123"
)

// AuthService handles login and first-run seeding
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	EnsureAdminExists(ctx context.Context) error
}

type authService struct {
	store   store.Store
	jwtUtil *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(s store.Store, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{store: s, jwtUtil: jwtUtil}
}

// Login matches the username case-insensitively and compares the stored
// password verbatim. Credentials are opaque strings in this system; they are
// deliberately not hashed (see DESIGN.md).
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load users: %w", err)
	}

	for _, u := range users {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			token, err := s.jwtUtil.GenerateToken(u.ID, u.Name, u.Role)
			if err != nil {
				return nil, "", fmt.Errorf("failed to generate token: %w", err)
			}
			return &u, token, nil
		}
	}

	return nil, "", ErrInvalidCredentials
}

// EnsureAdminExists seeds the default head-driver account on first run so the
// system is reachable. Runs once per process start, before the HTTP surface
// comes up. Two processes racing a first run against the same remote backend
// may both seed; that risk is accepted.
func (s *authService) EnsureAdminExists(ctx context.Context) error {
	exists, err := s.store.UserExistsWithRole(ctx, model.RoleHeadDriver)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	admin := model.User{
		Name:     defaultAdminName,
		Username: defaultAdminUsername,
		Password: defaultAdminPassword,
		Role:     model.RoleHeadDriver,
	}
	id, err := s.store.CreateUser(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	logrus.WithField("user_id", id).Info("Default admin account created")
	return nil
}
