package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karthikeyanvk18/Clerro/internal/auth"
	"github.com/karthikeyanvk18/Clerro/internal/core"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

// UserService handles signup, login and profile management.
type UserService struct {
	storage *storage.Repository
	tokens  *auth.Manager
	mailer  *notify.Mailer
}

func NewUserService(storage *storage.Repository, tokens *auth.Manager, mailer *notify.Mailer) *UserService {
	return &UserService{
		storage: storage,
		tokens:  tokens,
		mailer:  mailer,
	}
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Currency string
}

var ErrWeakPassword = fmt.Errorf("password must be at least 8 characters")

// SignUp registers a new user and returns it with a fresh access token.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (core.User, string, error) {
	if len(in.Password) < 8 {
		return core.User{}, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return core.User{}, "", err
	}

	now := time.Now().UTC()
	u := core.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Currency:     in.Currency,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.Currency == "" {
		u.Currency = "INR"
	}
	if err := u.Validate(); err != nil {
		return core.User{}, "", err
	}

	if err := s.storage.CreateUser(ctx, u); err != nil {
		return core.User{}, "", err
	}

	if err := s.storage.SaveSettings(ctx, core.DefaultSettings(u.ID)); err != nil {
		slog.ErrorContext(ctx, "Failed to save default settings", "user_id", u.ID, "error", err)
	}

	// Welcome email is best-effort.
	if err := s.mailer.SendWelcome(u.Email, u.FullName); err != nil {
		slog.ErrorContext(ctx, "Failed to send welcome email", "user_id", u.ID, "error", err)
	}

	token, err := s.tokens.IssueToken(u.ID, u.Email)
	if err != nil {
		return core.User{}, "", err
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID)
	return u, token, nil
}

// Login verifies credentials and returns the user with an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (core.User, string, error) {
	u, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return core.User{}, "", auth.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return core.User{}, "", auth.ErrInvalidCredentials
	}
	if !u.Active {
		return core.User{}, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(u.ID, u.Email)
	if err != nil {
		return core.User{}, "", err
	}

	slog.InfoContext(ctx, "User logged in", "user_id", u.ID)
	return u, token, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (core.User, error) {
	return s.storage.GetUser(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, fullName, phone, currency string) (core.User, error) {
	if err := s.storage.UpdateUserProfile(ctx, userID, fullName, phone, currency); err != nil {
		return core.User{}, err
	}
	return s.storage.GetUser(ctx, userID)
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (core.Settings, error) {
	return s.storage.GetSettings(ctx, userID)
}

func (s *UserService) SaveSettings(ctx context.Context, settings core.Settings) (core.Settings, error) {
	if settings.ReminderDays < 1 || settings.ReminderDays > 31 {
		return core.Settings{}, fmt.Errorf("reminder days out of range: %d", settings.ReminderDays)
	}
	if err := s.storage.SaveSettings(ctx, settings); err != nil {
		return core.Settings{}, err
	}
	return s.storage.GetSettings(ctx, settings.UserID)
}
