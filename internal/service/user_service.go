package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"johar-connect/internal/domain"
	"johar-connect/internal/repository"
)

// UserService coordina registro y autenticación de usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	now    func() time.Time
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		logger: logger,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInactiveUser       = errors.New("inactive user")
)

const minPasswordLength = 6

// DemoPassword es la contraseña de las cuentas de demostración.
const DemoPassword = "password123"

// DemoUsers son las cuentas sembradas al arrancar el backend de desarrollo.
var DemoUsers = []domain.User{
	{ID: "user_1", Email: "tourist@example.com", Name: "Demo Tourist", Role: domain.RoleTourist, WalletAddress: "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b"},
	{ID: "user_2", Email: "guide@example.com", Name: "Raj Kumar - Certified Guide", Role: domain.RoleGuide, WalletAddress: "0x2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c"},
	{ID: "user_3", Email: "vendor@example.com", Name: "Tribal Artisans Collective", Role: domain.RoleVendor, WalletAddress: "0x3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d"},
	{ID: "user_4", Email: "official@example.com", Name: "Tourism Department Official", Role: domain.RoleOfficial, WalletAddress: "0x4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e"},
}

// SeedDemoUsers crea las cuentas de demostración que aún no existan.
func (s *UserService) SeedDemoUsers(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, u := range DemoUsers {
		u.PasswordHash = string(hash)
		u.IsActive = true
		u.CreatedAt = created
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	s.logger.Info("demo users ready", zap.Int("count", len(DemoUsers)))
	return nil
}

// Register crea un usuario nuevo; el rol por defecto es tourist.
func (s *UserService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return domain.User{}, ErrInvalidEmail
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleTourist
	}
	if !role.Valid() || role == domain.RoleAdmin {
		return domain.User{}, fmt.Errorf("%w: role %q not allowed", ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:            "user_" + uuid.NewString(),
		Email:         email,
		Name:          name,
		Role:          role,
		WalletAddress: strings.TrimSpace(input.WalletAddress),
		IsActive:      true,
		PasswordHash:  string(hash),
		CreatedAt:     s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	email := normalizeEmail(emailAddr)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.User{}, ErrInactiveUser
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
