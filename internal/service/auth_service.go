package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"tombola/internal/auth"
	"tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/repository"
)

const bcryptCost = 10

// Registration rules and the welcome balance every new user starts with.
const (
	minNameLength     = 3
	minPasswordLength = 4
)

var initialBalance = decimal.NewFromInt(1000)

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, password string) (user *model.User, token string, err error)
	Login(ctx context.Context, name, password string) (user *model.User, token string, err error)
	Logout(ctx context.Context, userID string) error
	// RestoreSession returns the persisted session snapshot, or nil when
	// there is none. Never fails on missing or corrupt snapshots.
	RestoreSession(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Register creates a new user and establishes a session. Validation
// failures are reported per field, all at once.
func (s *authService) Register(ctx context.Context, name, password string) (*model.User, string, error) {
	trimmed := strings.TrimSpace(name)

	// Length rules count characters, not bytes, so multibyte names are not
	// waved through.
	fieldErrs := errors.FieldErrors{}
	if utf8.RuneCountInString(trimmed) < minNameLength {
		fieldErrs["name"] = fmt.Sprintf("Username must be at least %d characters long.", minNameLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		fieldErrs["password"] = fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength)
	}
	if len(fieldErrs) > 0 {
		return nil, "", fieldErrs
	}

	if existing, err := s.userRepo.FindByName(ctx, trimmed); err == nil && existing != nil {
		return nil, "", errors.ErrNameTaken
	} else if err != nil && err != errors.ErrUserNotFound {
		return nil, "", fmt.Errorf("check name availability: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	// The "admin" name grants the admin role at registration time. The role
	// field is what gates admin operations from here on.
	role := model.RoleUser
	if strings.EqualFold(trimmed, model.RoleAdmin) {
		role = model.RoleAdmin
	}

	now := time.Now()
	user := &model.User{
		ID:           "user-" + uuid.New().String(),
		Name:         trimmed,
		PasswordHash: string(hash),
		Role:         role,
		Balance:      initialBalance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	return s.establishSession(ctx, user)
}

// Login authenticates a user by case-insensitive name and password. Both a
// missing user and a wrong password surface as the same generic error.
func (s *authService) Login(ctx context.Context, name, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	return s.establishSession(ctx, user)
}

// Logout clears the session snapshot; logging out twice is harmless.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.sessions.Clear(ctx, userID)
}

// RestoreSession returns the persisted session snapshot if any.
func (s *authService) RestoreSession(ctx context.Context, userID string) (*model.User, error) {
	return s.sessions.Get(ctx, userID)
}

func (s *authService) establishSession(ctx context.Context, user *model.User) (*model.User, string, error) {
	if err := s.sessions.Put(ctx, user); err != nil {
		return nil, "", fmt.Errorf("store session snapshot: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}
