package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"tombola/internal/auth"
	apperrors "tombola/internal/errors"
	"tombola/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockSessionStore) Refresh(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
		checkFields   map[string]bool
		checkUser     func(*testing.T, *model.User)
	}{
		{
			name:     "successful registration",
			userName: "  Alice  ",
			password: "abcd",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "Alice").Return(nil, apperrors.ErrUserNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mSess.On("Put", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Alice", u.Name, "name should be trimmed")
				assert.Equal(t, model.RoleUser, u.Role)
				assert.True(t, u.Balance.Equal(initialBalance))
				assert.NotEmpty(t, u.PasswordHash)
				assert.NotEqual(t, "abcd", u.PasswordHash)
			},
		},
		{
			name:     "admin name grants admin role",
			userName: "Admin",
			password: "secret",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "Admin").Return(nil, apperrors.ErrUserNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mSess.On("Put", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleAdmin, u.Role)
			},
		},
		{
			name:        "name too short",
			userName:    "Al",
			password:    "abcd",
			setupMock:   func(*MockUserRepository, *MockSessionStore) {},
			checkFields: map[string]bool{"name": true},
		},
		{
			name:        "password too short",
			userName:    "Alice",
			password:    "ab",
			setupMock:   func(*MockUserRepository, *MockSessionStore) {},
			checkFields: map[string]bool{"password": true},
		},
		{
			name:        "multibyte name counts characters not bytes",
			userName:    "ñé",
			password:    "abcd",
			setupMock:   func(*MockUserRepository, *MockSessionStore) {},
			checkFields: map[string]bool{"name": true},
		},
		{
			name:        "multibyte password counts characters not bytes",
			userName:    "Alice",
			password:    "ñé",
			setupMock:   func(*MockUserRepository, *MockSessionStore) {},
			checkFields: map[string]bool{"password": true},
		},
		{
			name:     "three multibyte characters meet the name minimum",
			userName: "Åsa",
			password: "abcd",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "Åsa").Return(nil, apperrors.ErrUserNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mSess.On("Put", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, "Åsa", u.Name)
			},
		},
		{
			name:        "both invalid reported together",
			userName:    "Al",
			password:    "ab",
			setupMock:   func(*MockUserRepository, *MockSessionStore) {},
			checkFields: map[string]bool{"name": true, "password": true},
		},
		{
			name:     "name taken case-insensitively",
			userName: "alice",
			password: "abcd",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{ID: "user-1", Name: "Alice"}, nil)
			},
			expectedError: apperrors.ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockRepo, mockSessions)

			svc := NewAuthService(mockRepo, newTestJWTService(), mockSessions)
			user, token, err := svc.Register(context.Background(), tt.userName, tt.password)

			switch {
			case tt.checkFields != nil:
				var fieldErrs apperrors.FieldErrors
				assert.ErrorAs(t, err, &fieldErrs)
				assert.Len(t, fieldErrs, len(tt.checkFields))
				for field := range tt.checkFields {
					assert.Contains(t, fieldErrs, field)
				}
				assert.Nil(t, user)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				if tt.checkUser != nil {
					tt.checkUser(t, user)
				}
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	assert.NoError(t, err)
	stored := &model.User{
		ID:           "user-42",
		Name:         "Alice",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	tests := []struct {
		name          string
		userName      string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			userName: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(stored, nil)
				mSess.On("Put", mock.Anything, stored).Return(nil)
			},
		},
		{
			name:     "unknown user",
			userName: "nobody",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "nobody").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			userName: "Alice",
			password: "wrong",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessionStore) {
				mRepo.On("FindByName", mock.Anything, "Alice").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockRepo, mockSessions)

			svc := NewAuthService(mockRepo, newTestJWTService(), mockSessions)
			user, token, err := svc.Login(context.Background(), tt.userName, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockSessions := new(MockSessionStore)
	mockSessions.On("Clear", mock.Anything, "user-42").Return(nil).Twice()

	svc := NewAuthService(mockRepo, newTestJWTService(), mockSessions)

	assert.NoError(t, svc.Logout(context.Background(), "user-42"))
	assert.NoError(t, svc.Logout(context.Background(), "user-42"))
	mockSessions.AssertExpectations(t)
}
