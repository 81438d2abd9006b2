package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	apperrors "tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/store"
)

// UserRepository defines user persistence operations over the blob gateway.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type userRepository struct {
	gateway store.Gateway
	mu      sync.Mutex // serializes read-modify-write cycles on the blob
}

// NewUserRepository creates a new user repository.
func NewUserRepository(gateway store.Gateway) UserRepository {
	return &userRepository{gateway: gateway}
}

// userRecord is the stored shape of a user. model.User hides the password
// hash from JSON, but the blob must keep it or logins break after a reload.
type userRecord struct {
	model.User
	PasswordHash string `json:"password_hash"`
}

// load returns the stored user set. A missing or unparseable blob reads as
// an empty set so a corrupt store never prevents startup.
func (r *userRepository) load(ctx context.Context) ([]model.User, error) {
	blob, ok, err := r.gateway.Load(ctx, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var records []userRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, nil
	}
	users := make([]model.User, len(records))
	for i, rec := range records {
		users[i] = rec.User
		users[i].PasswordHash = rec.PasswordHash
	}
	return users, nil
}

func (r *userRepository) save(ctx context.Context, users []model.User) error {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = userRecord{User: u, PasswordHash: u.PasswordHash}
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := r.gateway.Save(ctx, store.KeyUsers, blob); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// List returns all registered users.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.load(ctx)
}

// FindByID finds a user by id.
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// FindByName finds a user by case-insensitive name match.
func (r *userRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Name, name) {
			return &users[i], nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// Create appends a new user to the set.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(users, *user))
}

// Update replaces the stored user with the same id.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.save(ctx, users)
		}
	}
	return apperrors.ErrUserNotFound
}
