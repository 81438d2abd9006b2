package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tombola/internal/auth"
	"tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/repository"
)

// AccountService handles play-money balance mutations. Every mutation keeps
// three places in agreement: the canonical user record, the returned user
// handle and the persisted session snapshot.
type AccountService interface {
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error)
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

type accountService struct {
	userRepo repository.UserRepository
	sessions auth.SessionStoreInterface
	mu       sync.Mutex // serializes balance read-modify-write cycles
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, sessions auth.SessionStoreInterface) AccountService {
	return &accountService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Debit subtracts amount from the user's balance. The insufficient-balance
// check is re-done here even though callers pre-check it.
func (s *accountService) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error) {
	if amount.IsNegative() {
		return nil, errors.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(user.Balance) {
		return nil, errors.ErrInsufficientBalance
	}

	user.Balance = user.Balance.Sub(amount)
	return s.apply(ctx, user)
}

// Credit adds amount to the user's balance. Used for dashboard top-ups.
func (s *accountService) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*model.User, error) {
	if amount.IsNegative() {
		return nil, errors.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Balance = user.Balance.Add(amount)
	return s.apply(ctx, user)
}

// Balance returns the user's current balance.
func (s *accountService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// apply writes the mutated user to the canonical record and to the session
// snapshot when the user is logged in.
func (s *accountService) apply(ctx context.Context, user *model.User) (*model.User, error) {
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user balance: %w", err)
	}
	if err := s.sessions.Refresh(ctx, user); err != nil {
		return nil, fmt.Errorf("refresh session snapshot: %w", err)
	}
	return user, nil
}
