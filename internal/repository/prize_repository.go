package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/store"
)

// PrizeRepository defines prize catalog persistence operations.
type PrizeRepository interface {
	List(ctx context.Context) ([]model.Prize, error)
	FindByID(ctx context.Context, id string) (*model.Prize, error)
	// Prepend inserts a prize at the front of the catalog (newest-first).
	Prepend(ctx context.Context, prize *model.Prize) error
	// Replace swaps out the stored prize with the same id wholesale.
	Replace(ctx context.Context, prize *model.Prize) error
	// Reset overwrites the catalog with the seed prizes.
	Reset(ctx context.Context) ([]model.Prize, error)
}

type prizeRepository struct {
	gateway store.Gateway
	mu      sync.Mutex
}

// NewPrizeRepository creates a new prize repository.
func NewPrizeRepository(gateway store.Gateway) PrizeRepository {
	return &prizeRepository{gateway: gateway}
}

// load returns the stored catalog. Both a missing blob and a parse failure
// fall back to the seed catalog, which is written back so subsequent loads
// are consistent.
func (r *prizeRepository) load(ctx context.Context) ([]model.Prize, error) {
	blob, ok, err := r.gateway.Load(ctx, store.KeyPrizes)
	if err != nil {
		return nil, fmt.Errorf("load prizes: %w", err)
	}
	if ok {
		var prizes []model.Prize
		if err := json.Unmarshal(blob, &prizes); err == nil {
			return prizes, nil
		}
	}
	seed := model.SeedPrizes()
	if err := r.save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (r *prizeRepository) save(ctx context.Context, prizes []model.Prize) error {
	blob, err := json.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("marshal prizes: %w", err)
	}
	if err := r.gateway.Save(ctx, store.KeyPrizes, blob); err != nil {
		return fmt.Errorf("save prizes: %w", err)
	}
	return nil
}

// List returns the full catalog, newest first.
func (r *prizeRepository) List(ctx context.Context) ([]model.Prize, error) {
	return r.load(ctx)
}

// FindByID finds a prize by id.
func (r *prizeRepository) FindByID(ctx context.Context, id string) (*model.Prize, error) {
	prizes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range prizes {
		if prizes[i].ID == id {
			return &prizes[i], nil
		}
	}
	return nil, apperrors.ErrPrizeNotFound
}

// Prepend inserts a prize at the front of the catalog.
func (r *prizeRepository) Prepend(ctx context.Context, prize *model.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prizes, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append([]model.Prize{*prize}, prizes...))
}

// Replace swaps out the stored prize with the same id.
func (r *prizeRepository) Replace(ctx context.Context, prize *model.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prizes, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range prizes {
		if prizes[i].ID == prize.ID {
			prizes[i] = *prize
			return r.save(ctx, prizes)
		}
	}
	return apperrors.ErrPrizeNotFound
}

// Reset overwrites the catalog with the seed prizes.
func (r *prizeRepository) Reset(ctx context.Context) ([]model.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seed := model.SeedPrizes()
	if err := r.save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}
