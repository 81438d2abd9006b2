package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tombola/internal/model"
	"tombola/internal/store"
)

// TicketRepository defines ticket persistence operations. Tickets are
// append-only; issued tickets are never modified or deleted.
type TicketRepository interface {
	List(ctx context.Context) ([]model.Ticket, error)
	ListByPrize(ctx context.Context, prizeID string) ([]model.Ticket, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Ticket, error)
	CountByPrize(ctx context.Context, prizeID string) (int, error)
	AppendBatch(ctx context.Context, tickets []model.Ticket) error
}

type ticketRepository struct {
	gateway store.Gateway
	mu      sync.Mutex
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(gateway store.Gateway) TicketRepository {
	return &ticketRepository{gateway: gateway}
}

// load returns the stored ticket set, empty when missing or unparseable.
func (r *ticketRepository) load(ctx context.Context) ([]model.Ticket, error) {
	blob, ok, err := r.gateway.Load(ctx, store.KeyTickets)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var tickets []model.Ticket
	if err := json.Unmarshal(blob, &tickets); err != nil {
		return nil, nil
	}
	return tickets, nil
}

func (r *ticketRepository) save(ctx context.Context, tickets []model.Ticket) error {
	blob, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("marshal tickets: %w", err)
	}
	if err := r.gateway.Save(ctx, store.KeyTickets, blob); err != nil {
		return fmt.Errorf("save tickets: %w", err)
	}
	return nil
}

// List returns all issued tickets.
func (r *ticketRepository) List(ctx context.Context) ([]model.Ticket, error) {
	return r.load(ctx)
}

// ListByPrize returns all tickets referencing a prize.
func (r *ticketRepository) ListByPrize(ctx context.Context, prizeID string) ([]model.Ticket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Ticket
	for _, t := range tickets {
		if t.PrizeID == prizeID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListByOwner returns all tickets owned by a user.
func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Ticket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Ticket
	for _, t := range tickets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CountByPrize returns the number of tickets sold for a prize.
func (r *ticketRepository) CountByPrize(ctx context.Context, prizeID string) (int, error) {
	tickets, err := r.ListByPrize(ctx, prizeID)
	if err != nil {
		return 0, err
	}
	return len(tickets), nil
}

// AppendBatch appends a batch of freshly issued tickets.
func (r *ticketRepository) AppendBatch(ctx context.Context, batch []model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(tickets, batch...))
}
