package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/repository"
)

// PrizeListing is a prize together with its current ticket tally.
type PrizeListing struct {
	model.Prize
	TicketsSold int `json:"tickets_sold"`
	Remaining   int `json:"remaining"`
}

// AddPrizeInput is the admin form for a new prize.
type AddPrizeInput struct {
	Name        string
	Description string
	Image       string
	TicketPrice decimal.Decimal
	MaxTickets  int
}

// LedgerService is the raffle core: catalog management, ticket issuance
// under stock and balance limits, and winner draws.
type LedgerService interface {
	ListPrizes(ctx context.Context) ([]PrizeListing, error)
	BuyTickets(ctx context.Context, userID, prizeID string, quantity int) ([]model.Ticket, error)
	DrawWinner(ctx context.Context, prizeID string) (*model.Prize, *model.WinnerInfo, error)
	AddPrize(ctx context.Context, input AddPrizeInput) (*model.Prize, error)
	UpdatePrize(ctx context.Context, prize *model.Prize) (*model.Prize, error)
	TicketsFor(ctx context.Context, ownerID string) ([]model.Ticket, error)
	PrizesWonBy(ctx context.Context, ownerID string) ([]model.Prize, error)
}

type ledgerService struct {
	prizeRepo  repository.PrizeRepository
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	accounts   AccountService
	// Mutex map for per-prize locking: issuance and draws for one prize
	// must not interleave or the stock and at-most-one-winner invariants
	// can be violated.
	prizeMutexes sync.Map
}

// NewLedgerService creates a new raffle ledger service.
func NewLedgerService(
	prizeRepo repository.PrizeRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	accounts AccountService,
) LedgerService {
	return &ledgerService{
		prizeRepo:  prizeRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		accounts:   accounts,
	}
}

// getMutex returns a mutex for a specific prize ID.
func (s *ledgerService) getMutex(prizeID string) *sync.Mutex {
	value, _ := s.prizeMutexes.LoadOrStore(prizeID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// ListPrizes returns the catalog, newest first, with ticket tallies.
func (s *ledgerService) ListPrizes(ctx context.Context) ([]PrizeListing, error) {
	prizes, err := s.prizeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]PrizeListing, 0, len(prizes))
	for _, p := range prizes {
		sold, err := s.ticketRepo.CountByPrize(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		listings = append(listings, PrizeListing{
			Prize:       p,
			TicketsSold: sold,
			Remaining:   p.MaxTickets - sold,
		})
	}
	return listings, nil
}

// BuyTickets issues quantity tickets for the prize and debits the buyer.
// The debit and the ticket batch commit together or not at all.
func (s *ledgerService) BuyTickets(ctx context.Context, userID, prizeID string, quantity int) ([]model.Ticket, error) {
	if quantity < 1 {
		return nil, errors.ErrInvalidQuantity
	}

	mutex := s.getMutex(prizeID)
	mutex.Lock()
	defer mutex.Unlock()

	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalCost := prize.TicketPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if totalCost.GreaterThan(user.Balance) {
		return nil, errors.ErrInsufficientBalance
	}

	sold, err := s.ticketRepo.CountByPrize(ctx, prizeID)
	if err != nil {
		return nil, err
	}
	if sold+quantity > prize.MaxTickets {
		return nil, &errors.InsufficientStockError{
			Requested: quantity,
			Remaining: prize.MaxTickets - sold,
		}
	}

	now := time.Now()
	tickets := make([]model.Ticket, quantity)
	for i := range tickets {
		tickets[i] = model.Ticket{
			ID:        "ticket-" + uuid.New().String(),
			PrizeID:   prize.ID,
			OwnerID:   user.ID,
			OwnerName: user.Name,
			CreatedAt: now,
		}
	}

	if _, err := s.accounts.Debit(ctx, userID, totalCost); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.AppendBatch(ctx, tickets); err != nil {
		// Compensate the debit so a failed purchase leaves no trace.
		if _, creditErr := s.accounts.Credit(ctx, userID, totalCost); creditErr != nil {
			return nil, fmt.Errorf("append tickets: %w (refund also failed: %v)", err, creditErr)
		}
		return nil, fmt.Errorf("append tickets: %w", err)
	}

	return tickets, nil
}

// DrawWinner selects a winner uniformly among the prize's tickets. One
// ticket is one entry: a user holding N of the T tickets wins with chance
// N/T. Owners are not deduplicated.
func (s *ledgerService) DrawWinner(ctx context.Context, prizeID string) (*model.Prize, *model.WinnerInfo, error) {
	mutex := s.getMutex(prizeID)
	mutex.Lock()
	defer mutex.Unlock()

	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		return nil, nil, err
	}
	if prize.Winner != nil {
		return nil, nil, errors.ErrAlreadyDrawn
	}

	tickets, err := s.ticketRepo.ListByPrize(ctx, prizeID)
	if err != nil {
		return nil, nil, err
	}
	if len(tickets) == 0 {
		return nil, nil, errors.ErrNoTicketsSold
	}

	winningTicket := tickets[rand.Intn(len(tickets))]

	winner, err := s.userRepo.FindByID(ctx, winningTicket.OwnerID)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return nil, nil, errors.ErrWinnerAccountMissing
		}
		return nil, nil, err
	}

	prize.Winner = winner.Winner()
	prize.UpdatedAt = time.Now()
	if err := s.prizeRepo.Replace(ctx, prize); err != nil {
		return nil, nil, fmt.Errorf("store winner: %w", err)
	}

	return prize, prize.Winner, nil
}

// AddPrize validates the admin input, reporting every violation at once,
// and prepends the new prize to the catalog.
func (s *ledgerService) AddPrize(ctx context.Context, input AddPrizeInput) (*model.Prize, error) {
	fieldErrs := errors.FieldErrors{}
	if strings.TrimSpace(input.Name) == "" {
		fieldErrs["name"] = "Prize name cannot be empty."
	}
	if strings.TrimSpace(input.Description) == "" {
		fieldErrs["description"] = "Description cannot be empty."
	}
	if !input.TicketPrice.IsPositive() {
		fieldErrs["ticket_price"] = "Ticket price must be a positive number."
	}
	if input.MaxTickets <= 0 {
		fieldErrs["max_tickets"] = "Max tickets must be a positive number."
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	image := input.Image
	if image == "" {
		image = model.PlaceholderImage(input.Name)
	}

	now := time.Now()
	prize := &model.Prize{
		ID:          "prize-" + uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Image:       image,
		TicketPrice: input.TicketPrice,
		MaxTickets:  input.MaxTickets,
		Winner:      nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.prizeRepo.Prepend(ctx, prize); err != nil {
		return nil, fmt.Errorf("add prize: %w", err)
	}
	return prize, nil
}

// UpdatePrize replaces the stored prize wholesale. Input originates from an
// admin edit of an existing record and is treated as trusted.
func (s *ledgerService) UpdatePrize(ctx context.Context, prize *model.Prize) (*model.Prize, error) {
	prize.UpdatedAt = time.Now()
	if err := s.prizeRepo.Replace(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

// TicketsFor returns the tickets a user holds.
func (s *ledgerService) TicketsFor(ctx context.Context, ownerID string) ([]model.Ticket, error) {
	return s.ticketRepo.ListByOwner(ctx, ownerID)
}

// PrizesWonBy returns the prizes whose recorded winner is the user.
func (s *ledgerService) PrizesWonBy(ctx context.Context, ownerID string) ([]model.Prize, error) {
	prizes, err := s.prizeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var won []model.Prize
	for _, p := range prizes {
		if p.Winner != nil && p.Winner.ID == ownerID {
			won = append(won, p)
		}
	}
	return won, nil
}
