package model

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Prize represents a raffle prize with a capped ticket stock.
type Prize struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	MaxTickets  int             `json:"max_tickets"`
	Winner      *WinnerInfo     `json:"winner"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// PlaceholderImage derives a deterministic placeholder image URL from a
// prize name.
func PlaceholderImage(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", whitespaceRun.ReplaceAllString(name, "-"))
}

// SeedPrizes returns the default catalog used when no prize data has been
// persisted yet, or when the persisted prize blob cannot be parsed.
func SeedPrizes() []Prize {
	return []Prize{
		{
			ID:          "p1",
			Name:        "Luxury Vacation Package",
			Description: "A 7-day all-inclusive trip for two to the Maldives.",
			Image:       "https://picsum.photos/seed/vacation/600/400",
			TicketPrice: decimal.NewFromInt(50),
			MaxTickets:  200,
		},
		{
			ID:          "p2",
			Name:        "High-End Laptop",
			Description: "The latest model with top-tier specs for work and play.",
			Image:       "https://picsum.photos/seed/laptop/600/400",
			TicketPrice: decimal.NewFromInt(25),
			MaxTickets:  300,
		},
		{
			ID:          "p3",
			Name:        "Gourmet Coffee Machine",
			Description: "Become your own barista with this state-of-the-art machine.",
			Image:       "https://picsum.photos/seed/coffee/600/400",
			TicketPrice: decimal.NewFromInt(10),
			MaxTickets:  500,
		},
		{
			ID:          "p4",
			Name:        "One Year of Streaming Services",
			Description: "Enjoy unlimited entertainment with all major streaming platforms.",
			Image:       "https://picsum.photos/seed/stream/600/400",
			TicketPrice: decimal.NewFromInt(5),
			MaxTickets:  1000,
		},
	}
}
