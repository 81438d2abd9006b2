package model

import "time"

// Ticket is a single raffle entry. Owner fields are a denormalized snapshot
// of the buyer at purchase time; tickets are immutable once issued.
type Ticket struct {
	ID        string    `json:"id"`
	PrizeID   string    `json:"prize_id"`
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	CreatedAt time.Time `json:"created_at"`
}
