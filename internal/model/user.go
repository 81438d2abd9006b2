package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role values assigned at registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered raffle participant.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // Never expose in JSON
	Role         string          `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// WinnerInfo is a credential-free value copy of a user taken at draw time.
// Later changes to the user do not alter a recorded winner.
type WinnerInfo struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Winner returns the snapshot stored on a prize when this user wins a draw.
func (u *User) Winner() *WinnerInfo {
	return &WinnerInfo{
		ID:      u.ID,
		Name:    u.Name,
		Balance: u.Balance,
	}
}
