package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewForUser(t *testing.T) {
	admin := &User{ID: "user-1", Name: "admin", Role: RoleAdmin}
	regular := &User{ID: "user-2", Name: "Alice", Role: RoleUser}

	assert.Equal(t, ViewLoggedOut, ViewForUser(nil))
	assert.Equal(t, ViewAdmin, ViewForUser(admin))
	assert.Equal(t, ViewRaffle, ViewForUser(regular))
}

func TestCanNavigate(t *testing.T) {
	admin := &User{ID: "user-1", Name: "admin", Role: RoleAdmin}
	regular := &User{ID: "user-2", Name: "Alice", Role: RoleUser}

	testCases := []struct {
		name   string
		user   *User
		target View
		want   bool
	}{
		{"anonymous to logged out", nil, ViewLoggedOut, true},
		{"anonymous to raffle", nil, ViewRaffle, false},
		{"anonymous to dashboard", nil, ViewDashboard, false},
		{"anonymous to admin", nil, ViewAdmin, false},
		{"user to raffle", regular, ViewRaffle, true},
		{"user to dashboard", regular, ViewDashboard, true},
		{"user to admin", regular, ViewAdmin, false},
		{"user to logged out", regular, ViewLoggedOut, true},
		{"admin to admin", admin, ViewAdmin, true},
		{"admin to raffle", admin, ViewRaffle, true},
		{"unknown view", regular, View("settings"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanNavigate(tc.user, tc.target))
		})
	}
}
