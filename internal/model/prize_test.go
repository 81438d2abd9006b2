package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholderImage(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/Coffee-Machine/600/400", PlaceholderImage("Coffee Machine"))
	assert.Equal(t, "https://picsum.photos/seed/Solo/600/400", PlaceholderImage("Solo"))
	assert.Equal(t, "https://picsum.photos/seed/Tab-and-Space/600/400", PlaceholderImage("Tab\tand  Space"))
}

func TestSeedPrizes(t *testing.T) {
	prizes := SeedPrizes()
	assert.Len(t, prizes, 4)

	assert.Equal(t, "p1", prizes[0].ID)
	assert.True(t, prizes[0].TicketPrice.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 200, prizes[0].MaxTickets)
	assert.Equal(t, 1000, prizes[3].MaxTickets)

	for _, p := range prizes {
		assert.Nil(t, p.Winner)
		assert.NotEmpty(t, p.Image)
	}
}
