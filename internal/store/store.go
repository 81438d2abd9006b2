package store

import "context"

// Blob keys. Each holds a JSON array under a namespaced key.
const (
	KeyUsers   = "tombola:users"
	KeyPrizes  = "tombola:prizes"
	KeyTickets = "tombola:tickets"
)

// Gateway is the persistence boundary: named JSON blobs loaded and saved
// wholesale. Load reports ok=false when the key has never been written.
type Gateway interface {
	Load(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Save(ctx context.Context, key string, blob []byte) error
}
