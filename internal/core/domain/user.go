package domain

import "time"

// User maps a verified external identity to an internal id and the public
// address other users send coupons to. Rows are insert-only; the storage
// layer rejects updates.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"-"`
	PublicID   string    `json:"public_id"`
	CreatedAt  time.Time `json:"created_at"`
}
