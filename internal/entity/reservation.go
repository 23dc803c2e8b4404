package entity

import "time"

// Reservation is the pending matchmaking slot of a pairing pool.
type Reservation struct {
	SessionID   string    `json:"sessionId"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsOwnedBy - reports whether the identity created the reservation.
func (that *Reservation) IsOwnedBy(identity string) bool {
	return that.RequestedBy != "" && that.RequestedBy == identity
}
