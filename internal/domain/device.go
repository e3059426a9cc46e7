package domain

import "time"

// DeviceSubscription is a push-notification subscription for a person's
// device. PlayerID is the push provider's subscription identifier.
type DeviceSubscription struct {
	ID        string
	PersonID  string
	PlayerID  string
	CreatedAt time.Time
}
