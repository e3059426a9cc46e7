package domain

import "time"

// Region is a named territory scope. VPs associate with zero or more regions;
// accounts are tied to regions independently of person-to-person delegation.
type Region struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
