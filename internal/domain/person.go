package domain

import (
	"strings"
	"time"
)

// Person is a user referenced by the hierarchy. Identity (credentials, admin
// flag) lives here; role tier placement lives in HierarchyAssignment rows.
type Person struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName derives the name shown on dashboards: first/last name when
// present, otherwise the local part of the email address.
func (p Person) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name != "" {
		return name
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	return p.Email
}
