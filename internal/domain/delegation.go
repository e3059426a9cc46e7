package domain

import "time"

// AccountDelegation assigns an account (surgeon) to a person, recording who
// made the assignment. The same account can carry delegation rows from
// different delegators at once (VP→manager and manager→rep are separate rows).
type AccountDelegation struct {
	ID          string
	AccountID   string
	DelegatedTo string
	DelegatedBy string
	CreatedAt   time.Time
}
