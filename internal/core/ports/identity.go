package ports

import "github.com/fedmatch/marketplace/internal/core/domain"

// Identity is the authenticated-session tuple passed explicitly into every
// service call. Keeping it a plain value (instead of ambient global state)
// keeps the services pure and testable.
type Identity struct {
	ProfileID   string
	AccountType domain.AccountType
	Email       string
}

// IsContractor reports whether the caller holds a contractor account.
func (id Identity) IsContractor() bool {
	return id.AccountType == domain.AccountContractor
}

// IsProcurement reports whether the caller holds a procurement account.
func (id Identity) IsProcurement() bool {
	return id.AccountType == domain.AccountProcurement
}
