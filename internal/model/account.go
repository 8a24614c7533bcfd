package model

// Account is a resolved entry from the system account directory.
type Account struct {
	UID      uint32 // Numeric user id
	GID      uint32 // Primary group id
	Username string // Login name
	Home     string // Home directory (absolute)
}

// IsRoot reports whether the account is the superuser.
func (a Account) IsRoot() bool {
	return a.UID == 0
}
