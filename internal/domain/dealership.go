package domain

import "time"

type DealershipStatus string

const (
	DealershipStatusPending  DealershipStatus = "pending"
	DealershipStatusActive   DealershipStatus = "active"
	DealershipStatusInactive DealershipStatus = "inactive"
	DealershipStatusRejected DealershipStatus = "rejected"
)

// Dealership is the tenant boundary. All inventory, sales, rules, memberships
// and feedback threads are scoped to a dealership.
type Dealership struct {
	ID              int32            `json:"id"`
	Name            string           `json:"name"`
	Code            string           `json:"code"` // unique
	Status          DealershipStatus `json:"status"`
	RentInvestorIDs []int32          `json:"rent_investor_ids"`
	ContactName     string           `json:"contact_name"`  // optional override for public display
	ContactPhone    string           `json:"contact_phone"` // optional override for public display
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type ProfileRole string

const (
	ProfileRoleSuperAdmin ProfileRole = "super_admin" // platform operator
	ProfileRoleAdmin      ProfileRole = "admin"       // dealership admin
	ProfileRoleEmployee   ProfileRole = "employee"
)

// Profile is a user account. Platform operators carry no dealership scope;
// everyone else belongs to exactly one dealership.
type Profile struct {
	ID           int32       `json:"id"`
	DealershipID *int32      `json:"dealership_id"` // nil for platform roles
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	PasswordHash string      `json:"-"`
	Role         ProfileRole `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CanManageDealership reports whether the profile may mutate dealership-scoped
// configuration such as profit rules and expenses.
func (p *Profile) CanManageDealership(dealershipID int32) bool {
	if p.Role == ProfileRoleSuperAdmin {
		return true
	}
	if p.Role != ProfileRoleAdmin {
		return false
	}
	return p.DealershipID != nil && *p.DealershipID == dealershipID
}

// BelongsTo reports whether the profile is scoped to the given dealership.
// Platform operators belong to every tenant for read purposes.
func (p *Profile) BelongsTo(dealershipID int32) bool {
	if p.Role == ProfileRoleSuperAdmin {
		return true
	}
	return p.DealershipID != nil && *p.DealershipID == dealershipID
}
