package domain

import (
	"sort"
	"time"
)

// MembershipTier is an ordered tier definition gating feature access by
// in-stock vehicle count. A nil MaxVehicles means the range is unbounded.
type MembershipTier struct {
	ID             int32  `json:"id"`
	TierLevel      int32  `json:"tier_level"`
	Name           string `json:"name"`
	MinVehicles    int32  `json:"min_vehicles"`
	MaxVehicles    *int32 `json:"max_vehicles"`
	AnnualFeeCents int64  `json:"annual_fee_cents"`
}

// Contains reports whether the tier's [min, max] range includes the count.
// Boundaries are inclusive.
func (t *MembershipTier) Contains(vehicleCount int32) bool {
	if vehicleCount < t.MinVehicles {
		return false
	}
	return t.MaxVehicles == nil || vehicleCount <= *t.MaxVehicles
}

// SuggestTier picks the tier whose range contains the vehicle count, choosing
// the lowest qualifying tier_level when more than one matches. Returns nil
// when no tier qualifies.
func SuggestTier(tiers []MembershipTier, vehicleCount int32) *MembershipTier {
	sorted := make([]MembershipTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TierLevel < sorted[j].TierLevel })
	for i := range sorted {
		if sorted[i].Contains(vehicleCount) {
			return &sorted[i]
		}
	}
	return nil
}

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"
)

// MembershipState is the derived classification of a membership row. It is
// computed from dates and the trial flag, never stored.
type MembershipState string

const (
	MembershipStateTrial    MembershipState = "trial"
	MembershipStateActive   MembershipState = "active"
	MembershipStateExpired  MembershipState = "expired"
	MembershipStateInactive MembershipState = "inactive"
)

// DealershipMembership is one subscription window for a dealership. Renewal
// appends a new row; at most one active row is considered current, selected
// by latest created_at.
type DealershipMembership struct {
	ID           int32            `json:"id"`
	DealershipID int32            `json:"dealership_id"`
	TierID       int32            `json:"tier_id"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	IsTrial      bool             `json:"is_trial"`
	TrialEndDate *time.Time       `json:"trial_end_date"`
	Status       MembershipStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

// StateAt classifies the membership at the given instant. Trial wins while
// the trial window is open; a passed end_date classifies as expired
// regardless of the stored status field.
func (m *DealershipMembership) StateAt(now time.Time) MembershipState {
	if m.IsTrial && m.TrialEndDate != nil && !now.After(*m.TrialEndDate) {
		return MembershipStateTrial
	}
	if m.EndDate != nil && now.After(*m.EndDate) {
		return MembershipStateExpired
	}
	if m.Status == MembershipStatusActive {
		return MembershipStateActive
	}
	return MembershipStateInactive
}

// DaysUntilExpiry returns ceil((end_date - now) in days), or nil when the
// membership has no end date.
func (m *DealershipMembership) DaysUntilExpiry(now time.Time) *int32 {
	if m.EndDate == nil {
		return nil
	}
	remaining := m.EndDate.Sub(now)
	days := int32(remaining.Hours() / 24)
	if remaining > 0 && remaining%(24*time.Hour) != 0 {
		days++
	}
	return &days
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaying    PaymentStatus = "paying"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CanTransitionTo encodes the payment lifecycle: pending → paying →
// completed/failed/cancelled, with refunds only from completed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusPaying || next == PaymentStatusCompleted ||
			next == PaymentStatusFailed || next == PaymentStatusCancelled
	case PaymentStatusPaying:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed ||
			next == PaymentStatusCancelled
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// MembershipPayment records the payment lifecycle for one membership window.
// Status is set exogenously by the payment provider collaborator.
type MembershipPayment struct {
	ID           int32         `json:"id"`
	MembershipID int32         `json:"membership_id"`
	DealershipID int32         `json:"dealership_id"`
	OrderNo      string        `json:"order_no"`
	AmountCents  int64         `json:"amount_cents"`
	Status       PaymentStatus `json:"status"`
	PaidAt       *time.Time    `json:"paid_at"`
	CreatedAt    time.Time     `json:"created_at"`
}
