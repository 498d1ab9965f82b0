package domain

import "time"

// ProfitRule is a dealership's four-way percentage split for sale profit.
// Rates are stored as integer basis points (1800 = 18.00%) so the
// sum-to-100% invariant is exact rather than tolerance-based. Rows are
// append-only: editing a rule deactivates the previous active row and
// inserts a new one, preserving full history for audit.
type ProfitRule struct {
	ID                 int32     `json:"id"`
	DealershipID       int32     `json:"dealership_id"`
	RentInvestorRateBp int32     `json:"rent_investor_rate_bp"`
	BonusPoolRateBp    int32     `json:"bonus_pool_rate_bp"`
	SalespersonRateBp  int32     `json:"salesperson_rate_bp"`
	InvestorRateBp     int32     `json:"investor_rate_bp"`
	IsActive           bool      `json:"is_active"`
	EffectiveFrom      time.Time `json:"effective_from"`
	CreatedBy          int32     `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

// TotalBp returns the sum of the four rates in basis points.
func (r *ProfitRule) TotalBp() int32 {
	return r.RentInvestorRateBp + r.BonusPoolRateBp + r.SalespersonRateBp + r.InvestorRateBp
}
