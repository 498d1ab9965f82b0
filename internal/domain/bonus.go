package domain

import "time"

// MonthlyBonus tracks a dealership's bonus pool for one month. The pool
// accumulates the bonus-pool share of each sale's profit; awarding it to a
// sales champion is a manual administrative action, not an automated rule.
type MonthlyBonus struct {
	ID                 int32      `json:"id"`
	DealershipID       int32      `json:"dealership_id"`
	Month              string     `json:"month"` // format: 'YYYY-MM'
	PoolCents          int64      `json:"pool_cents"`
	ChampionID         *int32     `json:"champion_id"`
	ChampionBonusCents int64      `json:"champion_bonus_cents"`
	AwardedBy          *int32     `json:"awarded_by"`
	AwardedAt          *time.Time `json:"awarded_at"`
	CreatedAt          time.Time  `json:"created_at"`
}
