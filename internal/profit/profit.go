// Package profit computes sale totals and the four-way profit distribution.
// Everything here is pure computation over already-persisted data: the same
// inputs always produce the same breakdown, and nothing is mutated.
package profit

// Amounts are integer cents; rates are integer basis points (1800 = 18.00%).
// FullShareBp is the basis-point value of a rule whose rates sum to 100%.
const FullShareBp = 10000

// Rates carries a profit rule's four percentages in basis points.
type Rates struct {
	RentInvestorBp int32
	BonusPoolBp    int32
	SalespersonBp  int32
	InvestorBp     int32
}

// TotalBp returns the sum of the four rates.
func (r Rates) TotalBp() int32 {
	return r.RentInvestorBp + r.BonusPoolBp + r.SalespersonBp + r.InvestorBp
}

// Share is one slice of the distribution, split evenly across its recipients.
// An empty recipient list keeps the full amount with Unassigned set, so the
// share is displayed without a payee instead of dividing by zero.
type Share struct {
	TotalCents        int64   `json:"total_cents"`
	RecipientIDs      []int32 `json:"recipient_ids"`
	PerRecipientCents []int64 `json:"per_recipient_cents"`
	Unassigned        bool    `json:"unassigned"`
}

// Breakdown is the full deterministic distribution of one sale's profit.
type Breakdown struct {
	TotalCostCents    int64 `json:"total_cost_cents"`
	TotalProfitCents  int64 `json:"total_profit_cents"`
	SalespersonID     int32 `json:"salesperson_id"`
	SalespersonCents  int64 `json:"salesperson_cents"`
	InvestorShare     Share `json:"investor_share"`
	RentInvestorShare Share `json:"rent_investor_share"`
	BonusPoolCents    int64 `json:"bonus_pool_cents"`
}

// TotalCost sums all cost lines plus the three sale-specific cost fields.
func TotalCost(costCents []int64, prepCents, transferCents, miscCents int64) int64 {
	total := prepCents + transferCents + miscCents
	for _, c := range costCents {
		total += c
	}
	return total
}

// TotalProfit is sale_price - total_cost + loan_rebate. A negative result is
// a valid loss, never clamped to zero.
func TotalProfit(salePriceCents, totalCostCents, loanRebateCents int64) int64 {
	return salePriceCents - totalCostCents + loanRebateCents
}

// shareOf returns profit x bp / 10000, rounded half away from zero so
// negative profits mirror positive ones.
func shareOf(profitCents int64, bp int32) int64 {
	n := profitCents * int64(bp)
	if n >= 0 {
		return (n + FullShareBp/2) / FullShareBp
	}
	return (n - FullShareBp/2) / FullShareBp
}

// SplitEven divides a share total evenly across recipients. Leftover cents
// are distributed one at a time from the front of the list so the
// per-recipient amounts always sum back to the total.
func SplitEven(totalCents int64, recipientIDs []int32) Share {
	if len(recipientIDs) == 0 {
		return Share{TotalCents: totalCents, Unassigned: true}
	}

	n := int64(len(recipientIDs))
	base := totalCents / n
	leftover := totalCents - base*n

	step := int64(1)
	if leftover < 0 {
		step = -1
		leftover = -leftover
	}

	per := make([]int64, len(recipientIDs))
	for i := range per {
		per[i] = base
		if int64(i) < leftover {
			per[i] += step
		}
	}

	ids := make([]int32, len(recipientIDs))
	copy(ids, recipientIDs)
	return Share{TotalCents: totalCents, RecipientIDs: ids, PerRecipientCents: per}
}

// Distribute splits a sale's profit by the given rates. When the rates sum to
// exactly 100%, the bonus pool absorbs the rounding remainder so the four
// shares are an exact partition of the profit. Rates that do not sum to 100%
// still compute (each share independently), keeping historical breakdowns
// stable regardless of when rule validation was tightened.
func Distribute(profitCents int64, rates Rates, salespersonID int32, investorIDs, rentInvestorIDs []int32) Breakdown {
	salesperson := shareOf(profitCents, rates.SalespersonBp)
	investorTotal := shareOf(profitCents, rates.InvestorBp)
	rentTotal := shareOf(profitCents, rates.RentInvestorBp)

	var bonus int64
	if rates.TotalBp() == FullShareBp {
		bonus = profitCents - salesperson - investorTotal - rentTotal
	} else {
		bonus = shareOf(profitCents, rates.BonusPoolBp)
	}

	return Breakdown{
		TotalProfitCents:  profitCents,
		SalespersonID:     salespersonID,
		SalespersonCents:  salesperson,
		InvestorShare:     SplitEven(investorTotal, investorIDs),
		RentInvestorShare: SplitEven(rentTotal, rentInvestorIDs),
		BonusPoolCents:    bonus,
	}
}
