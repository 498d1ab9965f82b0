package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalCost(t *testing.T) {
	t.Run("Costs plus sale-specific fields", func(t *testing.T) {
		costs := []int64{500000, 120000, 30000} // $5000 + $1200 + $300
		total := TotalCost(costs, 80000, 20000, 5000)
		assert.Equal(t, int64(755000), total) // $6500 + $800 + $200 + $50 = $7550
	})

	t.Run("No cost lines", func(t *testing.T) {
		total := TotalCost(nil, 80000, 20000, 5000)
		assert.Equal(t, int64(105000), total)
	})

	t.Run("Order of summation does not matter", func(t *testing.T) {
		a := TotalCost([]int64{100, 200, 300}, 10, 20, 30)
		b := TotalCost([]int64{300, 100, 200}, 10, 20, 30)
		assert.Equal(t, a, b)
	})
}

func TestTotalProfit(t *testing.T) {
	t.Run("Profit", func(t *testing.T) {
		// $80000 sale - $75500 cost + $1500 rebate = $6000
		assert.Equal(t, int64(600000), TotalProfit(8000000, 7550000, 150000))
	})

	t.Run("Loss is not clamped", func(t *testing.T) {
		// $60000 sale - $75500 cost + $0 rebate = -$15500
		assert.Equal(t, int64(-1550000), TotalProfit(6000000, 7550000, 0))
	})

	t.Run("Rebate can turn a loss into profit", func(t *testing.T) {
		assert.Equal(t, int64(50000), TotalProfit(7500000, 7550000, 100000))
	})
}

func TestSplitEven(t *testing.T) {
	t.Run("Exact division", func(t *testing.T) {
		share := SplitEven(90000, []int32{11, 12, 13})
		assert.False(t, share.Unassigned)
		assert.Equal(t, int64(90000), share.TotalCents)
		assert.Equal(t, []int64{30000, 30000, 30000}, share.PerRecipientCents)
	})

	t.Run("Leftover cents go to the front of the list", func(t *testing.T) {
		share := SplitEven(100, []int32{1, 2, 3})
		assert.Equal(t, []int64{34, 33, 33}, share.PerRecipientCents)
		var sum int64
		for _, p := range share.PerRecipientCents {
			sum += p
		}
		assert.Equal(t, share.TotalCents, sum)
	})

	t.Run("Negative total mirrors the positive split", func(t *testing.T) {
		share := SplitEven(-100, []int32{1, 2, 3})
		assert.Equal(t, []int64{-34, -33, -33}, share.PerRecipientCents)
	})

	t.Run("Empty recipient list is unassigned, not an error", func(t *testing.T) {
		share := SplitEven(45000, nil)
		assert.True(t, share.Unassigned)
		assert.Equal(t, int64(45000), share.TotalCents)
		assert.Empty(t, share.RecipientIDs)
	})
}

func TestDistribute(t *testing.T) {
	// The rule shape used throughout: 18% rent investors, 10% bonus pool,
	// 36% salesperson, 36% capital investors.
	rule := Rates{RentInvestorBp: 1800, BonusPoolBp: 1000, SalespersonBp: 3600, InvestorBp: 3600}

	t.Run("Full rule partitions the profit exactly", func(t *testing.T) {
		// $6000 profit: 18% = $1080, 10% = $600, 36% = $2160, 36% = $2160
		b := Distribute(600000, rule, 7, []int32{1, 2}, []int32{3})
		assert.Equal(t, int64(216000), b.SalespersonCents)
		assert.Equal(t, int64(216000), b.InvestorShare.TotalCents)
		assert.Equal(t, int64(108000), b.RentInvestorShare.TotalCents)
		assert.Equal(t, int64(60000), b.BonusPoolCents)

		sum := b.SalespersonCents + b.InvestorShare.TotalCents + b.RentInvestorShare.TotalCents + b.BonusPoolCents
		assert.Equal(t, b.TotalProfitCents, sum) // no leakage
	})

	t.Run("Exact partition holds for awkward amounts", func(t *testing.T) {
		// A profit that does not divide evenly by any of the rates.
		b := Distribute(999999, rule, 7, []int32{1}, []int32{2})
		sum := b.SalespersonCents + b.InvestorShare.TotalCents + b.RentInvestorShare.TotalCents + b.BonusPoolCents
		assert.Equal(t, int64(999999), sum)
	})

	t.Run("Negative profit distributes negative shares", func(t *testing.T) {
		b := Distribute(-600000, rule, 7, []int32{1, 2}, nil)
		assert.Equal(t, int64(-216000), b.SalespersonCents)
		assert.Equal(t, int64(-60000), b.BonusPoolCents)
		assert.True(t, b.RentInvestorShare.Unassigned)
		sum := b.SalespersonCents + b.InvestorShare.TotalCents + b.RentInvestorShare.TotalCents + b.BonusPoolCents
		assert.Equal(t, int64(-600000), sum)
	})

	t.Run("Investor share splits evenly across the vehicle's investors", func(t *testing.T) {
		b := Distribute(600000, rule, 7, []int32{1, 2, 3}, nil)
		// $2160 / 3 = $720 each
		assert.Equal(t, []int64{72000, 72000, 72000}, b.InvestorShare.PerRecipientCents)
		assert.Equal(t, []int32{1, 2, 3}, b.InvestorShare.RecipientIDs)
	})

	t.Run("Historical rule not summing to 100 still computes", func(t *testing.T) {
		short := Rates{RentInvestorBp: 1800, BonusPoolBp: 1000, SalespersonBp: 3600, InvestorBp: 3700} // 101%
		b := Distribute(100000, short, 7, nil, nil)
		// Every share computed independently: 18% + 10% + 36% + 37% of $1000.
		assert.Equal(t, int64(36000), b.SalespersonCents)
		assert.Equal(t, int64(37000), b.InvestorShare.TotalCents)
		assert.Equal(t, int64(18000), b.RentInvestorShare.TotalCents)
		assert.Equal(t, int64(10000), b.BonusPoolCents)
	})

	t.Run("Zero-everything rule puts all profit in one bucket", func(t *testing.T) {
		all := Rates{InvestorBp: 10000}
		b := Distribute(600000, all, 7, []int32{1}, nil)
		assert.Equal(t, int64(0), b.SalespersonCents)
		assert.Equal(t, int64(600000), b.InvestorShare.TotalCents)
		assert.Equal(t, int64(0), b.BonusPoolCents)
	})

	t.Run("Same inputs produce the same breakdown", func(t *testing.T) {
		a := Distribute(123457, rule, 7, []int32{1, 2}, []int32{3})
		b := Distribute(123457, rule, 7, []int32{1, 2}, []int32{3})
		assert.Equal(t, a, b)
	})
}
