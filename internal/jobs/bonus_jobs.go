package jobs

import (
	"context"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/profit"
)

// AccrueMonthlyBonusPools reconciles last month's bonus pools from persisted
// sales. Sale recording accrues the pool incrementally; this job recomputes
// the month from scratch so sales recorded while no rule was active are
// still captured once a rule exists.
func (jr *JobRunner) AccrueMonthlyBonusPools() {
	jr.runWithRecovery("AccrueMonthlyBonusPools", func() {
		ctx := context.Background()

		dealerships, err := jr.store.DealershipRepository.List(ctx, domain.DealershipStatusActive)
		if err != nil {
			logger.Error("Failed to list dealerships", "error", err)
			return
		}

		lastMonth := time.Now().AddDate(0, -1, 0)
		month := lastMonth.Format("2006-01")

		reconciled := 0
		for _, dealership := range dealerships {
			sales, err := jr.store.VehicleRepository.ListSalesByMonth(ctx, dealership.ID, lastMonth.Year(), int(lastMonth.Month()))
			if err != nil {
				logger.Error("Failed to list sales for bonus reconciliation",
					"dealership_id", dealership.ID, "month", month, "error", err)
				continue
			}
			if len(sales) == 0 {
				continue
			}

			history, err := jr.store.ProfitRuleRepository.ListHistory(ctx, dealership.ID)
			if err != nil || len(history) == 0 {
				logger.Error("No profit rules for dealership with sales",
					"dealership_id", dealership.ID, "month", month)
				continue
			}

			var pool int64
			for _, sale := range sales {
				rule := ruleAt(history, sale.SaleDate)
				if rule == nil {
					rule = &history[len(history)-1]
				}
				rates := profit.Rates{
					RentInvestorBp: rule.RentInvestorRateBp,
					BonusPoolBp:    rule.BonusPoolRateBp,
					SalespersonBp:  rule.SalespersonRateBp,
					InvestorBp:     rule.InvestorRateBp,
				}
				breakdown := profit.Distribute(sale.TotalProfitCents, rates, sale.SalespersonID, nil, nil)
				pool += breakdown.BonusPoolCents
			}

			if err := jr.store.BonusRepository.SetPool(ctx, dealership.ID, month, pool); err != nil {
				logger.Error("Failed to set bonus pool",
					"dealership_id", dealership.ID, "month", month, "error", err)
				continue
			}
			reconciled++
		}

		logger.Info("Reconciled monthly bonus pools", "month", month, "dealerships", reconciled)
	})
}

// ruleAt picks the latest rule effective on or before the instant. History is
// ordered newest first.
func ruleAt(history []domain.ProfitRule, at time.Time) *domain.ProfitRule {
	for i := range history {
		if !history[i].EffectiveFrom.After(at) {
			return &history[i]
		}
	}
	return nil
}
