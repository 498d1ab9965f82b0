package service

import (
	"context"
	"math"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/profit"
	"dealerdesk-backend/internal/repository"
)

type profitRuleService struct {
	ruleRepo    repository.ProfitRuleRepository
	profileRepo repository.ProfileRepository
}

func NewProfitRuleService(ruleRepo repository.ProfitRuleRepository, profileRepo repository.ProfileRepository) ProfitRuleService {
	return &profitRuleService{
		ruleRepo:    ruleRepo,
		profileRepo: profileRepo,
	}
}

func (s *profitRuleService) GetActiveRule(ctx context.Context, actorID, dealershipID int32) (*domain.ProfitRule, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.ruleRepo.GetActive(ctx, dealershipID)
}

func (s *profitRuleService) ListRuleHistory(ctx context.Context, actorID, dealershipID int32) ([]domain.ProfitRule, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.ruleRepo.ListHistory(ctx, dealershipID)
}

// toBasisPoints converts a decimal percentage (18.0) to basis points (1800),
// rounding to the nearest 0.01%.
func toBasisPoints(pct float64) int32 {
	return int32(math.Round(pct * 100))
}

// ValidateRates requires the four basis-point rates to sum to exactly 100%.
// The rejection message carries the computed total as a percentage so the
// caller can show what the rates actually add up to.
func ValidateRates(rentInvestorBp, bonusPoolBp, salespersonBp, investorBp int32) error {
	for _, bp := range []int32{rentInvestorBp, bonusPoolBp, salespersonBp, investorBp} {
		if bp < 0 {
			return validationf("rates cannot be negative")
		}
	}
	total := rentInvestorBp + bonusPoolBp + salespersonBp + investorBp
	if total != profit.FullShareBp {
		return validationf("rates must sum to 100%%, got %.2f", float64(total)/100)
	}
	return nil
}

func (s *profitRuleService) SetRule(ctx context.Context, actorID, dealershipID int32, rentInvestorPct, bonusPoolPct, salespersonPct, investorPct float64) (*domain.ProfitRule, error) {
	logger.EnterMethod("profitRuleService.SetRule", "actorID", actorID, "dealershipID", dealershipID)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageDealership(dealershipID) {
		return nil, ErrUnauthorized
	}

	rule := &domain.ProfitRule{
		DealershipID:       dealershipID,
		RentInvestorRateBp: toBasisPoints(rentInvestorPct),
		BonusPoolRateBp:    toBasisPoints(bonusPoolPct),
		SalespersonRateBp:  toBasisPoints(salespersonPct),
		InvestorRateBp:     toBasisPoints(investorPct),
		CreatedBy:          actor.ID,
	}
	if err := ValidateRates(rule.RentInvestorRateBp, rule.BonusPoolRateBp, rule.SalespersonRateBp, rule.InvestorRateBp); err != nil {
		logger.ExitMethodWithError("profitRuleService.SetRule", err, "dealershipID", dealershipID)
		return nil, err
	}

	if err := s.ruleRepo.SetActive(ctx, rule); err != nil {
		logger.ExitMethodWithError("profitRuleService.SetRule", err, "dealershipID", dealershipID)
		return nil, err
	}

	logger.ExitMethod("profitRuleService.SetRule", "ruleID", rule.ID)
	return rule, nil
}
