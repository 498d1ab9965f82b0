package service

import (
	"context"
	"errors"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/profit"
	"dealerdesk-backend/internal/repository"
)

var (
	ErrVehicleNotInStock = errors.New("vehicle is not in stock")
	ErrVehicleSold       = errors.New("vehicle has already been sold")
	ErrNoProfitRule      = errors.New("no active profit rule configured")
)

type vehicleService struct {
	vehicleRepo    repository.VehicleRepository
	dealershipRepo repository.DealershipRepository
	profileRepo    repository.ProfileRepository
	ruleRepo       repository.ProfitRuleRepository
	bonusRepo      repository.BonusRepository
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	dealershipRepo repository.DealershipRepository,
	profileRepo repository.ProfileRepository,
	ruleRepo repository.ProfitRuleRepository,
	bonusRepo repository.BonusRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo:    vehicleRepo,
		dealershipRepo: dealershipRepo,
		profileRepo:    profileRepo,
		ruleRepo:       ruleRepo,
		bonusRepo:      bonusRepo,
	}
}

func (s *vehicleService) requireMember(ctx context.Context, actorID, dealershipID int32) (*domain.Profile, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return actor, nil
}

func (s *vehicleService) AddVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error {
	logger.EnterMethod("vehicleService.AddVehicle", "actorID", actorID, "dealershipID", vehicle.DealershipID, "vinSuffix", vehicle.VinSuffix)

	actor, err := s.requireMember(ctx, actorID, vehicle.DealershipID)
	if err != nil {
		return err
	}

	if vehicle.VinSuffix == "" {
		return validationf("vin suffix is required")
	}
	if vehicle.PurchasePriceCents < 0 {
		return validationf("purchase price cannot be negative")
	}

	vehicle.Status = domain.VehicleStatusInStock
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		logger.ExitMethodWithError("vehicleService.AddVehicle", err, "vinSuffix", vehicle.VinSuffix)
		return err
	}

	// The purchase price enters the cost ledger as the first cost line so
	// sale totals aggregate uniformly over cost rows.
	if vehicle.PurchasePriceCents > 0 {
		cost := &domain.VehicleCost{
			VehicleID:   vehicle.ID,
			CostType:    domain.CostTypePurchase,
			AmountCents: vehicle.PurchasePriceCents,
			Note:        "vehicle purchase",
			CreatedBy:   actor.ID,
		}
		if err := s.vehicleRepo.CreateCost(ctx, cost); err != nil {
			logger.ExitMethodWithError("vehicleService.AddVehicle", err, "vehicleID", vehicle.ID)
			return err
		}
	}

	logger.ExitMethod("vehicleService.AddVehicle", "vehicleID", vehicle.ID)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, actorID, vehicleID int32) (*domain.Vehicle, []domain.VehicleCost, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.requireMember(ctx, actorID, vehicle.DealershipID); err != nil {
		return nil, nil, err
	}

	costs, err := s.vehicleRepo.ListCostsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, costs, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, actorID, dealershipID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	if _, err := s.requireMember(ctx, actorID, dealershipID); err != nil {
		return nil, err
	}
	return s.vehicleRepo.ListByDealership(ctx, dealershipID, status)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error {
	logger.EnterMethod("vehicleService.UpdateVehicle", "actorID", actorID, "vehicleID", vehicle.ID)

	existing, err := s.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, actorID, existing.DealershipID); err != nil {
		return err
	}
	if existing.Status == domain.VehicleStatusSold {
		return ErrVehicleSold
	}

	// Tenant and lifecycle fields are not editable.
	vehicle.DealershipID = existing.DealershipID
	vehicle.Status = existing.Status

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		logger.ExitMethodWithError("vehicleService.UpdateVehicle", err, "vehicleID", vehicle.ID)
		return err
	}

	logger.ExitMethod("vehicleService.UpdateVehicle", "vehicleID", vehicle.ID)
	return nil
}

func (s *vehicleService) AddCost(ctx context.Context, actorID int32, cost *domain.VehicleCost) error {
	logger.EnterMethod("vehicleService.AddCost", "actorID", actorID, "vehicleID", cost.VehicleID, "type", cost.CostType)

	vehicle, err := s.vehicleRepo.GetByID(ctx, cost.VehicleID)
	if err != nil {
		return err
	}
	actor, err := s.requireMember(ctx, actorID, vehicle.DealershipID)
	if err != nil {
		return err
	}
	if vehicle.Status == domain.VehicleStatusSold {
		return ErrVehicleSold
	}
	if cost.AmountCents <= 0 {
		return validationf("cost amount must be positive")
	}

	cost.CreatedBy = actor.ID
	if err := s.vehicleRepo.CreateCost(ctx, cost); err != nil {
		logger.ExitMethodWithError("vehicleService.AddCost", err, "vehicleID", cost.VehicleID)
		return err
	}

	logger.ExitMethod("vehicleService.AddCost", "costID", cost.ID)
	return nil
}

func (s *vehicleService) RecordSale(ctx context.Context, actorID int32, sale *domain.VehicleSale) (*domain.VehicleSale, error) {
	logger.EnterMethod("vehicleService.RecordSale", "actorID", actorID, "vehicleID", sale.VehicleID)

	vehicle, err := s.vehicleRepo.GetByID(ctx, sale.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("vehicleService.RecordSale", err, "vehicleID", sale.VehicleID)
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, vehicle.DealershipID); err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusInStock {
		return nil, ErrVehicleNotInStock
	}
	if sale.SalePriceCents <= 0 {
		return nil, validationf("sale price must be positive")
	}
	if !sale.IsLoan && sale.LoanRebateCents != 0 {
		return nil, validationf("loan rebate requires a loan sale")
	}

	salesperson, err := s.profileRepo.GetByID(ctx, sale.SalespersonID)
	if err != nil {
		return nil, validationf("salesperson %d not found", sale.SalespersonID)
	}
	if !salesperson.BelongsTo(vehicle.DealershipID) {
		return nil, validationf("salesperson %d does not belong to this dealership", sale.SalespersonID)
	}

	costs, err := s.vehicleRepo.ListCostsByVehicle(ctx, sale.VehicleID)
	if err != nil {
		return nil, err
	}
	costCents := make([]int64, len(costs))
	for i, c := range costs {
		costCents[i] = c.AmountCents
	}

	sale.DealershipID = vehicle.DealershipID
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	sale.TotalCostCents = profit.TotalCost(costCents, sale.PreparationCostCents, sale.TransferCostCents, sale.MiscCostCents)
	sale.TotalProfitCents = profit.TotalProfit(sale.SalePriceCents, sale.TotalCostCents, sale.LoanRebateCents)

	if err := s.vehicleRepo.CreateSale(ctx, sale); err != nil {
		logger.ExitMethodWithError("vehicleService.RecordSale", err, "vehicleID", sale.VehicleID)
		return nil, err
	}

	// Accrue the bonus-pool share for the sale's month, best effort. The
	// breakdown itself is recomputed on demand and never persisted.
	if rule, err := s.ruleRepo.GetActive(ctx, vehicle.DealershipID); err == nil {
		breakdown := s.distribute(sale, vehicle, rule)
		month := sale.SaleDate.Format("2006-01")
		if err := s.bonusRepo.AccruePool(ctx, vehicle.DealershipID, month, breakdown.BonusPoolCents); err != nil {
			logger.Warn("failed to accrue bonus pool", "saleID", sale.ID, "month", month, "error", err)
		}
	}

	logger.ExitMethod("vehicleService.RecordSale", "saleID", sale.ID, "totalProfitCents", sale.TotalProfitCents)
	return sale, nil
}

func (s *vehicleService) GetSale(ctx context.Context, actorID, saleID int32) (*domain.VehicleSale, error) {
	sale, err := s.vehicleRepo.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, sale.DealershipID); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *vehicleService) ListSalesByMonth(ctx context.Context, actorID, dealershipID int32, year, month int) ([]domain.VehicleSale, error) {
	if _, err := s.requireMember(ctx, actorID, dealershipID); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, validationf("invalid month: %d", month)
	}
	return s.vehicleRepo.ListSalesByMonth(ctx, dealershipID, year, month)
}

// GetProfitBreakdown recomputes the distribution from persisted data using
// the rule in effect on the sale date, so repeated calls always agree.
func (s *vehicleService) GetProfitBreakdown(ctx context.Context, actorID, saleID int32) (*profit.Breakdown, error) {
	logger.EnterMethod("vehicleService.GetProfitBreakdown", "actorID", actorID, "saleID", saleID)

	sale, err := s.vehicleRepo.GetSaleByID(ctx, saleID)
	if err != nil {
		logger.ExitMethodWithError("vehicleService.GetProfitBreakdown", err, "saleID", saleID)
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, sale.DealershipID); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, sale.VehicleID)
	if err != nil {
		return nil, err
	}

	rule, err := s.ruleAt(ctx, sale.DealershipID, sale.SaleDate)
	if err != nil {
		logger.ExitMethodWithError("vehicleService.GetProfitBreakdown", err, "saleID", saleID)
		return nil, err
	}

	breakdown := s.distribute(sale, vehicle, rule)
	logger.ExitMethod("vehicleService.GetProfitBreakdown", "saleID", saleID, "totalProfitCents", breakdown.TotalProfitCents)
	return &breakdown, nil
}

// ruleAt returns the latest rule whose effective_from is on or before the
// given instant, falling back to the active rule for sales that predate all
// recorded rules.
func (s *vehicleService) ruleAt(ctx context.Context, dealershipID int32, at time.Time) (*domain.ProfitRule, error) {
	history, err := s.ruleRepo.ListHistory(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if !history[i].EffectiveFrom.After(at) {
			return &history[i], nil
		}
	}
	rule, err := s.ruleRepo.GetActive(ctx, dealershipID)
	if err != nil {
		return nil, ErrNoProfitRule
	}
	return rule, nil
}

func (s *vehicleService) distribute(sale *domain.VehicleSale, vehicle *domain.Vehicle, rule *domain.ProfitRule) profit.Breakdown {
	rates := profit.Rates{
		RentInvestorBp: rule.RentInvestorRateBp,
		BonusPoolBp:    rule.BonusPoolRateBp,
		SalespersonBp:  rule.SalespersonRateBp,
		InvestorBp:     rule.InvestorRateBp,
	}
	breakdown := profit.Distribute(sale.TotalProfitCents, rates, sale.SalespersonID, vehicle.InvestorIDs, vehicle.RentInvestorIDs)
	breakdown.TotalCostCents = sale.TotalCostCents
	return breakdown
}
