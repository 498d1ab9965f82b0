package service_test

import (
	"context"
	"testing"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newVehicleService() (service.VehicleService, *MockVehicleRepo, *MockDealershipRepo, *MockProfileRepo, *MockProfitRuleRepo, *MockBonusRepo) {
	vehicleRepo := new(MockVehicleRepo)
	dealershipRepo := new(MockDealershipRepo)
	profileRepo := new(MockProfileRepo)
	ruleRepo := new(MockProfitRuleRepo)
	bonusRepo := new(MockBonusRepo)
	svc := service.NewVehicleService(vehicleRepo, dealershipRepo, profileRepo, ruleRepo, bonusRepo)
	return svc, vehicleRepo, dealershipRepo, profileRepo, ruleRepo, bonusRepo
}

func inStockVehicle(id, dealershipID int32) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 id,
		DealershipID:       dealershipID,
		VinSuffix:          "ABC123",
		Brand:              "Toyota",
		Model:              "Camry",
		Year:               2021,
		PurchasePriceCents: 1_000_000,
		Status:             domain.VehicleStatusInStock,
		InvestorIDs:        []int32{2, 3},
		RentInvestorIDs:    []int32{4},
	}
}

func TestVehicleService_AddVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("Purchase Price Becomes First Cost Line", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		vehicleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		vehicleRepo.On("CreateCost", ctx, mock.MatchedBy(func(c *domain.VehicleCost) bool {
			return c.CostType == domain.CostTypePurchase && c.AmountCents == 1_000_000
		})).Return(nil)

		vehicle := inStockVehicle(0, 1)
		err := svc.AddVehicle(ctx, 10, vehicle)
		assert.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusInStock, vehicle.Status)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("Missing Vin Suffix Rejected", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		vehicle := inStockVehicle(0, 1)
		vehicle.VinSuffix = ""
		err := svc.AddVehicle(ctx, 10, vehicle)
		assert.Error(t, err)
		vehicleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Wrong Dealership Rejected", func(t *testing.T) {
		svc, _, _, profileRepo, _, _ := newVehicleService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 2), nil)

		err := svc.AddVehicle(ctx, 10, inStockVehicle(0, 1))
		assert.Equal(t, service.ErrUnauthorized, err)
	})
}

func TestVehicleService_RecordSale(t *testing.T) {
	ctx := context.Background()
	saleDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Totals And Bonus Accrual", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, ruleRepo, bonusRepo := newVehicleService()

		vehicle := inStockVehicle(5, 1)
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(vehicle, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		profileRepo.On("GetByID", ctx, int32(20)).Return(employeeProfile(20, 1), nil)
		vehicleRepo.On("ListCostsByVehicle", ctx, int32(5)).Return([]domain.VehicleCost{
			{VehicleID: 5, CostType: domain.CostTypePurchase, AmountCents: 1_000_000},
			{VehicleID: 5, CostType: domain.CostTypePreparation, AmountCents: 50_000},
		}, nil)
		vehicleRepo.On("CreateSale", ctx, mock.AnythingOfType("*domain.VehicleSale")).Return(nil)
		ruleRepo.On("GetActive", ctx, int32(1)).Return(&domain.ProfitRule{
			DealershipID:       1,
			RentInvestorRateBp: 1800,
			BonusPoolRateBp:    1000,
			SalespersonRateBp:  3600,
			InvestorRateBp:     3600,
			IsActive:           true,
		}, nil)
		// 420000 profit: 151200 salesperson, 151200 investors, 75600 rent,
		// bonus pool absorbs the remaining 42000.
		bonusRepo.On("AccruePool", ctx, int32(1), "2026-03", int64(42_000)).Return(nil)

		sale := &domain.VehicleSale{
			VehicleID:            5,
			SalePriceCents:       1_500_000,
			SaleDate:             saleDate,
			PreparationCostCents: 20_000,
			TransferCostCents:    10_000,
			SalespersonID:        20,
		}
		got, err := svc.RecordSale(ctx, 10, sale)
		assert.NoError(t, err)
		assert.Equal(t, int64(1_080_000), got.TotalCostCents)
		assert.Equal(t, int64(420_000), got.TotalProfitCents)
		assert.Equal(t, int32(1), got.DealershipID)
		bonusRepo.AssertExpectations(t)
	})

	t.Run("Loss Sale Allowed", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, ruleRepo, bonusRepo := newVehicleService()

		vehicle := inStockVehicle(5, 1)
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(vehicle, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		profileRepo.On("GetByID", ctx, int32(20)).Return(employeeProfile(20, 1), nil)
		vehicleRepo.On("ListCostsByVehicle", ctx, int32(5)).Return([]domain.VehicleCost{
			{VehicleID: 5, CostType: domain.CostTypePurchase, AmountCents: 1_000_000},
		}, nil)
		vehicleRepo.On("CreateSale", ctx, mock.AnythingOfType("*domain.VehicleSale")).Return(nil)
		ruleRepo.On("GetActive", ctx, int32(1)).Return(nil, assert.AnError)

		sale := &domain.VehicleSale{
			VehicleID:      5,
			SalePriceCents: 900_000,
			SaleDate:       saleDate,
			SalespersonID:  20,
		}
		got, err := svc.RecordSale(ctx, 10, sale)
		assert.NoError(t, err)
		assert.Equal(t, int64(-100_000), got.TotalProfitCents)
		bonusRepo.AssertNotCalled(t, "AccruePool")
	})

	t.Run("Sold Vehicle Rejected", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		vehicle := inStockVehicle(5, 1)
		vehicle.Status = domain.VehicleStatusSold
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(vehicle, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		_, err := svc.RecordSale(ctx, 10, &domain.VehicleSale{VehicleID: 5, SalePriceCents: 100, SalespersonID: 20})
		assert.Equal(t, service.ErrVehicleNotInStock, err)
	})

	t.Run("Loan Rebate Without Loan Rejected", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		vehicleRepo.On("GetByID", ctx, int32(5)).Return(inStockVehicle(5, 1), nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		sale := &domain.VehicleSale{
			VehicleID:       5,
			SalePriceCents:  1_500_000,
			IsLoan:          false,
			LoanRebateCents: 50_000,
			SalespersonID:   20,
		}
		_, err := svc.RecordSale(ctx, 10, sale)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "loan")
	})

	t.Run("Salesperson From Another Dealership Rejected", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		vehicleRepo.On("GetByID", ctx, int32(5)).Return(inStockVehicle(5, 1), nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		profileRepo.On("GetByID", ctx, int32(99)).Return(employeeProfile(99, 2), nil)

		sale := &domain.VehicleSale{VehicleID: 5, SalePriceCents: 1_500_000, SalespersonID: 99}
		_, err := svc.RecordSale(ctx, 10, sale)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "salesperson")
	})
}

func TestVehicleService_UpdateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("Sold Vehicle Immutable", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		sold := inStockVehicle(5, 1)
		sold.Status = domain.VehicleStatusSold
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(sold, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		err := svc.UpdateVehicle(ctx, 10, &domain.Vehicle{ID: 5, Brand: "Honda"})
		assert.Equal(t, service.ErrVehicleSold, err)
		vehicleRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Tenant And Status Pinned", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, _, _ := newVehicleService()

		vehicleRepo.On("GetByID", ctx, int32(5)).Return(inStockVehicle(5, 1), nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		vehicleRepo.On("Update", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.DealershipID == 1 && v.Status == domain.VehicleStatusInStock
		})).Return(nil)

		update := &domain.Vehicle{ID: 5, DealershipID: 9, Status: domain.VehicleStatusSold, Brand: "Honda"}
		err := svc.UpdateVehicle(ctx, 10, update)
		assert.NoError(t, err)
		vehicleRepo.AssertExpectations(t)
	})
}

func TestVehicleService_GetProfitBreakdown(t *testing.T) {
	ctx := context.Background()

	sale := &domain.VehicleSale{
		ID:               7,
		VehicleID:        5,
		DealershipID:     1,
		SalePriceCents:   1_500_000,
		SaleDate:         time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalCostCents:   1_080_000,
		TotalProfitCents: 420_000,
		SalespersonID:    20,
	}

	t.Run("Uses Rule In Effect On Sale Date", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, ruleRepo, _ := newVehicleService()

		vehicleRepo.On("GetSaleByID", ctx, int32(7)).Return(sale, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(inStockVehicle(5, 1), nil)
		// History is newest-first. The April rule postdates the sale, so the
		// January rule applies.
		ruleRepo.On("ListHistory", ctx, int32(1)).Return([]domain.ProfitRule{
			{
				DealershipID: 1, RentInvestorRateBp: 1000, BonusPoolRateBp: 2000,
				SalespersonRateBp: 3500, InvestorRateBp: 3500, IsActive: true,
				EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				DealershipID: 1, RentInvestorRateBp: 1800, BonusPoolRateBp: 1000,
				SalespersonRateBp: 3600, InvestorRateBp: 3600,
				EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		}, nil)

		breakdown, err := svc.GetProfitBreakdown(ctx, 10, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(420_000), breakdown.TotalProfitCents)
		assert.Equal(t, int64(151_200), breakdown.SalespersonCents)
		assert.Equal(t, int64(75_600), breakdown.RentInvestorShare.TotalCents)
		assert.Equal(t, int64(151_200), breakdown.InvestorShare.TotalCents)
		assert.Equal(t, int64(42_000), breakdown.BonusPoolCents)
		// Investor share splits evenly across the two investors.
		assert.Equal(t, []int64{75_600, 75_600}, breakdown.InvestorShare.PerRecipientCents)
	})

	t.Run("No Rule At All", func(t *testing.T) {
		svc, vehicleRepo, _, profileRepo, ruleRepo, _ := newVehicleService()

		vehicleRepo.On("GetSaleByID", ctx, int32(7)).Return(sale, nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		vehicleRepo.On("GetByID", ctx, int32(5)).Return(inStockVehicle(5, 1), nil)
		ruleRepo.On("ListHistory", ctx, int32(1)).Return([]domain.ProfitRule{}, nil)
		ruleRepo.On("GetActive", ctx, int32(1)).Return(nil, assert.AnError)

		_, err := svc.GetProfitBreakdown(ctx, 10, 7)
		assert.Equal(t, service.ErrNoProfitRule, err)
	})
}
