package repository

import (
	"context"
	"time"

	"dealerdesk-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int32) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error)
	ListAdminsByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error)
}

type DealershipRepository interface {
	Create(ctx context.Context, dealership *domain.Dealership) error
	GetByID(ctx context.Context, id int32) (*domain.Dealership, error)
	GetByCode(ctx context.Context, code string) (*domain.Dealership, error)
	List(ctx context.Context, status domain.DealershipStatus) ([]domain.Dealership, error)
	UpdateStatus(ctx context.Context, id int32, status domain.DealershipStatus) error
	UpdateContact(ctx context.Context, id int32, contactName, contactPhone string) error
	UpdateRentInvestors(ctx context.Context, id int32, rentInvestorIDs []int32) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	ListByDealership(ctx context.Context, dealershipID int32, status domain.VehicleStatus) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	CountInStock(ctx context.Context, dealershipID int32) (int32, error)

	// Cost lines are immutable once created.
	CreateCost(ctx context.Context, cost *domain.VehicleCost) error
	ListCostsByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleCost, error)

	// CreateSale inserts the sale and marks the vehicle sold in one transaction.
	CreateSale(ctx context.Context, sale *domain.VehicleSale) error
	GetSaleByID(ctx context.Context, id int32) (*domain.VehicleSale, error)
	GetSaleByVehicle(ctx context.Context, vehicleID int32) (*domain.VehicleSale, error)
	ListSalesByMonth(ctx context.Context, dealershipID int32, year, month int) ([]domain.VehicleSale, error)
}

type ProfitRuleRepository interface {
	GetActive(ctx context.Context, dealershipID int32) (*domain.ProfitRule, error)
	// SetActive deactivates the current active rule and inserts the new row
	// in one transaction, keeping full history.
	SetActive(ctx context.Context, rule *domain.ProfitRule) error
	ListHistory(ctx context.Context, dealershipID int32) ([]domain.ProfitRule, error)
}

type MembershipRepository interface {
	GetCurrent(ctx context.Context, dealershipID int32) (*domain.DealershipMembership, error)
	ListHistory(ctx context.Context, dealershipID int32) ([]domain.DealershipMembership, error)
	// CreateWithPayment inserts the renewal membership row and its pending
	// payment in one transaction.
	CreateWithPayment(ctx context.Context, membership *domain.DealershipMembership, payment *domain.MembershipPayment) error

	ListTiers(ctx context.Context) ([]domain.MembershipTier, error)
	GetTierByID(ctx context.Context, id int32) (*domain.MembershipTier, error)

	GetPaymentByOrderNo(ctx context.Context, orderNo string) (*domain.MembershipPayment, error)
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, paidAt *time.Time) error
	ListStalePayments(ctx context.Context, olderThan time.Time) ([]domain.MembershipPayment, error)

	// Job support.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]domain.DealershipMembership, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByID(ctx context.Context, id int32) (*domain.Feedback, error)
	ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	ListReplies(ctx context.Context, parentID int32) ([]domain.Feedback, error)
	MarkAsRead(ctx context.Context, id int32, readAt time.Time) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id int32) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	ListByMonth(ctx context.Context, dealershipID int32, month string) ([]domain.Expense, error)
	SummaryByMonth(ctx context.Context, dealershipID int32, month string) (*domain.ExpenseSummary, error)
}

type BonusRepository interface {
	// AccruePool adds to the dealership's pool for the month, creating the
	// row when absent.
	AccruePool(ctx context.Context, dealershipID int32, month string, amountCents int64) error
	// SetPool overwrites the pool total, used by monthly reconciliation.
	SetPool(ctx context.Context, dealershipID int32, month string, amountCents int64) error
	GetByID(ctx context.Context, id int32) (*domain.MonthlyBonus, error)
	GetByMonth(ctx context.Context, dealershipID int32, month string) (*domain.MonthlyBonus, error)
	ListByDealership(ctx context.Context, dealershipID int32) ([]domain.MonthlyBonus, error)
	Award(ctx context.Context, id, championID int32, amountCents int64, awardedBy int32, awardedAt time.Time) error
}
