package service

import (
	"context"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/profit"
)

type AuthService interface {
	Signup(ctx context.Context, dealershipCode, name, email, phone, password string) (*domain.Profile, string, string, error) // profile, access, refresh
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type DealershipService interface {
	Register(ctx context.Context, name, code, contactName, contactPhone string) (*domain.Dealership, error)
	Approve(ctx context.Context, operatorID, dealershipID int32) error
	Reject(ctx context.Context, operatorID, dealershipID int32) error
	Deactivate(ctx context.Context, operatorID, dealershipID int32) error
	GetDealership(ctx context.Context, actorID, dealershipID int32) (*domain.Dealership, error)
	ListDealerships(ctx context.Context, operatorID int32, status domain.DealershipStatus) ([]domain.Dealership, error)
	UpdateContact(ctx context.Context, actorID, dealershipID int32, contactName, contactPhone string) error
	UpdateRentInvestors(ctx context.Context, actorID, dealershipID int32, rentInvestorIDs []int32) error
}

type VehicleService interface {
	AddVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, actorID, vehicleID int32) (*domain.Vehicle, []domain.VehicleCost, error)
	ListVehicles(ctx context.Context, actorID, dealershipID int32, status domain.VehicleStatus) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, actorID int32, vehicle *domain.Vehicle) error
	AddCost(ctx context.Context, actorID int32, cost *domain.VehicleCost) error

	RecordSale(ctx context.Context, actorID int32, sale *domain.VehicleSale) (*domain.VehicleSale, error)
	GetSale(ctx context.Context, actorID, saleID int32) (*domain.VehicleSale, error)
	ListSalesByMonth(ctx context.Context, actorID, dealershipID int32, year, month int) ([]domain.VehicleSale, error)
	GetProfitBreakdown(ctx context.Context, actorID, saleID int32) (*profit.Breakdown, error)
}

type ProfitRuleService interface {
	GetActiveRule(ctx context.Context, actorID, dealershipID int32) (*domain.ProfitRule, error)
	ListRuleHistory(ctx context.Context, actorID, dealershipID int32) ([]domain.ProfitRule, error)
	// SetRule takes decimal percentages (e.g. 18.0) and stores basis points.
	SetRule(ctx context.Context, actorID, dealershipID int32, rentInvestorPct, bonusPoolPct, salespersonPct, investorPct float64) (*domain.ProfitRule, error)
}

// MembershipOverview is the derived view of a dealership's current membership.
type MembershipOverview struct {
	Membership      *domain.DealershipMembership `json:"membership"`
	Tier            *domain.MembershipTier       `json:"tier"`
	State           domain.MembershipState       `json:"state"`
	DaysUntilExpiry *int32                       `json:"days_until_expiry"`
	VehicleCount    int32                        `json:"vehicle_count"`
	SuggestedTier   *domain.MembershipTier       `json:"suggested_tier"`
}

type MembershipService interface {
	GetMembershipOverview(ctx context.Context, actorID, dealershipID int32) (*MembershipOverview, error)
	GetMembershipHistory(ctx context.Context, actorID, dealershipID int32) ([]domain.DealershipMembership, error)
	ListTiers(ctx context.Context) ([]domain.MembershipTier, error)
	// RenewMembership appends a new one-year window and a pending payment;
	// returns the payment and the provider pay URL.
	RenewMembership(ctx context.Context, actorID, dealershipID, tierID int32) (*domain.MembershipPayment, string, error)
	// UpdatePaymentStatus is driven by the payment provider callback.
	UpdatePaymentStatus(ctx context.Context, orderNo string, status domain.PaymentStatus) error
}

type FeedbackService interface {
	CreateFeedback(ctx context.Context, actorID, dealershipID int32, messageType domain.FeedbackType, title, content string) (*domain.Feedback, error)
	ReplyToFeedback(ctx context.Context, actorID, parentID int32, content string) (*domain.Feedback, error)
	GetFeedback(ctx context.Context, actorID, feedbackID int32) (*domain.Feedback, error)
	ListFeedbacks(ctx context.Context, actorID int32, dealershipID *int32) ([]domain.Feedback, error)
	MarkAsRead(ctx context.Context, actorID, feedbackID int32) error
}

type ExpenseService interface {
	AddExpense(ctx context.Context, actorID int32, expense *domain.Expense) error
	UpdateExpense(ctx context.Context, actorID int32, expense *domain.Expense) error
	ListExpenses(ctx context.Context, actorID, dealershipID int32, month string) ([]domain.Expense, error)
	GetExpenseSummary(ctx context.Context, actorID, dealershipID int32, month string) (*domain.ExpenseSummary, error)
}

type BonusService interface {
	GetMonthlyBonus(ctx context.Context, actorID, dealershipID int32, month string) (*domain.MonthlyBonus, error)
	ListMonthlyBonuses(ctx context.Context, actorID, dealershipID int32) ([]domain.MonthlyBonus, error)
	AwardChampion(ctx context.Context, actorID, bonusID, championID int32, amountCents int64) error
}

type EmailService interface {
	SendMembershipExpiryReminder(ctx context.Context, email, name, dealershipName string, daysLeft int32) error
	SendPaymentResultNotification(ctx context.Context, email, name, orderNo string, amountCents int64, success bool) error
	SendFeedbackReceivedNotification(ctx context.Context, email, name, title string) error
	SendDealershipStatusNotification(ctx context.Context, email, name, dealershipName, status string) error
}
