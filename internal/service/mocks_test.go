package service_test

import (
	"context"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/payment"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id int32) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockProfileRepo) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) ListAdminsByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.Profile), args.Error(1)
}

// MockDealershipRepo
type MockDealershipRepo struct {
	mock.Mock
}

func (m *MockDealershipRepo) Create(ctx context.Context, dealership *domain.Dealership) error {
	args := m.Called(ctx, dealership)
	return args.Error(0)
}
func (m *MockDealershipRepo) GetByID(ctx context.Context, id int32) (*domain.Dealership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dealership), args.Error(1)
}
func (m *MockDealershipRepo) GetByCode(ctx context.Context, code string) (*domain.Dealership, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dealership), args.Error(1)
}
func (m *MockDealershipRepo) List(ctx context.Context, status domain.DealershipStatus) ([]domain.Dealership, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Dealership), args.Error(1)
}
func (m *MockDealershipRepo) UpdateStatus(ctx context.Context, id int32, status domain.DealershipStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockDealershipRepo) UpdateContact(ctx context.Context, id int32, contactName, contactPhone string) error {
	args := m.Called(ctx, id, contactName, contactPhone)
	return args.Error(0)
}
func (m *MockDealershipRepo) UpdateRentInvestors(ctx context.Context, id int32, rentInvestorIDs []int32) error {
	args := m.Called(ctx, id, rentInvestorIDs)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByDealership(ctx context.Context, dealershipID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	args := m.Called(ctx, dealershipID, status)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) CountInStock(ctx context.Context, dealershipID int32) (int32, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockVehicleRepo) CreateCost(ctx context.Context, cost *domain.VehicleCost) error {
	args := m.Called(ctx, cost)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListCostsByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleCost, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.VehicleCost), args.Error(1)
}
func (m *MockVehicleRepo) CreateSale(ctx context.Context, sale *domain.VehicleSale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetSaleByID(ctx context.Context, id int32) (*domain.VehicleSale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSale), args.Error(1)
}
func (m *MockVehicleRepo) GetSaleByVehicle(ctx context.Context, vehicleID int32) (*domain.VehicleSale, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSale), args.Error(1)
}
func (m *MockVehicleRepo) ListSalesByMonth(ctx context.Context, dealershipID int32, year, month int) ([]domain.VehicleSale, error) {
	args := m.Called(ctx, dealershipID, year, month)
	return args.Get(0).([]domain.VehicleSale), args.Error(1)
}

// MockProfitRuleRepo
type MockProfitRuleRepo struct {
	mock.Mock
}

func (m *MockProfitRuleRepo) GetActive(ctx context.Context, dealershipID int32) (*domain.ProfitRule, error) {
	args := m.Called(ctx, dealershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitRule), args.Error(1)
}
func (m *MockProfitRuleRepo) SetActive(ctx context.Context, rule *domain.ProfitRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}
func (m *MockProfitRuleRepo) ListHistory(ctx context.Context, dealershipID int32) ([]domain.ProfitRule, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.ProfitRule), args.Error(1)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) GetCurrent(ctx context.Context, dealershipID int32) (*domain.DealershipMembership, error) {
	args := m.Called(ctx, dealershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealershipMembership), args.Error(1)
}
func (m *MockMembershipRepo) ListHistory(ctx context.Context, dealershipID int32) ([]domain.DealershipMembership, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.DealershipMembership), args.Error(1)
}
func (m *MockMembershipRepo) CreateWithPayment(ctx context.Context, membership *domain.DealershipMembership, payment *domain.MembershipPayment) error {
	args := m.Called(ctx, membership, payment)
	return args.Error(0)
}
func (m *MockMembershipRepo) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MembershipTier), args.Error(1)
}
func (m *MockMembershipRepo) GetTierByID(ctx context.Context, id int32) (*domain.MembershipTier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipTier), args.Error(1)
}
func (m *MockMembershipRepo) GetPaymentByOrderNo(ctx context.Context, orderNo string) (*domain.MembershipPayment, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipPayment), args.Error(1)
}
func (m *MockMembershipRepo) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, paidAt *time.Time) error {
	args := m.Called(ctx, id, status, paidAt)
	return args.Error(0)
}
func (m *MockMembershipRepo) ListStalePayments(ctx context.Context, olderThan time.Time) ([]domain.MembershipPayment, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.MembershipPayment), args.Error(1)
}
func (m *MockMembershipRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMembershipRepo) ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]domain.DealershipMembership, error) {
	args := m.Called(ctx, now, days)
	return args.Get(0).([]domain.DealershipMembership), args.Error(1)
}

// MockFeedbackRepo
type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}
func (m *MockFeedbackRepo) GetByID(ctx context.Context, id int32) (*domain.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}
func (m *MockFeedbackRepo) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Feedback, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}
func (m *MockFeedbackRepo) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}
func (m *MockFeedbackRepo) ListReplies(ctx context.Context, parentID int32) ([]domain.Feedback, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}
func (m *MockFeedbackRepo) MarkAsRead(ctx context.Context, id int32, readAt time.Time) error {
	args := m.Called(ctx, id, readAt)
	return args.Error(0)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) ListByMonth(ctx context.Context, dealershipID int32, month string) ([]domain.Expense, error) {
	args := m.Called(ctx, dealershipID, month)
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) SummaryByMonth(ctx context.Context, dealershipID int32, month string) (*domain.ExpenseSummary, error) {
	args := m.Called(ctx, dealershipID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseSummary), args.Error(1)
}

// MockBonusRepo
type MockBonusRepo struct {
	mock.Mock
}

func (m *MockBonusRepo) AccruePool(ctx context.Context, dealershipID int32, month string, amountCents int64) error {
	args := m.Called(ctx, dealershipID, month, amountCents)
	return args.Error(0)
}
func (m *MockBonusRepo) SetPool(ctx context.Context, dealershipID int32, month string, amountCents int64) error {
	args := m.Called(ctx, dealershipID, month, amountCents)
	return args.Error(0)
}
func (m *MockBonusRepo) GetByID(ctx context.Context, id int32) (*domain.MonthlyBonus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyBonus), args.Error(1)
}
func (m *MockBonusRepo) GetByMonth(ctx context.Context, dealershipID int32, month string) (*domain.MonthlyBonus, error) {
	args := m.Called(ctx, dealershipID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyBonus), args.Error(1)
}
func (m *MockBonusRepo) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.MonthlyBonus, error) {
	args := m.Called(ctx, dealershipID)
	return args.Get(0).([]domain.MonthlyBonus), args.Error(1)
}
func (m *MockBonusRepo) Award(ctx context.Context, id, championID int32, amountCents int64, awardedBy int32, awardedAt time.Time) error {
	args := m.Called(ctx, id, championID, amountCents, awardedBy, awardedAt)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendMembershipExpiryReminder(ctx context.Context, email, name, dealershipName string, daysLeft int32) error {
	args := m.Called(ctx, email, name, dealershipName, daysLeft)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentResultNotification(ctx context.Context, email, name, orderNo string, amountCents int64, success bool) error {
	args := m.Called(ctx, email, name, orderNo, amountCents, success)
	return args.Error(0)
}
func (m *MockEmailService) SendFeedbackReceivedNotification(ctx context.Context, email, name, title string) error {
	args := m.Called(ctx, email, name, title)
	return args.Error(0)
}
func (m *MockEmailService) SendDealershipStatusNotification(ctx context.Context, email, name, dealershipName, status string) error {
	args := m.Called(ctx, email, name, dealershipName, status)
	return args.Error(0)
}

// MockPaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateOrder(ctx context.Context, orderNo string, amountCents int64, subject string) (*payment.Order, error) {
	args := m.Called(ctx, orderNo, amountCents, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}
func (m *MockPaymentProvider) QueryOrder(ctx context.Context, orderNo string) (*payment.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}
func (m *MockPaymentProvider) CancelOrder(ctx context.Context, orderNo string) error {
	args := m.Called(ctx, orderNo)
	return args.Error(0)
}
