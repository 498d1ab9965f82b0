package service_test

import (
	"context"
	"testing"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/payment"
	"dealerdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMembershipService() (service.MembershipService, *MockMembershipRepo, *MockVehicleRepo, *MockProfileRepo, *MockPaymentProvider, *MockEmailService) {
	membershipRepo := new(MockMembershipRepo)
	vehicleRepo := new(MockVehicleRepo)
	profileRepo := new(MockProfileRepo)
	provider := new(MockPaymentProvider)
	emailSvc := new(MockEmailService)
	svc := service.NewMembershipService(membershipRepo, vehicleRepo, profileRepo, provider, emailSvc)
	return svc, membershipRepo, vehicleRepo, profileRepo, provider, emailSvc
}

func TestMembershipService_RenewMembership(t *testing.T) {
	ctx := context.Background()
	tier := &domain.MembershipTier{ID: 2, TierLevel: 2, Name: "Standard", MinVehicles: 11, AnnualFeeCents: 500_000}

	t.Run("Admin Renews", func(t *testing.T) {
		svc, membershipRepo, _, profileRepo, provider, _ := newMembershipService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		membershipRepo.On("GetTierByID", ctx, int32(2)).Return(tier, nil)
		membershipRepo.On("CreateWithPayment", ctx,
			mock.MatchedBy(func(m *domain.DealershipMembership) bool {
				if m.DealershipID != 1 || m.TierID != 2 || m.IsTrial || m.EndDate == nil {
					return false
				}
				// Renewal opens a one-year window.
				return m.EndDate.Sub(m.StartDate) > 360*24*time.Hour
			}),
			mock.MatchedBy(func(p *domain.MembershipPayment) bool {
				return p.DealershipID == 1 && p.AmountCents == 500_000 &&
					p.Status == domain.PaymentStatusPending && p.OrderNo != ""
			}),
		).Return(nil)
		provider.On("CreateOrder", ctx, mock.AnythingOfType("string"), int64(500_000), "Standard membership renewal").
			Return(&payment.Order{PayURL: "http://pay.example.com/x"}, nil)

		pay, payURL, err := svc.RenewMembership(ctx, 10, 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(500_000), pay.AmountCents)
		assert.Equal(t, "http://pay.example.com/x", payURL)
		membershipRepo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Employee Cannot Renew", func(t *testing.T) {
		svc, membershipRepo, _, profileRepo, _, _ := newMembershipService()

		profileRepo.On("GetByID", ctx, int32(20)).Return(employeeProfile(20, 1), nil)

		_, _, err := svc.RenewMembership(ctx, 20, 1, 2)
		assert.Equal(t, service.ErrUnauthorized, err)
		membershipRepo.AssertNotCalled(t, "CreateWithPayment")
	})

	t.Run("Unknown Tier Rejected", func(t *testing.T) {
		svc, membershipRepo, _, profileRepo, _, _ := newMembershipService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		membershipRepo.On("GetTierByID", ctx, int32(99)).Return(nil, assert.AnError)

		_, _, err := svc.RenewMembership(ctx, 10, 1, 99)
		assert.Error(t, err)
		membershipRepo.AssertNotCalled(t, "CreateWithPayment")
	})
}

func TestMembershipService_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	pendingPayment := func() *domain.MembershipPayment {
		return &domain.MembershipPayment{
			ID:           3,
			MembershipID: 8,
			DealershipID: 1,
			OrderNo:      "order-1",
			AmountCents:  500_000,
			Status:       domain.PaymentStatusPending,
		}
	}

	t.Run("Pending To Completed Stamps PaidAt And Notifies", func(t *testing.T) {
		svc, membershipRepo, _, profileRepo, _, emailSvc := newMembershipService()

		membershipRepo.On("GetPaymentByOrderNo", ctx, "order-1").Return(pendingPayment(), nil)
		membershipRepo.On("UpdatePaymentStatus", ctx, int32(3), domain.PaymentStatusCompleted,
			mock.MatchedBy(func(paidAt *time.Time) bool { return paidAt != nil })).Return(nil)
		profileRepo.On("ListAdminsByDealership", ctx, int32(1)).Return([]domain.Profile{*adminProfile(10, 1)}, nil)
		emailSvc.On("SendPaymentResultNotification", ctx, "admin@example.com", "Admin", "order-1", int64(500_000), true).Return(nil)

		err := svc.UpdatePaymentStatus(ctx, "order-1", domain.PaymentStatusCompleted)
		assert.NoError(t, err)
		membershipRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Pending To Cancelled Without Notification", func(t *testing.T) {
		svc, membershipRepo, _, profileRepo, _, emailSvc := newMembershipService()

		membershipRepo.On("GetPaymentByOrderNo", ctx, "order-1").Return(pendingPayment(), nil)
		membershipRepo.On("UpdatePaymentStatus", ctx, int32(3), domain.PaymentStatusCancelled, (*time.Time)(nil)).Return(nil)

		err := svc.UpdatePaymentStatus(ctx, "order-1", domain.PaymentStatusCancelled)
		assert.NoError(t, err)
		profileRepo.AssertNotCalled(t, "ListAdminsByDealership")
		emailSvc.AssertNotCalled(t, "SendPaymentResultNotification")
	})

	t.Run("Completed Cannot Go Back To Pending", func(t *testing.T) {
		svc, membershipRepo, _, _, _, _ := newMembershipService()

		completed := pendingPayment()
		completed.Status = domain.PaymentStatusCompleted
		membershipRepo.On("GetPaymentByOrderNo", ctx, "order-1").Return(completed, nil)

		err := svc.UpdatePaymentStatus(ctx, "order-1", domain.PaymentStatusPending)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
		membershipRepo.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("Completed Can Refund", func(t *testing.T) {
		svc, membershipRepo, _, _, _, _ := newMembershipService()

		completed := pendingPayment()
		completed.Status = domain.PaymentStatusCompleted
		membershipRepo.On("GetPaymentByOrderNo", ctx, "order-1").Return(completed, nil)
		membershipRepo.On("UpdatePaymentStatus", ctx, int32(3), domain.PaymentStatusRefunded, (*time.Time)(nil)).Return(nil)

		err := svc.UpdatePaymentStatus(ctx, "order-1", domain.PaymentStatusRefunded)
		assert.NoError(t, err)
	})
}

func TestMembershipService_GetMembershipOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("Assembles Overview With Suggested Tier", func(t *testing.T) {
		svc, membershipRepo, vehicleRepo, profileRepo, _, _ := newMembershipService()

		end := time.Now().AddDate(0, 0, 30)
		membership := &domain.DealershipMembership{
			ID: 8, DealershipID: 1, TierID: 1,
			StartDate: time.Now().AddDate(-1, 0, 1),
			EndDate:   &end,
			Status:    domain.MembershipStatusActive,
		}
		ten := int32(10)
		tiers := []domain.MembershipTier{
			{ID: 1, TierLevel: 1, Name: "Starter", MinVehicles: 0, MaxVehicles: &ten, AnnualFeeCents: 200_000},
			{ID: 2, TierLevel: 2, Name: "Standard", MinVehicles: 11, AnnualFeeCents: 500_000},
		}

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		membershipRepo.On("GetCurrent", ctx, int32(1)).Return(membership, nil)
		membershipRepo.On("GetTierByID", ctx, int32(1)).Return(&tiers[0], nil)
		vehicleRepo.On("CountInStock", ctx, int32(1)).Return(int32(14), nil)
		membershipRepo.On("ListTiers", ctx).Return(tiers, nil)

		overview, err := svc.GetMembershipOverview(ctx, 10, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.MembershipStateActive, overview.State)
		assert.Equal(t, int32(14), overview.VehicleCount)
		// 14 vehicles exceed the Starter range, so Standard is suggested.
		assert.Equal(t, int32(2), overview.SuggestedTier.ID)
		assert.NotNil(t, overview.DaysUntilExpiry)
	})
}
