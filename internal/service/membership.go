package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/payment"
	"dealerdesk-backend/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid payment status transition")

type membershipService struct {
	membershipRepo repository.MembershipRepository
	vehicleRepo    repository.VehicleRepository
	profileRepo    repository.ProfileRepository
	provider       payment.Provider
	emailSvc       EmailService
}

func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	vehicleRepo repository.VehicleRepository,
	profileRepo repository.ProfileRepository,
	provider payment.Provider,
	emailSvc EmailService,
) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		vehicleRepo:    vehicleRepo,
		profileRepo:    profileRepo,
		provider:       provider,
		emailSvc:       emailSvc,
	}
}

func (s *membershipService) GetMembershipOverview(ctx context.Context, actorID, dealershipID int32) (*MembershipOverview, error) {
	logger.EnterMethod("membershipService.GetMembershipOverview", "actorID", actorID, "dealershipID", dealershipID)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}

	membership, err := s.membershipRepo.GetCurrent(ctx, dealershipID)
	if err != nil {
		logger.ExitMethodWithError("membershipService.GetMembershipOverview", err, "dealershipID", dealershipID)
		return nil, err
	}

	tier, err := s.membershipRepo.GetTierByID(ctx, membership.TierID)
	if err != nil {
		return nil, err
	}

	count, err := s.vehicleRepo.CountInStock(ctx, dealershipID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.membershipRepo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overview := &MembershipOverview{
		Membership:      membership,
		Tier:            tier,
		State:           membership.StateAt(now),
		DaysUntilExpiry: membership.DaysUntilExpiry(now),
		VehicleCount:    count,
		SuggestedTier:   domain.SuggestTier(tiers, count),
	}

	logger.ExitMethod("membershipService.GetMembershipOverview", "dealershipID", dealershipID, "state", overview.State)
	return overview, nil
}

func (s *membershipService) GetMembershipHistory(ctx context.Context, actorID, dealershipID int32) ([]domain.DealershipMembership, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.membershipRepo.ListHistory(ctx, dealershipID)
}

func (s *membershipService) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	return s.membershipRepo.ListTiers(ctx)
}

func (s *membershipService) RenewMembership(ctx context.Context, actorID, dealershipID, tierID int32) (*domain.MembershipPayment, string, error) {
	logger.EnterMethod("membershipService.RenewMembership", "actorID", actorID, "dealershipID", dealershipID, "tierID", tierID)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, "", err
	}
	if !actor.CanManageDealership(dealershipID) {
		return nil, "", ErrUnauthorized
	}

	tier, err := s.membershipRepo.GetTierByID(ctx, tierID)
	if err != nil {
		return nil, "", validationf("membership tier %d not found", tierID)
	}

	now := time.Now()
	end := now.AddDate(1, 0, 0)
	membership := &domain.DealershipMembership{
		DealershipID: dealershipID,
		TierID:       tier.ID,
		StartDate:    now,
		EndDate:      &end,
		IsTrial:      false,
		Status:       domain.MembershipStatusActive,
	}
	pay := &domain.MembershipPayment{
		DealershipID: dealershipID,
		OrderNo:      uuid.New().String(),
		AmountCents:  tier.AnnualFeeCents,
		Status:       domain.PaymentStatusPending,
	}

	if err := s.membershipRepo.CreateWithPayment(ctx, membership, pay); err != nil {
		logger.ExitMethodWithError("membershipService.RenewMembership", err, "dealershipID", dealershipID)
		return nil, "", err
	}

	logger.ExternalServiceCall("payment", "CreateOrder", "orderNo", pay.OrderNo, "amountCents", pay.AmountCents)
	order, err := s.provider.CreateOrder(ctx, pay.OrderNo, pay.AmountCents, fmt.Sprintf("%s membership renewal", tier.Name))
	if err != nil {
		logger.ExternalServiceResult("payment", "CreateOrder", err, "orderNo", pay.OrderNo)
		return nil, "", err
	}
	logger.ExternalServiceResult("payment", "CreateOrder", nil, "orderNo", pay.OrderNo)

	logger.ExitMethod("membershipService.RenewMembership", "membershipID", membership.ID, "orderNo", pay.OrderNo)
	return pay, order.PayURL, nil
}

// UpdatePaymentStatus applies a provider-reported status change, enforcing
// the payment lifecycle. Completed payments are stamped with paid_at and the
// dealership admins are notified, best effort.
func (s *membershipService) UpdatePaymentStatus(ctx context.Context, orderNo string, status domain.PaymentStatus) error {
	logger.EnterMethod("membershipService.UpdatePaymentStatus", "orderNo", orderNo, "status", status)

	pay, err := s.membershipRepo.GetPaymentByOrderNo(ctx, orderNo)
	if err != nil {
		logger.ExitMethodWithError("membershipService.UpdatePaymentStatus", err, "orderNo", orderNo)
		return err
	}
	if !pay.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, pay.Status, status)
	}

	var paidAt *time.Time
	if status == domain.PaymentStatusCompleted {
		now := time.Now()
		paidAt = &now
	}

	if err := s.membershipRepo.UpdatePaymentStatus(ctx, pay.ID, status, paidAt); err != nil {
		logger.ExitMethodWithError("membershipService.UpdatePaymentStatus", err, "orderNo", orderNo)
		return err
	}

	if status == domain.PaymentStatusCompleted || status == domain.PaymentStatusFailed {
		admins, err := s.profileRepo.ListAdminsByDealership(ctx, pay.DealershipID)
		if err == nil {
			success := status == domain.PaymentStatusCompleted
			for _, admin := range admins {
				_ = s.emailSvc.SendPaymentResultNotification(ctx, admin.Email, admin.Name, pay.OrderNo, pay.AmountCents, success)
			}
		}
	}

	logger.ExitMethod("membershipService.UpdatePaymentStatus", "orderNo", orderNo, "status", status)
	return nil
}
