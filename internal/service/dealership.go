package service

import (
	"context"
	"errors"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

var ErrCodeTaken = errors.New("dealership code already in use")

type dealershipService struct {
	dealershipRepo repository.DealershipRepository
	profileRepo    repository.ProfileRepository
	emailSvc       EmailService
}

func NewDealershipService(dealershipRepo repository.DealershipRepository, profileRepo repository.ProfileRepository, emailSvc EmailService) DealershipService {
	return &dealershipService{
		dealershipRepo: dealershipRepo,
		profileRepo:    profileRepo,
		emailSvc:       emailSvc,
	}
}

func (s *dealershipService) Register(ctx context.Context, name, code, contactName, contactPhone string) (*domain.Dealership, error) {
	logger.EnterMethod("dealershipService.Register", "name", name, "code", code)

	if name == "" || code == "" {
		return nil, validationf("dealership name and code are required")
	}
	if existing, err := s.dealershipRepo.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrCodeTaken
	}

	dealership := &domain.Dealership{
		Name:         name,
		Code:         code,
		Status:       domain.DealershipStatusPending,
		ContactName:  contactName,
		ContactPhone: contactPhone,
	}
	if err := s.dealershipRepo.Create(ctx, dealership); err != nil {
		logger.ExitMethodWithError("dealershipService.Register", err, "code", code)
		return nil, err
	}

	logger.ExitMethod("dealershipService.Register", "dealershipID", dealership.ID)
	return dealership, nil
}

func (s *dealershipService) Approve(ctx context.Context, operatorID, dealershipID int32) error {
	return s.transition(ctx, operatorID, dealershipID, domain.DealershipStatusPending, domain.DealershipStatusActive)
}

func (s *dealershipService) Reject(ctx context.Context, operatorID, dealershipID int32) error {
	return s.transition(ctx, operatorID, dealershipID, domain.DealershipStatusPending, domain.DealershipStatusRejected)
}

func (s *dealershipService) Deactivate(ctx context.Context, operatorID, dealershipID int32) error {
	return s.transition(ctx, operatorID, dealershipID, domain.DealershipStatusActive, domain.DealershipStatusInactive)
}

func (s *dealershipService) transition(ctx context.Context, operatorID, dealershipID int32, from, to domain.DealershipStatus) error {
	logger.EnterMethod("dealershipService.transition", "operatorID", operatorID, "dealershipID", dealershipID, "to", to)

	operator, err := s.profileRepo.GetByID(ctx, operatorID)
	if err != nil {
		return err
	}
	if operator.Role != domain.ProfileRoleSuperAdmin {
		return ErrUnauthorized
	}

	dealership, err := s.dealershipRepo.GetByID(ctx, dealershipID)
	if err != nil {
		logger.ExitMethodWithError("dealershipService.transition", err, "dealershipID", dealershipID)
		return err
	}
	if dealership.Status != from {
		return validationf("dealership is %s, expected %s", dealership.Status, from)
	}

	if err := s.dealershipRepo.UpdateStatus(ctx, dealershipID, to); err != nil {
		logger.ExitMethodWithError("dealershipService.transition", err, "dealershipID", dealershipID)
		return err
	}

	// Notify dealership admins of the status change, best effort.
	admins, err := s.profileRepo.ListAdminsByDealership(ctx, dealershipID)
	if err == nil {
		for _, admin := range admins {
			_ = s.emailSvc.SendDealershipStatusNotification(ctx, admin.Email, admin.Name, dealership.Name, string(to))
		}
	}

	logger.ExitMethod("dealershipService.transition", "dealershipID", dealershipID, "status", to)
	return nil
}

func (s *dealershipService) GetDealership(ctx context.Context, actorID, dealershipID int32) (*domain.Dealership, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.dealershipRepo.GetByID(ctx, dealershipID)
}

func (s *dealershipService) ListDealerships(ctx context.Context, operatorID int32, status domain.DealershipStatus) ([]domain.Dealership, error) {
	operator, err := s.profileRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator.Role != domain.ProfileRoleSuperAdmin {
		return nil, ErrUnauthorized
	}
	return s.dealershipRepo.List(ctx, status)
}

func (s *dealershipService) UpdateContact(ctx context.Context, actorID, dealershipID int32, contactName, contactPhone string) error {
	logger.EnterMethod("dealershipService.UpdateContact", "actorID", actorID, "dealershipID", dealershipID)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.CanManageDealership(dealershipID) {
		return ErrUnauthorized
	}

	if err := s.dealershipRepo.UpdateContact(ctx, dealershipID, contactName, contactPhone); err != nil {
		logger.ExitMethodWithError("dealershipService.UpdateContact", err, "dealershipID", dealershipID)
		return err
	}

	logger.ExitMethod("dealershipService.UpdateContact", "dealershipID", dealershipID)
	return nil
}

func (s *dealershipService) UpdateRentInvestors(ctx context.Context, actorID, dealershipID int32, rentInvestorIDs []int32) error {
	logger.EnterMethod("dealershipService.UpdateRentInvestors", "actorID", actorID, "dealershipID", dealershipID, "count", len(rentInvestorIDs))

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.CanManageDealership(dealershipID) {
		return ErrUnauthorized
	}

	// Rent investors must be profiles of this dealership.
	for _, id := range rentInvestorIDs {
		investor, err := s.profileRepo.GetByID(ctx, id)
		if err != nil {
			return validationf("rent investor %d not found", id)
		}
		if !investor.BelongsTo(dealershipID) {
			return validationf("rent investor %d does not belong to this dealership", id)
		}
	}

	if err := s.dealershipRepo.UpdateRentInvestors(ctx, dealershipID, rentInvestorIDs); err != nil {
		logger.ExitMethodWithError("dealershipService.UpdateRentInvestors", err, "dealershipID", dealershipID)
		return err
	}

	logger.ExitMethod("dealershipService.UpdateRentInvestors", "dealershipID", dealershipID)
	return nil
}
