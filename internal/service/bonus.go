package service

import (
	"context"
	"errors"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

var ErrBonusAlreadyAwarded = errors.New("bonus for this month has already been awarded")

type bonusService struct {
	bonusRepo   repository.BonusRepository
	profileRepo repository.ProfileRepository
}

func NewBonusService(bonusRepo repository.BonusRepository, profileRepo repository.ProfileRepository) BonusService {
	return &bonusService{
		bonusRepo:   bonusRepo,
		profileRepo: profileRepo,
	}
}

func (s *bonusService) GetMonthlyBonus(ctx context.Context, actorID, dealershipID int32, month string) (*domain.MonthlyBonus, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.bonusRepo.GetByMonth(ctx, dealershipID, month)
}

func (s *bonusService) ListMonthlyBonuses(ctx context.Context, actorID, dealershipID int32) ([]domain.MonthlyBonus, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.bonusRepo.ListByDealership(ctx, dealershipID)
}

// AwardChampion records the sales champion for a month. Distribution is a
// manual administrative decision; the pool is never paid out automatically.
func (s *bonusService) AwardChampion(ctx context.Context, actorID, bonusID, championID int32, amountCents int64) error {
	logger.EnterMethod("bonusService.AwardChampion", "actorID", actorID, "bonusID", bonusID, "championID", championID)

	bonus, err := s.bonusRepo.GetByID(ctx, bonusID)
	if err != nil {
		logger.ExitMethodWithError("bonusService.AwardChampion", err, "bonusID", bonusID)
		return err
	}

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.CanManageDealership(bonus.DealershipID) {
		return ErrUnauthorized
	}
	if bonus.ChampionID != nil {
		return ErrBonusAlreadyAwarded
	}
	if amountCents <= 0 || amountCents > bonus.PoolCents {
		return validationf("award amount must be between 1 and the pool total %d", bonus.PoolCents)
	}

	champion, err := s.profileRepo.GetByID(ctx, championID)
	if err != nil {
		return validationf("champion %d not found", championID)
	}
	if !champion.BelongsTo(bonus.DealershipID) {
		return validationf("champion %d does not belong to this dealership", championID)
	}

	if err := s.bonusRepo.Award(ctx, bonusID, championID, amountCents, actor.ID, time.Now()); err != nil {
		logger.ExitMethodWithError("bonusService.AwardChampion", err, "bonusID", bonusID)
		return err
	}

	logger.ExitMethod("bonusService.AwardChampion", "bonusID", bonusID, "championID", championID)
	return nil
}
