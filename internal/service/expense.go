package service

import (
	"context"
	"regexp"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	profileRepo repository.ProfileRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, profileRepo repository.ProfileRepository) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		profileRepo: profileRepo,
	}
}

func validateExpense(expense *domain.Expense) error {
	if expense.AmountCents <= 0 {
		return validationf("expense amount must be positive")
	}
	if expense.ExpenseDate.IsZero() {
		return validationf("expense date is required")
	}
	if expense.Month == "" {
		expense.Month = expense.ExpenseDate.Format("2006-01")
	}
	if !monthPattern.MatchString(expense.Month) {
		return validationf("invalid month format: %s", expense.Month)
	}
	return nil
}

func (s *expenseService) AddExpense(ctx context.Context, actorID int32, expense *domain.Expense) error {
	logger.EnterMethod("expenseService.AddExpense", "actorID", actorID, "dealershipID", expense.DealershipID, "type", expense.ExpenseType)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.BelongsTo(expense.DealershipID) {
		return ErrUnauthorized
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	expense.CreatedBy = actor.ID
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		logger.ExitMethodWithError("expenseService.AddExpense", err, "dealershipID", expense.DealershipID)
		return err
	}

	logger.ExitMethod("expenseService.AddExpense", "expenseID", expense.ID)
	return nil
}

// UpdateExpense is admin-only; any staff member may create.
func (s *expenseService) UpdateExpense(ctx context.Context, actorID int32, expense *domain.Expense) error {
	logger.EnterMethod("expenseService.UpdateExpense", "actorID", actorID, "expenseID", expense.ID)

	existing, err := s.expenseRepo.GetByID(ctx, expense.ID)
	if err != nil {
		return err
	}

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.CanManageDealership(existing.DealershipID) {
		return ErrUnauthorized
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	expense.DealershipID = existing.DealershipID
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		logger.ExitMethodWithError("expenseService.UpdateExpense", err, "expenseID", expense.ID)
		return err
	}

	logger.ExitMethod("expenseService.UpdateExpense", "expenseID", expense.ID)
	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context, actorID, dealershipID int32, month string) ([]domain.Expense, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	if !monthPattern.MatchString(month) {
		return nil, validationf("invalid month format: %s", month)
	}
	return s.expenseRepo.ListByMonth(ctx, dealershipID, month)
}

func (s *expenseService) GetExpenseSummary(ctx context.Context, actorID, dealershipID int32, month string) (*domain.ExpenseSummary, error) {
	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}
	if !monthPattern.MatchString(month) {
		return nil, validationf("invalid month format: %s", month)
	}
	return s.expenseRepo.SummaryByMonth(ctx, dealershipID, month)
}
