package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type profitRuleRepository struct {
	db *sql.DB
}

func NewProfitRuleRepository(db *sql.DB) repository.ProfitRuleRepository {
	return &profitRuleRepository{db: db}
}

const profitRuleColumns = `id, dealership_id, rent_investor_rate_bp, bonus_pool_rate_bp,
	       salesperson_rate_bp, investor_rate_bp, is_active, effective_from, created_by, created_at`

func (r *profitRuleRepository) GetActive(ctx context.Context, dealershipID int32) (*domain.ProfitRule, error) {
	query := `
		SELECT ` + profitRuleColumns + `
		FROM profit_rules
		WHERE dealership_id = $1 AND is_active = TRUE
		ORDER BY effective_from DESC
		LIMIT 1
	`
	rule := &domain.ProfitRule{}
	err := r.db.QueryRowContext(ctx, query, dealershipID).Scan(
		&rule.ID, &rule.DealershipID, &rule.RentInvestorRateBp, &rule.BonusPoolRateBp,
		&rule.SalespersonRateBp, &rule.InvestorRateBp, &rule.IsActive, &rule.EffectiveFrom,
		&rule.CreatedBy, &rule.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// SetActive appends the rule as a new versioned row. The previous active rule
// is deactivated in the same transaction so exactly one row is active per
// dealership at any time, with history retained for audit.
func (r *profitRuleRepository) SetActive(ctx context.Context, rule *domain.ProfitRule) error {
	logger.EnterMethod("profitRuleRepository.SetActive", "dealershipID", rule.DealershipID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("profitRuleRepository.SetActive", err, "dealershipID", rule.DealershipID)
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE profit_rules SET is_active = FALSE WHERE dealership_id = $1 AND is_active = TRUE`,
		rule.DealershipID,
	)
	if err != nil {
		logger.ExitMethodWithError("profitRuleRepository.SetActive", err, "dealershipID", rule.DealershipID)
		return err
	}

	query := `
		INSERT INTO profit_rules (
			dealership_id, rent_investor_rate_bp, bonus_pool_rate_bp,
			salesperson_rate_bp, investor_rate_bp, is_active, effective_from, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8)
		RETURNING id, created_at
	`
	now := time.Now()
	if rule.EffectiveFrom.IsZero() {
		rule.EffectiveFrom = now
	}
	err = tx.QueryRowContext(ctx, query,
		rule.DealershipID, rule.RentInvestorRateBp, rule.BonusPoolRateBp,
		rule.SalespersonRateBp, rule.InvestorRateBp, rule.EffectiveFrom, rule.CreatedBy, now,
	).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("profitRuleRepository.SetActive", err, "dealershipID", rule.DealershipID)
		return err
	}
	rule.IsActive = true

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("profitRuleRepository.SetActive", err, "dealershipID", rule.DealershipID)
		return err
	}

	logger.ExitMethod("profitRuleRepository.SetActive", "ruleID", rule.ID)
	return nil
}

func (r *profitRuleRepository) ListHistory(ctx context.Context, dealershipID int32) ([]domain.ProfitRule, error) {
	query := `
		SELECT ` + profitRuleColumns + `
		FROM profit_rules
		WHERE dealership_id = $1
		ORDER BY effective_from DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []domain.ProfitRule{}
	for rows.Next() {
		var rule domain.ProfitRule
		err := rows.Scan(
			&rule.ID, &rule.DealershipID, &rule.RentInvestorRateBp, &rule.BonusPoolRateBp,
			&rule.SalespersonRateBp, &rule.InvestorRateBp, &rule.IsActive, &rule.EffectiveFrom,
			&rule.CreatedBy, &rule.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
