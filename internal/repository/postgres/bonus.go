package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/repository"
)

type bonusRepository struct {
	db *sql.DB
}

func NewBonusRepository(db *sql.DB) repository.BonusRepository {
	return &bonusRepository{db: db}
}

const bonusColumns = `id, dealership_id, month, pool_cents, champion_id,
	       champion_bonus_cents, awarded_by, awarded_at, created_at`

// AccruePool upserts on (dealership_id, month) so concurrent sale recordings
// for the same month accumulate instead of conflicting.
func (r *bonusRepository) AccruePool(ctx context.Context, dealershipID int32, month string, amountCents int64) error {
	query := `
		INSERT INTO monthly_bonuses (dealership_id, month, pool_cents, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dealership_id, month)
		DO UPDATE SET pool_cents = monthly_bonuses.pool_cents + EXCLUDED.pool_cents
	`
	_, err := r.db.ExecContext(ctx, query, dealershipID, month, amountCents, time.Now())
	return err
}

// SetPool overwrites the pool total for the month. Awarded rows are left
// alone so reconciliation never disturbs a recorded champion.
func (r *bonusRepository) SetPool(ctx context.Context, dealershipID int32, month string, amountCents int64) error {
	query := `
		INSERT INTO monthly_bonuses (dealership_id, month, pool_cents, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dealership_id, month)
		DO UPDATE SET pool_cents = EXCLUDED.pool_cents
		WHERE monthly_bonuses.champion_id IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, dealershipID, month, amountCents, time.Now())
	return err
}

func (r *bonusRepository) GetByID(ctx context.Context, id int32) (*domain.MonthlyBonus, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM monthly_bonuses
		WHERE id = $1
	`
	b := &domain.MonthlyBonus{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.DealershipID, &b.Month, &b.PoolCents, &b.ChampionID,
		&b.ChampionBonusCents, &b.AwardedBy, &b.AwardedAt, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bonusRepository) GetByMonth(ctx context.Context, dealershipID int32, month string) (*domain.MonthlyBonus, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM monthly_bonuses
		WHERE dealership_id = $1 AND month = $2
	`
	b := &domain.MonthlyBonus{}
	err := r.db.QueryRowContext(ctx, query, dealershipID, month).Scan(
		&b.ID, &b.DealershipID, &b.Month, &b.PoolCents, &b.ChampionID,
		&b.ChampionBonusCents, &b.AwardedBy, &b.AwardedAt, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bonusRepository) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.MonthlyBonus, error) {
	query := `
		SELECT ` + bonusColumns + `
		FROM monthly_bonuses
		WHERE dealership_id = $1
		ORDER BY month DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bonuses := []domain.MonthlyBonus{}
	for rows.Next() {
		var b domain.MonthlyBonus
		err := rows.Scan(
			&b.ID, &b.DealershipID, &b.Month, &b.PoolCents, &b.ChampionID,
			&b.ChampionBonusCents, &b.AwardedBy, &b.AwardedAt, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, nil
}

// Award records the champion only once; a second award for the same month
// reports sql.ErrNoRows.
func (r *bonusRepository) Award(ctx context.Context, id, championID int32, amountCents int64, awardedBy int32, awardedAt time.Time) error {
	query := `
		UPDATE monthly_bonuses
		SET champion_id = $1, champion_bonus_cents = $2, awarded_by = $3, awarded_at = $4
		WHERE id = $5 AND champion_id IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, championID, amountCents, awardedBy, awardedAt, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
