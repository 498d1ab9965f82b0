package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipColumns = `id, dealership_id, tier_id, start_date, end_date,
	       is_trial, trial_end_date, status, created_at`

func scanMembership(row interface{ Scan(...interface{}) error }) (*domain.DealershipMembership, error) {
	m := &domain.DealershipMembership{}
	err := row.Scan(
		&m.ID, &m.DealershipID, &m.TierID, &m.StartDate, &m.EndDate,
		&m.IsTrial, &m.TrialEndDate, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) GetCurrent(ctx context.Context, dealershipID int32) (*domain.DealershipMembership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM dealership_memberships
		WHERE dealership_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanMembership(r.db.QueryRowContext(ctx, query, dealershipID))
}

func (r *membershipRepository) ListHistory(ctx context.Context, dealershipID int32) ([]domain.DealershipMembership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM dealership_memberships
		WHERE dealership_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []domain.DealershipMembership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	return memberships, nil
}

// CreateWithPayment appends the renewal row and its pending payment order
// atomically so a renewal never exists without a payment to settle it.
func (r *membershipRepository) CreateWithPayment(ctx context.Context, membership *domain.DealershipMembership, payment *domain.MembershipPayment) error {
	logger.EnterMethod("membershipRepository.CreateWithPayment", "dealershipID", membership.DealershipID, "tierID", membership.TierID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("membershipRepository.CreateWithPayment", err, "dealershipID", membership.DealershipID)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO dealership_memberships (
			dealership_id, tier_id, start_date, end_date, is_trial, trial_end_date, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		membership.DealershipID, membership.TierID, membership.StartDate, membership.EndDate,
		membership.IsTrial, membership.TrialEndDate, membership.Status, now,
	).Scan(&membership.ID, &membership.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("membershipRepository.CreateWithPayment", err, "dealershipID", membership.DealershipID)
		return err
	}

	payment.MembershipID = membership.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO membership_payments (
			membership_id, dealership_id, order_no, amount_cents, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		payment.MembershipID, payment.DealershipID, payment.OrderNo, payment.AmountCents,
		payment.Status, now,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("membershipRepository.CreateWithPayment", err, "dealershipID", membership.DealershipID)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("membershipRepository.CreateWithPayment", err, "dealershipID", membership.DealershipID)
		return err
	}

	logger.ExitMethod("membershipRepository.CreateWithPayment", "membershipID", membership.ID, "orderNo", payment.OrderNo)
	return nil
}

func (r *membershipRepository) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	query := `
		SELECT id, tier_level, name, min_vehicles, max_vehicles, annual_fee_cents
		FROM membership_tiers
		ORDER BY tier_level ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := []domain.MembershipTier{}
	for rows.Next() {
		var t domain.MembershipTier
		err := rows.Scan(&t.ID, &t.TierLevel, &t.Name, &t.MinVehicles, &t.MaxVehicles, &t.AnnualFeeCents)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

func (r *membershipRepository) GetTierByID(ctx context.Context, id int32) (*domain.MembershipTier, error) {
	query := `
		SELECT id, tier_level, name, min_vehicles, max_vehicles, annual_fee_cents
		FROM membership_tiers
		WHERE id = $1
	`
	t := &domain.MembershipTier{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TierLevel, &t.Name, &t.MinVehicles, &t.MaxVehicles, &t.AnnualFeeCents,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

const paymentColumns = `id, membership_id, dealership_id, order_no, amount_cents, status, paid_at, created_at`

func (r *membershipRepository) GetPaymentByOrderNo(ctx context.Context, orderNo string) (*domain.MembershipPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM membership_payments
		WHERE order_no = $1
	`
	p := &domain.MembershipPayment{}
	err := r.db.QueryRowContext(ctx, query, orderNo).Scan(
		&p.ID, &p.MembershipID, &p.DealershipID, &p.OrderNo, &p.AmountCents,
		&p.Status, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *membershipRepository) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus, paidAt *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE membership_payments SET status = $1, paid_at = $2 WHERE id = $3`,
		status, paidAt, id,
	)
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

func (r *membershipRepository) ListStalePayments(ctx context.Context, olderThan time.Time) ([]domain.MembershipPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM membership_payments
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.MembershipPayment{}
	for rows.Next() {
		var p domain.MembershipPayment
		err := rows.Scan(
			&p.ID, &p.MembershipID, &p.DealershipID, &p.OrderNo, &p.AmountCents,
			&p.Status, &p.PaidAt, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// MarkExpired flips active rows whose end_date has passed to expired and
// returns how many rows changed.
func (r *membershipRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE dealership_memberships
		SET status = 'expired'
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *membershipRepository) ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]domain.DealershipMembership, error) {
	cutoff := now.AddDate(0, 0, days)
	query := `
		SELECT ` + membershipColumns + `
		FROM dealership_memberships
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date >= $1 AND end_date <= $2
		ORDER BY end_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, now, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []domain.DealershipMembership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	return memberships, nil
}
