package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type dealershipRepository struct {
	db *sql.DB
}

func NewDealershipRepository(db *sql.DB) repository.DealershipRepository {
	return &dealershipRepository{db: db}
}

func (r *dealershipRepository) Create(ctx context.Context, d *domain.Dealership) error {
	logger.EnterMethod("dealershipRepository.Create", "name", d.Name, "code", d.Code)

	query := `
		INSERT INTO dealerships (name, code, status, rent_investor_ids, contact_name, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		d.Name, d.Code, d.Status, pq.Array(d.RentInvestorIDs), d.ContactName, d.ContactPhone, now, now,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		logger.ExitMethodWithError("dealershipRepository.Create", err, "code", d.Code)
		return err
	}

	logger.ExitMethod("dealershipRepository.Create", "dealershipID", d.ID)
	return nil
}

func (r *dealershipRepository) GetByID(ctx context.Context, id int32) (*domain.Dealership, error) {
	query := `
		SELECT id, name, code, status, rent_investor_ids, COALESCE(contact_name, ''), COALESCE(contact_phone, ''), created_at, updated_at
		FROM dealerships WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *dealershipRepository) GetByCode(ctx context.Context, code string) (*domain.Dealership, error) {
	query := `
		SELECT id, name, code, status, rent_investor_ids, COALESCE(contact_name, ''), COALESCE(contact_phone, ''), created_at, updated_at
		FROM dealerships WHERE code = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *dealershipRepository) scanOne(row *sql.Row) (*domain.Dealership, error) {
	d := &domain.Dealership{}
	var rentInvestors pq.Int32Array
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Status, &rentInvestors, &d.ContactName, &d.ContactPhone, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.RentInvestorIDs = []int32(rentInvestors)
	return d, nil
}

func (r *dealershipRepository) List(ctx context.Context, status domain.DealershipStatus) ([]domain.Dealership, error) {
	query := `
		SELECT id, name, code, status, rent_investor_ids, COALESCE(contact_name, ''), COALESCE(contact_phone, ''), created_at, updated_at
		FROM dealerships
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dealerships := []domain.Dealership{}
	for rows.Next() {
		var d domain.Dealership
		var rentInvestors pq.Int32Array
		err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Status, &rentInvestors, &d.ContactName, &d.ContactPhone, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		d.RentInvestorIDs = []int32(rentInvestors)
		dealerships = append(dealerships, d)
	}
	return dealerships, nil
}

func (r *dealershipRepository) UpdateStatus(ctx context.Context, id int32, status domain.DealershipStatus) error {
	logger.EnterMethod("dealershipRepository.UpdateStatus", "dealershipID", id, "status", status)

	query := `UPDATE dealerships SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		logger.ExitMethodWithError("dealershipRepository.UpdateStatus", err, "dealershipID", id)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		logger.ExitMethodWithError("dealershipRepository.UpdateStatus", sql.ErrNoRows, "dealershipID", id)
		return sql.ErrNoRows
	}

	logger.ExitMethod("dealershipRepository.UpdateStatus", "dealershipID", id)
	return nil
}

func (r *dealershipRepository) UpdateContact(ctx context.Context, id int32, contactName, contactPhone string) error {
	query := `UPDATE dealerships SET contact_name = $1, contact_phone = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, contactName, contactPhone, time.Now(), id)
	return err
}

func (r *dealershipRepository) UpdateRentInvestors(ctx context.Context, id int32, rentInvestorIDs []int32) error {
	query := `UPDATE dealerships SET rent_investor_ids = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, pq.Array(rentInvestorIDs), time.Now(), id)
	return err
}
