package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	logger.EnterMethod("profileRepository.Create", "email", p.Email, "role", p.Role)

	query := `
		INSERT INTO profiles (dealership_id, name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		p.DealershipID, p.Name, p.Email, p.Phone, p.PasswordHash, p.Role, now, now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		logger.ExitMethodWithError("profileRepository.Create", err, "email", p.Email)
		return err
	}

	logger.ExitMethod("profileRepository.Create", "profileID", p.ID)
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int32) (*domain.Profile, error) {
	query := `
		SELECT id, dealership_id, name, email, COALESCE(phone, ''), password_hash, role, created_at, updated_at
		FROM profiles WHERE id = $1
	`
	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.DealershipID, &p.Name, &p.Email, &p.Phone, &p.PasswordHash, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, dealership_id, name, email, COALESCE(phone, ''), password_hash, role, created_at, updated_at
		FROM profiles WHERE email = $1
	`
	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.DealershipID, &p.Name, &p.Email, &p.Phone, &p.PasswordHash, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	logger.EnterMethod("profileRepository.Update", "profileID", p.ID)

	query := `
		UPDATE profiles SET name = $1, phone = $2, role = $3, password_hash = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Phone, p.Role, p.PasswordHash, time.Now(), p.ID)

	if err != nil {
		logger.ExitMethodWithError("profileRepository.Update", err, "profileID", p.ID)
		return err
	}

	logger.ExitMethod("profileRepository.Update", "profileID", p.ID)
	return nil
}

func (r *profileRepository) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error) {
	query := `
		SELECT id, dealership_id, name, email, COALESCE(phone, ''), password_hash, role, created_at, updated_at
		FROM profiles WHERE dealership_id = $1 ORDER BY name ASC
	`
	return r.listProfiles(ctx, query, dealershipID)
}

func (r *profileRepository) ListAdminsByDealership(ctx context.Context, dealershipID int32) ([]domain.Profile, error) {
	query := `
		SELECT id, dealership_id, name, email, COALESCE(phone, ''), password_hash, role, created_at, updated_at
		FROM profiles WHERE dealership_id = $1 AND role = 'admin' ORDER BY name ASC
	`
	return r.listProfiles(ctx, query, dealershipID)
}

func (r *profileRepository) listProfiles(ctx context.Context, query string, args ...interface{}) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		err := rows.Scan(
			&p.ID, &p.DealershipID, &p.Name, &p.Email, &p.Phone, &p.PasswordHash, &p.Role,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
