package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, dealership_id, vin_suffix, brand, model, year, purchase_price_cents,
	       status, investor_ids, rent_investor_ids, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	logger.EnterMethod("vehicleRepository.Create", "dealershipID", v.DealershipID, "vinSuffix", v.VinSuffix)

	query := `
		INSERT INTO vehicles (
			dealership_id, vin_suffix, brand, model, year, purchase_price_cents,
			status, investor_ids, rent_investor_ids, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		v.DealershipID, v.VinSuffix, v.Brand, v.Model, v.Year, v.PurchasePriceCents,
		v.Status, pq.Array(v.InvestorIDs), pq.Array(v.RentInvestorIDs), now, now,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.Create", err, "vinSuffix", v.VinSuffix)
		return err
	}

	logger.ExitMethod("vehicleRepository.Create", "vehicleID", v.ID)
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v := &domain.Vehicle{}
	var investors, rentInvestors pq.Int32Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.DealershipID, &v.VinSuffix, &v.Brand, &v.Model, &v.Year, &v.PurchasePriceCents,
		&v.Status, &investors, &rentInvestors, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.InvestorIDs = []int32(investors)
	v.RentInvestorIDs = []int32(rentInvestors)
	return v, nil
}

func (r *vehicleRepository) ListByDealership(ctx context.Context, dealershipID int32, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE dealership_id = $1`
	args := []interface{}{dealershipID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var v domain.Vehicle
		var investors, rentInvestors pq.Int32Array
		err := rows.Scan(
			&v.ID, &v.DealershipID, &v.VinSuffix, &v.Brand, &v.Model, &v.Year, &v.PurchasePriceCents,
			&v.Status, &investors, &rentInvestors, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		v.InvestorIDs = []int32(investors)
		v.RentInvestorIDs = []int32(rentInvestors)
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	logger.EnterMethod("vehicleRepository.Update", "vehicleID", v.ID)

	query := `
		UPDATE vehicles SET
			vin_suffix = $1, brand = $2, model = $3, year = $4, purchase_price_cents = $5,
			investor_ids = $6, rent_investor_ids = $7, updated_at = $8
		WHERE id = $9
	`
	_, err := r.db.ExecContext(ctx, query,
		v.VinSuffix, v.Brand, v.Model, v.Year, v.PurchasePriceCents,
		pq.Array(v.InvestorIDs), pq.Array(v.RentInvestorIDs), time.Now(), v.ID,
	)

	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.Update", err, "vehicleID", v.ID)
		return err
	}

	logger.ExitMethod("vehicleRepository.Update", "vehicleID", v.ID)
	return nil
}

func (r *vehicleRepository) CountInStock(ctx context.Context, dealershipID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM vehicles WHERE dealership_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, dealershipID, domain.VehicleStatusInStock).Scan(&count)
	return count, err
}

func (r *vehicleRepository) CreateCost(ctx context.Context, c *domain.VehicleCost) error {
	logger.EnterMethod("vehicleRepository.CreateCost", "vehicleID", c.VehicleID, "costType", c.CostType)

	query := `
		INSERT INTO vehicle_costs (vehicle_id, cost_type, amount_cents, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.VehicleID, c.CostType, c.AmountCents, c.Note, c.CreatedBy, time.Now(),
	).Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.CreateCost", err, "vehicleID", c.VehicleID)
		return err
	}

	logger.ExitMethod("vehicleRepository.CreateCost", "costID", c.ID)
	return nil
}

func (r *vehicleRepository) ListCostsByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleCost, error) {
	query := `
		SELECT id, vehicle_id, cost_type, amount_cents, COALESCE(note, ''), created_by, created_at
		FROM vehicle_costs WHERE vehicle_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := []domain.VehicleCost{}
	for rows.Next() {
		var c domain.VehicleCost
		if err := rows.Scan(&c.ID, &c.VehicleID, &c.CostType, &c.AmountCents, &c.Note, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, nil
}

const saleColumns = `id, vehicle_id, dealership_id, sale_price_cents, sale_date,
	       buyer_name, COALESCE(buyer_phone, ''), is_loan, loan_rebate_cents,
	       preparation_cost_cents, transfer_cost_cents, misc_cost_cents,
	       total_cost_cents, total_profit_cents, salesperson_id, created_at`

func (r *vehicleRepository) CreateSale(ctx context.Context, s *domain.VehicleSale) error {
	logger.EnterMethod("vehicleRepository.CreateSale", "vehicleID", s.VehicleID, "dealershipID", s.DealershipID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.CreateSale", err, "vehicleID", s.VehicleID)
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vehicle_sales (
			vehicle_id, dealership_id, sale_price_cents, sale_date, buyer_name, buyer_phone,
			is_loan, loan_rebate_cents, preparation_cost_cents, transfer_cost_cents, misc_cost_cents,
			total_cost_cents, total_profit_cents, salesperson_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		s.VehicleID, s.DealershipID, s.SalePriceCents, s.SaleDate, s.BuyerName, s.BuyerPhone,
		s.IsLoan, s.LoanRebateCents, s.PreparationCostCents, s.TransferCostCents, s.MiscCostCents,
		s.TotalCostCents, s.TotalProfitCents, s.SalespersonID, time.Now(),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.CreateSale", err, "vehicleID", s.VehicleID)
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		domain.VehicleStatusSold, time.Now(), s.VehicleID, domain.VehicleStatusInStock,
	)
	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.CreateSale", err, "vehicleID", s.VehicleID)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		err = fmt.Errorf("vehicle %d is not in stock", s.VehicleID)
		logger.ExitMethodWithError("vehicleRepository.CreateSale", err, "vehicleID", s.VehicleID)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("vehicleRepository.CreateSale", err, "vehicleID", s.VehicleID)
		return err
	}

	logger.ExitMethod("vehicleRepository.CreateSale", "saleID", s.ID)
	return nil
}

func (r *vehicleRepository) GetSaleByID(ctx context.Context, id int32) (*domain.VehicleSale, error) {
	query := `SELECT ` + saleColumns + ` FROM vehicle_sales WHERE id = $1`
	return r.scanSale(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) GetSaleByVehicle(ctx context.Context, vehicleID int32) (*domain.VehicleSale, error) {
	query := `SELECT ` + saleColumns + ` FROM vehicle_sales WHERE vehicle_id = $1`
	return r.scanSale(r.db.QueryRowContext(ctx, query, vehicleID))
}

func (r *vehicleRepository) scanSale(row *sql.Row) (*domain.VehicleSale, error) {
	s := &domain.VehicleSale{}
	err := row.Scan(
		&s.ID, &s.VehicleID, &s.DealershipID, &s.SalePriceCents, &s.SaleDate,
		&s.BuyerName, &s.BuyerPhone, &s.IsLoan, &s.LoanRebateCents,
		&s.PreparationCostCents, &s.TransferCostCents, &s.MiscCostCents,
		&s.TotalCostCents, &s.TotalProfitCents, &s.SalespersonID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *vehicleRepository) ListSalesByMonth(ctx context.Context, dealershipID int32, year, month int) ([]domain.VehicleSale, error) {
	logger.EnterMethod("vehicleRepository.ListSalesByMonth", "dealershipID", dealershipID, "year", year, "month", month)

	query := `
		SELECT ` + saleColumns + `
		FROM vehicle_sales
		WHERE dealership_id = $1
		  AND EXTRACT(YEAR FROM sale_date) = $2
		  AND EXTRACT(MONTH FROM sale_date) = $3
		ORDER BY sale_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID, year, month)
	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.ListSalesByMonth", err, "dealershipID", dealershipID)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.VehicleSale{}
	for rows.Next() {
		var s domain.VehicleSale
		err := rows.Scan(
			&s.ID, &s.VehicleID, &s.DealershipID, &s.SalePriceCents, &s.SaleDate,
			&s.BuyerName, &s.BuyerPhone, &s.IsLoan, &s.LoanRebateCents,
			&s.PreparationCostCents, &s.TransferCostCents, &s.MiscCostCents,
			&s.TotalCostCents, &s.TotalProfitCents, &s.SalespersonID, &s.CreatedAt,
		)
		if err != nil {
			logger.ExitMethodWithError("vehicleRepository.ListSalesByMonth", err, "dealershipID", dealershipID)
			return nil, err
		}
		sales = append(sales, s)
	}

	logger.ExitMethod("vehicleRepository.ListSalesByMonth", "dealershipID", dealershipID, "count", len(sales))
	return sales, nil
}
