package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusInStock VehicleStatus = "in_stock"
	VehicleStatusSold    VehicleStatus = "sold"
)

// Vehicle is one unit of dealership inventory. Vehicles are never hard-deleted;
// they transition to sold when a sale record is created.
type Vehicle struct {
	ID                 int32         `json:"id"`
	DealershipID       int32         `json:"dealership_id"`
	VinSuffix          string        `json:"vin_suffix"` // unique within a dealership
	Brand              string        `json:"brand"`
	Model              string        `json:"model"`
	Year               int32         `json:"year"`
	PurchasePriceCents int64         `json:"purchase_price_cents"`
	Status             VehicleStatus `json:"status"`
	InvestorIDs        []int32       `json:"investor_ids"`      // capital contributors
	RentInvestorIDs    []int32       `json:"rent_investor_ids"` // site/premises contributors
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

type CostType string

const (
	CostTypePurchase    CostType = "purchase"
	CostTypePreparation CostType = "preparation"
	CostTypeTransfer    CostType = "transfer"
	CostTypeMisc        CostType = "misc"
)

// VehicleCost is a typed cost line attached to a vehicle. Immutable once created.
type VehicleCost struct {
	ID          int32     `json:"id"`
	VehicleID   int32     `json:"vehicle_id"`
	CostType    CostType  `json:"cost_type"`
	AmountCents int64     `json:"amount_cents"`
	Note        string    `json:"note"`
	CreatedBy   int32     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// VehicleSale is one-to-one with a sold vehicle. total_profit =
// sale_price - total_cost + loan_rebate, where total_cost aggregates all
// VehicleCost rows plus the three sale-specific cost fields.
type VehicleSale struct {
	ID                   int32     `json:"id"`
	VehicleID            int32     `json:"vehicle_id"`
	DealershipID         int32     `json:"dealership_id"`
	SalePriceCents       int64     `json:"sale_price_cents"`
	SaleDate             time.Time `json:"sale_date"`
	BuyerName            string    `json:"buyer_name"`
	BuyerPhone           string    `json:"buyer_phone"`
	IsLoan               bool      `json:"is_loan"`
	LoanRebateCents      int64     `json:"loan_rebate_cents"`
	PreparationCostCents int64     `json:"preparation_cost_cents"`
	TransferCostCents    int64     `json:"transfer_cost_cents"`
	MiscCostCents        int64     `json:"misc_cost_cents"`
	TotalCostCents       int64     `json:"total_cost_cents"`
	TotalProfitCents     int64     `json:"total_profit_cents"` // may be negative
	SalespersonID        int32     `json:"salesperson_id"`
	CreatedAt            time.Time `json:"created_at"`
}
