package http

import (
	"net/http"
	"strconv"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

type addVehicleRequest struct {
	DealershipID       int32   `json:"dealership_id"`
	VinSuffix          string  `json:"vin_suffix"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	Year               int32   `json:"year"`
	PurchasePriceCents int64   `json:"purchase_price_cents"`
	InvestorIDs        []int32 `json:"investor_ids"`
	RentInvestorIDs    []int32 `json:"rent_investor_ids"`
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	vehicle := &domain.Vehicle{
		DealershipID:       req.DealershipID,
		VinSuffix:          req.VinSuffix,
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		PurchasePriceCents: req.PurchasePriceCents,
		InvestorIDs:        req.InvestorIDs,
		RentInvestorIDs:    req.RentInvestorIDs,
	}
	if err := h.vehicleSvc.AddVehicle(r.Context(), claims.UserID, vehicle); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

type vehicleDetailResponse struct {
	Vehicle *domain.Vehicle      `json:"vehicle"`
	Costs   []domain.VehicleCost `json:"costs"`
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	vehicle, costs, err := h.vehicleSvc.GetVehicle(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicleDetailResponse{Vehicle: vehicle, Costs: costs})
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())
	status := domain.VehicleStatus(r.URL.Query().Get("status"))

	vehicles, err := h.vehicleSvc.ListVehicles(r.Context(), claims.UserID, dealershipID, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var vehicle domain.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vehicle.ID = id
	claims := ClaimsFromContext(r.Context())

	if err := h.vehicleSvc.UpdateVehicle(r.Context(), claims.UserID, &vehicle); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &vehicle)
}

type addCostRequest struct {
	CostType    domain.CostType `json:"cost_type"`
	AmountCents int64           `json:"amount_cents"`
	Note        string          `json:"note"`
}

func (h *VehicleHandler) AddCost(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var req addCostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	cost := &domain.VehicleCost{
		VehicleID:   vehicleID,
		CostType:    req.CostType,
		AmountCents: req.AmountCents,
		Note:        req.Note,
	}
	if err := h.vehicleSvc.AddCost(r.Context(), claims.UserID, cost); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cost)
}

type recordSaleRequest struct {
	SalePriceCents       int64      `json:"sale_price_cents"`
	SaleDate             *time.Time `json:"sale_date"`
	BuyerName            string     `json:"buyer_name"`
	BuyerPhone           string     `json:"buyer_phone"`
	IsLoan               bool       `json:"is_loan"`
	LoanRebateCents      int64      `json:"loan_rebate_cents"`
	PreparationCostCents int64      `json:"preparation_cost_cents"`
	TransferCostCents    int64      `json:"transfer_cost_cents"`
	MiscCostCents        int64      `json:"misc_cost_cents"`
	SalespersonID        int32      `json:"salesperson_id"`
}

func (h *VehicleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	var req recordSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	sale := &domain.VehicleSale{
		VehicleID:            vehicleID,
		SalePriceCents:       req.SalePriceCents,
		BuyerName:            req.BuyerName,
		BuyerPhone:           req.BuyerPhone,
		IsLoan:               req.IsLoan,
		LoanRebateCents:      req.LoanRebateCents,
		PreparationCostCents: req.PreparationCostCents,
		TransferCostCents:    req.TransferCostCents,
		MiscCostCents:        req.MiscCostCents,
		SalespersonID:        req.SalespersonID,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}

	sale, err = h.vehicleSvc.RecordSale(r.Context(), claims.UserID, sale)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

func (h *VehicleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	sale, err := h.vehicleSvc.GetSale(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *VehicleHandler) ListSalesByMonth(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}
	claims := ClaimsFromContext(r.Context())

	sales, err := h.vehicleSvc.ListSalesByMonth(r.Context(), claims.UserID, dealershipID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *VehicleHandler) GetProfitBreakdown(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	breakdown, err := h.vehicleSvc.GetProfitBreakdown(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}
