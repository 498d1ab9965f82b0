package http

import (
	"net/http"

	"dealerdesk-backend/internal/service"
)

type ProfitRuleHandler struct {
	ruleSvc service.ProfitRuleService
}

func NewProfitRuleHandler(ruleSvc service.ProfitRuleService) *ProfitRuleHandler {
	return &ProfitRuleHandler{ruleSvc: ruleSvc}
}

func (h *ProfitRuleHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	rule, err := h.ruleSvc.GetActiveRule(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (h *ProfitRuleHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	rules, err := h.ruleSvc.ListRuleHistory(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rules)
}

// setRuleRequest carries decimal percentages; the service converts to basis
// points and validates the 100% sum.
type setRuleRequest struct {
	RentInvestorPct float64 `json:"rent_investor_pct"`
	BonusPoolPct    float64 `json:"bonus_pool_pct"`
	SalespersonPct  float64 `json:"salesperson_pct"`
	InvestorPct     float64 `json:"investor_pct"`
}

func (h *ProfitRuleHandler) SetRule(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	var req setRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	rule, err := h.ruleSvc.SetRule(r.Context(), claims.UserID, dealershipID,
		req.RentInvestorPct, req.BonusPoolPct, req.SalespersonPct, req.InvestorPct)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}
