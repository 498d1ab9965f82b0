package http

import (
	"net/http"

	"dealerdesk-backend/internal/service"
)

type BonusHandler struct {
	bonusSvc service.BonusService
}

func NewBonusHandler(bonusSvc service.BonusService) *BonusHandler {
	return &BonusHandler{bonusSvc: bonusSvc}
}

func (h *BonusHandler) GetByMonth(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	month := r.URL.Query().Get("month")
	if month == "" {
		respondError(w, http.StatusBadRequest, "month is required")
		return
	}
	claims := ClaimsFromContext(r.Context())

	bonus, err := h.bonusSvc.GetMonthlyBonus(r.Context(), claims.UserID, dealershipID, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bonus)
}

func (h *BonusHandler) List(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	bonuses, err := h.bonusSvc.ListMonthlyBonuses(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bonuses)
}

type awardRequest struct {
	ChampionID  int32 `json:"champion_id"`
	AmountCents int64 `json:"amount_cents"`
}

func (h *BonusHandler) Award(w http.ResponseWriter, r *http.Request) {
	bonusID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bonus id")
		return
	}
	var req awardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	if err := h.bonusSvc.AwardChampion(r.Context(), claims.UserID, bonusID, req.ChampionID, req.AmountCents); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
