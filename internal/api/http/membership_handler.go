package http

import (
	"net/http"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/payment"
	"dealerdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type MembershipHandler struct {
	membershipSvc service.MembershipService
	provider      payment.Provider
}

func NewMembershipHandler(membershipSvc service.MembershipService, provider payment.Provider) *MembershipHandler {
	return &MembershipHandler{membershipSvc: membershipSvc, provider: provider}
}

func (h *MembershipHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	overview, err := h.membershipSvc.GetMembershipOverview(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *MembershipHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	history, err := h.membershipSvc.GetMembershipHistory(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *MembershipHandler) ListTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.membershipSvc.ListTiers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tiers)
}

type renewRequest struct {
	TierID int32 `json:"tier_id"`
}

type renewResponse struct {
	Payment *domain.MembershipPayment `json:"payment"`
	PayURL  string                    `json:"pay_url"`
}

func (h *MembershipHandler) Renew(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	var req renewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	pay, payURL, err := h.membershipSvc.RenewMembership(r.Context(), claims.UserID, dealershipID, req.TierID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, renewResponse{Payment: pay, PayURL: payURL})
}

// paymentNotification is the provider callback payload.
type paymentNotification struct {
	OrderNo string               `json:"order_no"`
	Status  domain.PaymentStatus `json:"status"`
}

// PaymentCallback receives provider notifications and applies the status
// transition. No bearer token: the order number is the shared secret
// between us and the provider.
func (h *MembershipHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var req paymentNotification
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.membershipSvc.UpdatePaymentStatus(r.Context(), req.OrderNo, req.Status); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SandboxPay settles a mock provider order and completes the payment, so a
// renewal can be exercised end to end without a real gateway.
func (h *MembershipHandler) SandboxPay(w http.ResponseWriter, r *http.Request) {
	mock, ok := h.provider.(*payment.MockProvider)
	if !ok {
		respondError(w, http.StatusNotFound, "sandbox payments are not enabled")
		return
	}

	orderNo := mux.Vars(r)["orderNo"]
	if err := mock.SettleOrder(orderNo); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.membershipSvc.UpdatePaymentStatus(r.Context(), orderNo, domain.PaymentStatusCompleted); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
