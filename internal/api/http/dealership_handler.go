package http

import (
	"context"
	"net/http"
	"strconv"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type DealershipHandler struct {
	dealershipSvc service.DealershipService
}

func NewDealershipHandler(dealershipSvc service.DealershipService) *DealershipHandler {
	return &DealershipHandler{dealershipSvc: dealershipSvc}
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(id), err
}

type registerDealershipRequest struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

func (h *DealershipHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDealershipRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dealership, err := h.dealershipSvc.Register(r.Context(), req.Name, req.Code, req.ContactName, req.ContactPhone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dealership)
}

func (h *DealershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	dealership, err := h.dealershipSvc.GetDealership(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dealership)
}

func (h *DealershipHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	status := domain.DealershipStatus(r.URL.Query().Get("status"))

	dealerships, err := h.dealershipSvc.ListDealerships(r.Context(), claims.UserID, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dealerships)
}

func (h *DealershipHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.dealershipSvc.Approve)
}

func (h *DealershipHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.dealershipSvc.Reject)
}

func (h *DealershipHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.dealershipSvc.Deactivate)
}

func (h *DealershipHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, operatorID, dealershipID int32) error) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	if err := op(r.Context(), claims.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateContactRequest struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

func (h *DealershipHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	var req updateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	if err := h.dealershipSvc.UpdateContact(r.Context(), claims.UserID, id, req.ContactName, req.ContactPhone); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateRentInvestorsRequest struct {
	RentInvestorIDs []int32 `json:"rent_investor_ids"`
}

func (h *DealershipHandler) UpdateRentInvestors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	var req updateRentInvestorsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	if err := h.dealershipSvc.UpdateRentInvestors(r.Context(), claims.UserID, id, req.RentInvestorIDs); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
