package http

import (
	"net/http"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"
)

type ExpenseHandler struct {
	expenseSvc service.ExpenseService
}

func NewExpenseHandler(expenseSvc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseSvc: expenseSvc}
}

type expenseRequest struct {
	DealershipID int32              `json:"dealership_id"`
	ExpenseType  domain.ExpenseType `json:"expense_type"`
	AmountCents  int64              `json:"amount_cents"`
	ExpenseDate  time.Time          `json:"expense_date"`
	Month        string             `json:"month"`
	Note         string             `json:"note"`
}

func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	expense := &domain.Expense{
		DealershipID: req.DealershipID,
		ExpenseType:  req.ExpenseType,
		AmountCents:  req.AmountCents,
		ExpenseDate:  req.ExpenseDate,
		Month:        req.Month,
		Note:         req.Note,
	}
	if err := h.expenseSvc.AddExpense(r.Context(), claims.UserID, expense); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	expense := &domain.Expense{
		ID:          id,
		ExpenseType: req.ExpenseType,
		AmountCents: req.AmountCents,
		ExpenseDate: req.ExpenseDate,
		Month:       req.Month,
		Note:        req.Note,
	}
	if err := h.expenseSvc.UpdateExpense(r.Context(), claims.UserID, expense); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())
	month := r.URL.Query().Get("month")

	expenses, err := h.expenseSvc.ListExpenses(r.Context(), claims.UserID, dealershipID, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	dealershipID, err := pathID(r, "dealershipID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dealership id")
		return
	}
	claims := ClaimsFromContext(r.Context())
	month := r.URL.Query().Get("month")

	summary, err := h.expenseSvc.GetExpenseSummary(r.Context(), claims.UserID, dealershipID, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
