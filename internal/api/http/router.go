package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dealerdesk-backend/internal/security"
)

// Handlers groups everything the router needs to register routes.
type Handlers struct {
	Auth       *AuthHandler
	Dealership *DealershipHandler
	Vehicle    *VehicleHandler
	ProfitRule *ProfitRuleHandler
	Membership *MembershipHandler
	Feedback   *FeedbackHandler
	Expense    *ExpenseHandler
	Bonus      *BonusHandler
}

// NewRouter builds the API router. Auth, dealership registration and the
// payment provider callbacks stay public; everything else requires a valid
// access token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/dealerships", h.Dealership.Register).Methods(http.MethodPost)
	api.HandleFunc("/payments/callback", h.Membership.PaymentCallback).Methods(http.MethodPost)
	api.HandleFunc("/pay/sandbox/{orderNo}", h.Membership.SandboxPay).Methods(http.MethodPost)

	// Authenticated routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	// Dealerships.
	authed.HandleFunc("/dealerships", h.Dealership.List).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{id}", h.Dealership.Get).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{id}/approve", h.Dealership.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/dealerships/{id}/reject", h.Dealership.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/dealerships/{id}/deactivate", h.Dealership.Deactivate).Methods(http.MethodPost)
	authed.HandleFunc("/dealerships/{id}/contact", h.Dealership.UpdateContact).Methods(http.MethodPut)
	authed.HandleFunc("/dealerships/{id}/rent-investors", h.Dealership.UpdateRentInvestors).Methods(http.MethodPut)

	// Vehicles and sales.
	authed.HandleFunc("/vehicles", h.Vehicle.Add).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles/{id}", h.Vehicle.Get).Methods(http.MethodGet)
	authed.HandleFunc("/vehicles/{id}", h.Vehicle.Update).Methods(http.MethodPut)
	authed.HandleFunc("/vehicles/{id}/costs", h.Vehicle.AddCost).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles/{id}/sale", h.Vehicle.RecordSale).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles/{id}/sale", h.Vehicle.GetSale).Methods(http.MethodGet)
	authed.HandleFunc("/vehicles/{id}/profit", h.Vehicle.GetProfitBreakdown).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/vehicles", h.Vehicle.List).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/sales", h.Vehicle.ListSalesByMonth).Methods(http.MethodGet)

	// Profit rules.
	authed.HandleFunc("/dealerships/{dealershipID}/profit-rule", h.ProfitRule.GetActive).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/profit-rule", h.ProfitRule.SetRule).Methods(http.MethodPut)
	authed.HandleFunc("/dealerships/{dealershipID}/profit-rule/history", h.ProfitRule.ListHistory).Methods(http.MethodGet)

	// Membership and billing.
	authed.HandleFunc("/membership-tiers", h.Membership.ListTiers).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/membership", h.Membership.GetOverview).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/membership/history", h.Membership.GetHistory).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/membership/renew", h.Membership.Renew).Methods(http.MethodPost)

	// Feedback.
	authed.HandleFunc("/feedbacks", h.Feedback.Create).Methods(http.MethodPost)
	authed.HandleFunc("/feedbacks", h.Feedback.List).Methods(http.MethodGet)
	authed.HandleFunc("/feedbacks/{id}", h.Feedback.Get).Methods(http.MethodGet)
	authed.HandleFunc("/feedbacks/{id}/reply", h.Feedback.Reply).Methods(http.MethodPost)
	authed.HandleFunc("/feedbacks/{id}/read", h.Feedback.MarkAsRead).Methods(http.MethodPost)

	// Expenses.
	authed.HandleFunc("/expenses", h.Expense.Add).Methods(http.MethodPost)
	authed.HandleFunc("/expenses/{id}", h.Expense.Update).Methods(http.MethodPut)
	authed.HandleFunc("/dealerships/{dealershipID}/expenses", h.Expense.List).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/expenses/summary", h.Expense.Summary).Methods(http.MethodGet)

	// Monthly bonuses.
	authed.HandleFunc("/dealerships/{dealershipID}/bonuses", h.Bonus.List).Methods(http.MethodGet)
	authed.HandleFunc("/dealerships/{dealershipID}/bonus", h.Bonus.GetByMonth).Methods(http.MethodGet)
	authed.HandleFunc("/bonuses/{id}/award", h.Bonus.Award).Methods(http.MethodPost)

	return router
}
