package http

import (
	"net/http"
	"strconv"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"
)

type FeedbackHandler struct {
	feedbackSvc service.FeedbackService
}

func NewFeedbackHandler(feedbackSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

type createFeedbackRequest struct {
	DealershipID int32               `json:"dealership_id"`
	MessageType  domain.FeedbackType `json:"message_type"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	feedback, err := h.feedbackSvc.CreateFeedback(r.Context(), claims.UserID, req.DealershipID, req.MessageType, req.Title, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, feedback)
}

type replyRequest struct {
	Content string `json:"content"`
}

func (h *FeedbackHandler) Reply(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}
	var req replyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := ClaimsFromContext(r.Context())

	reply, err := h.feedbackSvc.ReplyToFeedback(r.Context(), claims.UserID, parentID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reply)
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	feedback, err := h.feedbackSvc.GetFeedback(r.Context(), claims.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feedback)
}

// List returns the caller's dealership thread, or every tenant's threads for
// platform operators when no dealership_id query is given.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var dealershipID *int32
	if raw := r.URL.Query().Get("dealership_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid dealership id")
			return
		}
		id32 := int32(id)
		dealershipID = &id32
	} else if claims.DealershipID != nil {
		dealershipID = claims.DealershipID
	}

	feedbacks, err := h.feedbackSvc.ListFeedbacks(r.Context(), claims.UserID, dealershipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feedbacks)
}

func (h *FeedbackHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid feedback id")
		return
	}
	claims := ClaimsFromContext(r.Context())

	if err := h.feedbackSvc.MarkAsRead(r.Context(), claims.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
