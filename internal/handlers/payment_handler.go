package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"membroBack/internal/models"
	"membroBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var registeredBy *int
	if userID, ok := r.Context().Value("user_id").(int); ok {
		registeredBy = &userID
	}

	payment, err := h.Service.CreatePayment(r.Context(), req, registeredBy)
	if err != nil {
		// Referencing a missing member on creation is a caller input error,
		// not a lookup miss.
		if errors.Is(err, models.ErrMemberNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

func (h *PaymentHandler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.GetPaymentByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var patch models.PaymentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.Service.UpdatePayment(r.Context(), id, patch); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterPayment settles an existing charge: marks it paid as of now and
// records who handed the money over.
func (h *PaymentHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var req models.RegisterPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.RegisterPayment(r.Context(), id, req)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeletePayment(r.Context(), id); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := models.PaymentFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	if memberID := r.URL.Query().Get("memberId"); memberID != "" {
		id, err := strconv.Atoi(memberID)
		if err != nil {
			http.Error(w, "Invalid memberId", http.StatusBadRequest)
			return
		}
		filter.MemberID = id
	}

	startDate, err := parseDateParam(r.URL.Query().Get("startDate"))
	if err != nil {
		http.Error(w, "Invalid startDate", http.StatusBadRequest)
		return
	}
	endDate, err := parseDateParam(r.URL.Query().Get("endDate"))
	if err != nil {
		http.Error(w, "Invalid endDate", http.StatusBadRequest)
		return
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	payments, err := h.Service.ListPayments(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func (h *PaymentHandler) MemberStatement(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(getParam(r, "memberId"))
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	statement, err := h.Service.MemberStatement(r.Context(), memberID)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statement)
}

func (h *PaymentHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context())
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
