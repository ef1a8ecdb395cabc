package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"membroBack/internal/models"
	"membroBack/internal/services"
)

type CenterHandler struct {
	Service *services.CenterService
}

func (h *CenterHandler) CreateCenter(w http.ResponseWriter, r *http.Request) {
	var center models.Center
	if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateCenter(r.Context(), center)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CenterHandler) GetCenterByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid center ID", http.StatusBadRequest)
		return
	}

	center, err := h.Service.GetCenterByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(center)
}

func (h *CenterHandler) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid center ID", http.StatusBadRequest)
		return
	}

	var center models.Center
	if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	center.ID = id

	if err := h.Service.UpdateCenter(r.Context(), center); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	updated, err := h.Service.GetCenterByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CenterHandler) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid center ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteCenter(r.Context(), id); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CenterHandler) ListCenters(w http.ResponseWriter, r *http.Request) {
	filter := models.CenterFilter{
		Search: r.URL.Query().Get("search"),
	}
	if active := r.URL.Query().Get("active"); active != "" {
		val, err := strconv.ParseBool(active)
		if err != nil {
			http.Error(w, "Invalid active flag", http.StatusBadRequest)
			return
		}
		filter.Active = &val
	}

	centers, err := h.Service.ListCenters(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(centers)
}
