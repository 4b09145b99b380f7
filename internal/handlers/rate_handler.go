package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jewel-backend/internal/middleware"
	"jewel-backend/internal/models"
	"jewel-backend/internal/services"
	"jewel-backend/pkg/utils"
)

type RateHandler struct {
	Service *services.RateService
}

func NewRateHandler(s *services.RateService) *RateHandler {
	return &RateHandler{Service: s}
}

// CurrentRates returns the latest active rate per metal type
func (h *RateHandler) CurrentRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Service.CurrentRates(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load rates")
		return
	}
	utils.JSON(w, http.StatusOK, rates)
}

// GetRate returns the current rate for one metal type
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	metalType := mux.Vars(r)["metalType"]
	rate, err := h.Service.GetRate(r.Context(), metalType)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rate)
}

// PublishRate records a new rate for a metal type
func (h *RateHandler) PublishRate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var updatedBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		updatedBy = &userID
	}

	rate, err := h.Service.PublishRate(r.Context(), &req, updatedBy)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, rate)
}

// History returns past rates for one metal type
func (h *RateHandler) History(w http.ResponseWriter, r *http.Request) {
	metalType := mux.Vars(r)["metalType"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rates, err := h.Service.History(r.Context(), metalType, limit)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rates)
}
