package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jewel-backend/internal/middleware"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/services"
	"jewel-backend/pkg/utils"
)

type ExchangeHandler struct {
	Service *services.ExchangeService
}

func NewExchangeHandler(s *services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{Service: s}
}

// Calculate previews an exchange valuation without saving it
func (h *ExchangeHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCustomerInfo(req.Customer); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ex, err := h.Service.Calculate(r.Context(), req)
	if err != nil {
		billError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ex)
}

// Create values and persists an exchange calculation
func (h *ExchangeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCustomerInfo(req.Customer); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var createdBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		createdBy = &userID
	}

	ex, err := h.Service.CreateExchange(r.Context(), req, createdBy)
	if err != nil {
		billError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, ex)
}

// Get returns an exchange by numeric id
func (h *ExchangeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid exchange id")
		return
	}

	ex, err := h.Service.GetExchange(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Exchange not found")
		return
	}
	utils.JSON(w, http.StatusOK, ex)
}

// GetByNumber returns an exchange by its exchange number
func (h *ExchangeHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	ex, err := h.Service.GetByNumber(r.Context(), number)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Exchange not found")
		return
	}
	utils.JSON(w, http.StatusOK, ex)
}

// List returns exchanges, filtered by query parameters
func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	f := repositories.ExchangeFilter{
		Mobile: r.URL.Query().Get("mobile"),
		Status: r.URL.Query().Get("status"),
	}
	f.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	f.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	var err error
	if f.From, f.To, err = parseDateRange(r); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	exchanges, err := h.Service.ListExchanges(r.Context(), f)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list exchanges")
		return
	}
	if exchanges == nil {
		exchanges = []*models.Exchange{}
	}
	utils.JSON(w, http.StatusOK, exchanges)
}

// Cancel voids a calculated exchange
func (h *ExchangeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid exchange id")
		return
	}

	if err := h.Service.CancelExchange(r.Context(), id); err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": models.ExchangeCancelled})
}

// Stats returns aggregate exchange counters
func (h *ExchangeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
