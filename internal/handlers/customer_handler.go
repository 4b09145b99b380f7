package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
	"jewel-backend/pkg/utils"
)

type CustomerHandler struct {
	Customers *repositories.CustomerRepository
}

func NewCustomerHandler(repo *repositories.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{Customers: repo}
}

// Search finds customers by name or mobile fragment
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		utils.Error(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	customers, err := h.Customers.Search(r.Context(), q, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to search customers")
		return
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	utils.JSON(w, http.StatusOK, customers)
}

// Get returns a customer by numeric id
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	customer, err := h.Customers.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Customer not found")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// GetByMobile returns a customer by exact mobile number
func (h *CustomerHandler) GetByMobile(w http.ResponseWriter, r *http.Request) {
	mobile := mux.Vars(r)["mobile"]
	customer, err := h.Customers.GetByMobile(r.Context(), mobile)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Customer not found")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}
