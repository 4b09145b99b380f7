package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jewel-backend/internal/services"
	"jewel-backend/internal/timeutil"
	"jewel-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// reportRange resolves the requested period. With no params it defaults
// to the current IST month so the dashboard works with a bare GET.
func reportRange(r *http.Request) (time.Time, time.Time, error) {
	from, to, err := parseDateRange(r)
	if err != nil {
		return from, to, err
	}
	now := timeutil.Now()
	if from.IsZero() {
		from = timeutil.StartOfMonth(now)
	}
	if to.IsZero() {
		to = timeutil.StartOfDay(now).AddDate(0, 0, 1)
	}
	return from, to, nil
}

// Sales returns the aggregate sales summary for a period
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.Service.Sales(r.Context(), from, to)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build sales summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// GSTRegister returns per-bill tax lines for a period
func (h *ReportHandler) GSTRegister(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	register, err := h.Service.GSTRegister(r.Context(), from, to)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build GST register")
		return
	}
	if register == nil {
		register = []services.GSTRow{}
	}
	utils.JSON(w, http.StatusOK, register)
}

// GSTRegisterCSV streams the GST register as a CSV download
func (h *ReportHandler) GSTRegisterCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.Service.GSTRegisterCSV(r.Context(), from, to)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build GST register")
		return
	}
	writeCSV(w, fmt.Sprintf("gst-register-%s.csv", from.Format(timeutil.DateLayout)), data)
}

// SalesCSV streams the daily sales summary as a CSV download
func (h *ReportHandler) SalesCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.Service.SalesCSV(r.Context(), from, to)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build sales report")
		return
	}
	writeCSV(w, fmt.Sprintf("sales-%s.csv", from.Format(timeutil.DateLayout)), data)
}

// TopCustomers ranks customers by purchase value for a period
func (h *ReportHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	customers, err := h.Service.TopCustomers(r.Context(), from, to, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to rank customers")
		return
	}
	if customers == nil {
		customers = []services.CustomerSummary{}
	}
	utils.JSON(w, http.StatusOK, customers)
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
