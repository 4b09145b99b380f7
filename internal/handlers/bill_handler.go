package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"jewel-backend/internal/billing"
	"jewel-backend/internal/middleware"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/services"
	"jewel-backend/internal/timeutil"
	"jewel-backend/pkg/utils"
)

type BillHandler struct {
	Service *services.BillService
	PDF     *services.PDFService
}

func NewBillHandler(s *services.BillService, pdf *services.PDFService) *BillHandler {
	return &BillHandler{Service: s, PDF: pdf}
}

// billError maps engine failures to client errors: a missing rate or an
// invalid purity is the caller's problem, not a server fault.
func billError(w http.ResponseWriter, err error) {
	switch {
	case billing.IsRateError(err):
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		utils.Error(w, http.StatusNotFound, "Not found")
	default:
		utils.Error(w, http.StatusBadRequest, err.Error())
	}
}

// Calculate previews a bill without saving it
func (h *BillHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCustomerInfo(req.Customer); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	comp, err := h.Service.Calculate(r.Context(), req)
	if err != nil {
		billError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, comp)
}

// Create computes and persists a bill
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
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

	bill, err := h.Service.CreateBill(r.Context(), req, createdBy)
	if err != nil {
		billError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, bill)
}

// Get returns a bill by numeric id
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	bill, err := h.Service.GetBill(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// GetByNumber returns a bill by its bill number
func (h *BillHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	bill, err := h.Service.GetBillByNumber(r.Context(), number)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// List returns active bills, filtered by query parameters
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	f := repositories.BillFilter{
		Mobile:        r.URL.Query().Get("mobile"),
		PaymentStatus: r.URL.Query().Get("payment_status"),
	}
	f.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	f.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	var err error
	if f.From, f.To, err = parseDateRange(r); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	bills, err := h.Service.ListBills(r.Context(), f)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to list bills")
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	utils.JSON(w, http.StatusOK, bills)
}

// UpdatePayment transitions a bill's payment status
func (h *BillHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	var req models.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var updatedBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		updatedBy = &userID
	}

	bill, err := h.Service.UpdatePayment(r.Context(), id, req, updatedBy)
	if err != nil {
		billError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// PaymentLogs returns the payment audit trail for a bill
func (h *BillHandler) PaymentLogs(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	logs, err := h.Service.PaymentLogs(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load payment logs")
		return
	}
	if logs == nil {
		logs = []models.BillPaymentLog{}
	}
	utils.JSON(w, http.StatusOK, logs)
}

// Archive soft-deletes a bill
func (h *BillHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	if err := h.Service.ArchiveBill(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Bill not found or already archived")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to archive bill")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// QR returns the bill QR payload and its PNG data URL
func (h *BillHandler) QR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	bill, err := h.Service.GetBill(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}

	dataURL, err := h.Service.QRDataURL(bill)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"payload": h.Service.QRPayload(bill),
		"image":   dataURL,
	})
}

// DownloadPDF streams the printable invoice
func (h *BillHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	bill, err := h.Service.GetBill(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Bill not found")
		return
	}

	payload, err := json.Marshal(h.Service.QRPayload(bill))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to build QR payload")
		return
	}

	pdfBytes, err := h.PDF.GenerateBillPDF(bill, payload)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, bill.BillNumber))
	w.Write(pdfBytes)
}

// parseDateRange reads from/to query params as IST dates. "to" is
// inclusive: the range extends to the end of that day.
func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	if s := r.URL.Query().Get("from"); s != "" {
		from, err = time.ParseInLocation(timeutil.DateLayout, s, timeutil.IST)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date, want YYYY-MM-DD")
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		to, err = time.ParseInLocation(timeutil.DateLayout, s, timeutil.IST)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date, want YYYY-MM-DD")
		}
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}
