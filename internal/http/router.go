package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jewel-backend/internal/handlers"
	"jewel-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	rateHandler *handlers.RateHandler,
	billHandler *handlers.BillHandler,
	exchangeHandler *handlers.ExchangeHandler,
	customerHandler *handlers.CustomerHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")

	// Protected API routes - Rates (anyone signed in can read, admins publish)
	ratesAPI := r.PathPrefix("/api/rates").Subrouter()
	ratesAPI.Use(authMiddleware.Authenticate)
	ratesAPI.HandleFunc("", rateHandler.CurrentRates).Methods("GET")
	ratesAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(rateHandler.PublishRate)).ServeHTTP).Methods("POST")
	ratesAPI.HandleFunc("/{metalType}", rateHandler.GetRate).Methods("GET")
	ratesAPI.HandleFunc("/{metalType}/history", rateHandler.History).Methods("GET")

	// Protected API routes - Bills
	billsAPI := r.PathPrefix("/api/bills").Subrouter()
	billsAPI.Use(authMiddleware.Authenticate)
	billsAPI.HandleFunc("", billHandler.List).Methods("GET")
	billsAPI.HandleFunc("", billHandler.Create).Methods("POST")
	billsAPI.HandleFunc("/calculate", billHandler.Calculate).Methods("POST")
	billsAPI.HandleFunc("/number/{number}", billHandler.GetByNumber).Methods("GET")
	billsAPI.HandleFunc("/{id}", billHandler.Get).Methods("GET")
	billsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(billHandler.Archive)).ServeHTTP).Methods("DELETE")
	billsAPI.HandleFunc("/{id}/payment", billHandler.UpdatePayment).Methods("PATCH")
	billsAPI.HandleFunc("/{id}/payment-logs", billHandler.PaymentLogs).Methods("GET")
	billsAPI.HandleFunc("/{id}/qr", billHandler.QR).Methods("GET")
	billsAPI.HandleFunc("/{id}/pdf", billHandler.DownloadPDF).Methods("GET")

	// Protected API routes - Exchanges
	exchangesAPI := r.PathPrefix("/api/exchanges").Subrouter()
	exchangesAPI.Use(authMiddleware.Authenticate)
	exchangesAPI.HandleFunc("", exchangeHandler.List).Methods("GET")
	exchangesAPI.HandleFunc("", exchangeHandler.Create).Methods("POST")
	exchangesAPI.HandleFunc("/calculate", exchangeHandler.Calculate).Methods("POST")
	exchangesAPI.HandleFunc("/stats", exchangeHandler.Stats).Methods("GET")
	exchangesAPI.HandleFunc("/number/{number}", exchangeHandler.GetByNumber).Methods("GET")
	exchangesAPI.HandleFunc("/{id}", exchangeHandler.Get).Methods("GET")
	exchangesAPI.HandleFunc("/{id}/cancel", exchangeHandler.Cancel).Methods("POST")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("/search", customerHandler.Search).Methods("GET")
	customersAPI.HandleFunc("/mobile/{mobile}", customerHandler.GetByMobile).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.Get).Methods("GET")

	// Protected API routes - Reports (admins and accountants)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/sales", authMiddleware.RequireRole("admin", "accountant")(http.HandlerFunc(reportHandler.Sales)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/sales.csv", authMiddleware.RequireRole("admin", "accountant")(http.HandlerFunc(reportHandler.SalesCSV)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/gst", authMiddleware.RequireRole("admin", "accountant")(http.HandlerFunc(reportHandler.GSTRegister)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/gst.csv", authMiddleware.RequireRole("admin", "accountant")(http.HandlerFunc(reportHandler.GSTRegisterCSV)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/top-customers", authMiddleware.RequireRole("admin", "accountant")(http.HandlerFunc(reportHandler.TopCustomers)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Basic).Methods("GET")
	r.HandleFunc("/healthz", healthHandler.Liveness).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
