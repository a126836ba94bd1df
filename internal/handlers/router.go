package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/ruralpay/ledger/internal/middleware"
	"github.com/ruralpay/ledger/internal/services"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP layer dispatches to.
type Dependencies struct {
	Bank          *services.BankingService
	Transactions  *services.TransactionService
	Notifications *services.NotificationService
	ISO20022      *services.ISO20022Service
	QR            *services.QRService
	Logger        *logrus.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	users := NewUserHandler(deps.Bank)
	accounts := NewAccountHandler(deps.Bank, deps.Transactions)
	qr := NewQRHandler(deps.Bank, deps.QR)
	transactions := NewTransactionHandler(deps.Bank, deps.Transactions, deps.ISO20022, deps.Notifications)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(mW.SecurityHeaders)
	r.Use(mW.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", users.Register)
		r.Post("/auth/login", users.Login)
		r.Get("/users/{userId}", users.GetUser)
		r.Post("/users/{userId}/deactivate", users.DeactivateUser)
		r.Get("/users/{userId}/accounts", users.ListAccounts)

		r.Post("/accounts", accounts.CreateAccount)
		r.Get("/accounts/{number}", accounts.GetAccount)
		r.Post("/accounts/{number}/close", accounts.CloseAccount)
		r.Get("/accounts/{number}/transactions", accounts.AccountTransactions)
		r.Get("/accounts/{number}/qr", qr.DepositQR)

		r.Post("/transactions/deposit", transactions.Deposit)
		r.Post("/transactions/withdraw", transactions.Withdraw)
		r.Post("/transactions/transfer", transactions.Transfer)
		r.Get("/transactions", transactions.ListTransactions)
		r.Delete("/transactions", transactions.ClearHistory)
		r.Get("/transactions/stats", transactions.Stats)
		r.Get("/transactions/{txId}", transactions.GetTransaction)
		r.Get("/transactions/{txId}/iso20022", transactions.ExportISO20022)

		r.Get("/notifications", transactions.Notifications)
	})

	return r
}
