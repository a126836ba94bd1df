package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/ruralpay/ledger/internal/services"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	bank          *services.BankingService
	transactions  *services.TransactionService
	iso           *services.ISO20022Service
	notifications *services.NotificationService
	validator     *services.ValidationHelper
}

func NewTransactionHandler(bank *services.BankingService, transactions *services.TransactionService,
	iso *services.ISO20022Service, notifications *services.NotificationService) *TransactionHandler {
	return &TransactionHandler{
		bank:          bank,
		transactions:  transactions,
		iso:           iso,
		notifications: notifications,
		validator:     services.NewValidationHelper(),
	}
}

// AmountRequest represents a deposit or withdrawal payload
type AmountRequest struct {
	AccountNumber string          `json:"account_number" validate:"required" example:"CHK-00001001"`
	Amount        decimal.Decimal `json:"amount" example:"250.75"`
}

// TransferRequest represents a transfer payload
type TransferRequest struct {
	FromAccount string          `json:"from_account" validate:"required" example:"CHK-00001001"`
	ToAccount   string          `json:"to_account" validate:"required" example:"SAV-00001002"`
	Amount      decimal.Decimal `json:"amount" example:"100.00"`
}

// Deposit credits an account
// @Summary Deposit
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Deposit request"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	account, err := h.bank.FindAccount(req.AccountNumber)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	h.respond(w, func() (*models.Transaction, error) {
		return h.transactions.Deposit(account, req.Amount)
	})
}

// Withdraw debits an account
// @Summary Withdraw
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Withdrawal request"
// @Success 201 {object} models.Transaction
// @Failure 409 {object} services.ErrorResponse
// @Router /transactions/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	account, err := h.bank.FindAccount(req.AccountNumber)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	h.respond(w, func() (*models.Transaction, error) {
		return h.transactions.Withdraw(account, req.Amount)
	})
}

// Transfer moves funds between two accounts
// @Summary Transfer
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer request"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /transactions/transfer [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	from, err := h.bank.FindAccount(req.FromAccount)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}
	to, err := h.bank.FindAccount(req.ToAccount)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	h.respond(w, func() (*models.Transaction, error) {
		return h.transactions.Transfer(from, to, req.Amount)
	})
}

func (h *TransactionHandler) respond(w http.ResponseWriter, execute func() (*models.Transaction, error)) {
	tx, err := execute()
	if err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// ListTransactions lists the history in insertion order, optionally by type
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param type query string false "DEPOSIT, WITHDRAW or TRANSFER"
// @Success 200 {object} object{transactions=[]models.Transaction,count=int}
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var list []*models.Transaction
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := models.ParseTransactionType(raw)
		if err != nil {
			services.SendDomainError(w, err)
			return
		}
		list = h.transactions.TransactionsByType(t)
	} else {
		list = h.transactions.AllTransactions()
	}

	if list == nil {
		list = []*models.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": list,
		"count":        len(list),
	})
}

func (h *TransactionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"total":             h.transactions.TotalCount(),
		"successful":        h.transactions.SuccessfulCount(),
		"observer_failures": h.transactions.ObserverFailures(),
		"users":             h.bank.TotalUsers(),
		"active_users":      h.bank.ActiveUsers(),
		"accounts":          h.bank.TotalAccounts(),
		"active_accounts":   h.bank.ActiveAccounts(),
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactions.GetTransaction(chi.URLParam(r, "txId"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// ExportISO20022 renders a completed transfer as pacs.008
// @Summary Export transfer
// @Tags iso20022
// @Produce json
// @Param txId path string true "Transaction id"
// @Success 200 {object} object{status=string,messageType=string,xml=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{txId}/iso20022 [get]
func (h *TransactionHandler) ExportISO20022(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactions.GetTransaction(chi.URLParam(r, "txId"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	xmlData, err := h.iso.ExportTransfer(tx)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "converted",
		"messageType": "pacs.008.001.08",
		"xml":         xmlData,
	})
}

func (h *TransactionHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.transactions.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notes := h.notifications.Notifications()
	if notes == nil {
		notes = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notes,
		"count":         len(notes),
	})
}
