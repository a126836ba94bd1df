package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/ledger/internal/services"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	bank         *services.BankingService
	transactions *services.TransactionService
	validator    *services.ValidationHelper
}

func NewAccountHandler(bank *services.BankingService, transactions *services.TransactionService) *AccountHandler {
	return &AccountHandler{
		bank:         bank,
		transactions: transactions,
		validator:    services.NewValidationHelper(),
	}
}

// CreateAccountRequest represents the account opening payload
type CreateAccountRequest struct {
	UserID         string          `json:"user_id" validate:"required" example:"USR-001001"`
	InitialBalance decimal.Decimal `json:"initial_balance" example:"100.00"`
	AccountType    string          `json:"account_type" validate:"required" example:"CHECKING"`
}

// CreateAccount opens an account
// @Summary Open account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account request"
// @Success 201 {object} models.AccountSnapshot
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	account, err := h.bank.CreateAccount(req.UserID, req.InitialBalance, req.AccountType)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account.Snapshot())
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.bank.FindAccount(chi.URLParam(r, "number"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account.Snapshot())
}

func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if err := h.bank.CloseAccount(number); err != nil {
		services.SendDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "closed",
		"account_number": number,
	})
}

// AccountTransactions lists the account history, newest first
// @Summary Account history
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} object{account_number=string,transactions=[]object,count=int,net_amount=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{number}/transactions [get]
func (h *AccountHandler) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	account, err := h.bank.FindAccount(chi.URLParam(r, "number"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	history := h.transactions.AccountTransactions(account.Number())
	writeJSON(w, http.StatusOK, map[string]any{
		"account_number": account.Number(),
		"transactions":   history,
		"count":          len(history),
		"net_amount":     h.transactions.NetAmount(account.Number()),
	})
}
