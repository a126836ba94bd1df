package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/ledger/internal/services"
)

type QRHandler struct {
	bank    *services.BankingService
	service *services.QRService
}

func NewQRHandler(bank *services.BankingService, service *services.QRService) *QRHandler {
	return &QRHandler{
		bank:    bank,
		service: service,
	}
}

// DepositQR renders a deposit QR code for an account
// @Summary Deposit QR Code
// @Description PNG QR code encoding a deposit instruction for the account
// @Tags accounts
// @Produce png
// @Param number path string true "Account number"
// @Success 200 {file} binary
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{number}/qr [get]
func (h *QRHandler) DepositQR(w http.ResponseWriter, r *http.Request) {
	account, err := h.bank.FindAccount(chi.URLParam(r, "number"))
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	png, err := h.service.DepositQR(account)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
