package services

import (
	"encoding/json"
	"fmt"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// QRService renders deposit instructions for an account as QR codes.
type QRService struct {
	size int
}

func NewQRService(size int) *QRService {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QRService{size: size}
}

type depositInstruction struct {
	Account string                 `json:"account"`
	Type    models.TransactionType `json:"type"`
}

// DepositPayload is the JSON text encoded into the QR code.
func DepositPayload(account *models.Account) (string, error) {
	data, err := json.Marshal(depositInstruction{
		Account: account.Number(),
		Type:    models.TransactionDeposit,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DepositQR returns a PNG QR code asking payers to deposit into account.
func (s *QRService) DepositQR(account *models.Account) ([]byte, error) {
	if account == nil {
		return nil, fmt.Errorf("%w: account is required", models.ErrValidation)
	}
	if !account.Active() {
		return nil, fmt.Errorf("%w: account %s is deactivated", models.ErrInactive, account.Number())
	}

	payload, err := DepositPayload(account)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
