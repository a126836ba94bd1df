package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/ruralpay/ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRService_DepositQR(t *testing.T) {
	service := NewQRService(0)

	t.Run("active account", func(t *testing.T) {
		account := newTestAccount(t, "CHK-00001001", "0")

		data, err := service.DepositQR(account)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})

	t.Run("payload", func(t *testing.T) {
		account := newTestAccount(t, "CHK-00001001", "0")
		payload, err := DepositPayload(account)
		require.NoError(t, err)
		assert.JSONEq(t, `{"account":"CHK-00001001","type":"DEPOSIT"}`, payload)
	})

	t.Run("inactive account", func(t *testing.T) {
		account := newTestAccount(t, "CHK-00001001", "0")
		account.Deactivate()

		_, err := service.DepositQR(account)
		assert.ErrorIs(t, err, models.ErrInactive)
	})

	t.Run("nil account", func(t *testing.T) {
		_, err := service.DepositQR(nil)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}
