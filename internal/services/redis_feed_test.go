package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/ruralpay/ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisFeed(t *testing.T) {
	t.Run("transfer is pushed to both accounts", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		feed := NewRedisFeed(client, 50)
		tx := newTransaction(t, models.TransactionTransfer, "CHK-00001001", "SAV-00001002", "20")
		msg := SuccessMessage(tx)

		mock.ExpectLPush("ledger:notifications:CHK-00001001", msg).SetVal(1)
		mock.ExpectLTrim("ledger:notifications:CHK-00001001", 0, 49).SetVal("OK")
		mock.ExpectLPush("ledger:notifications:SAV-00001002", msg).SetVal(1)
		mock.ExpectLTrim("ledger:notifications:SAV-00001002", 0, 49).SetVal("OK")

		require.NoError(t, feed.OnSuccess(tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deposit only touches the destination", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		feed := NewRedisFeed(client, 0)
		tx := newTransaction(t, models.TransactionDeposit, "", "CHK-00001001", "20")

		mock.ExpectLPush("ledger:notifications:CHK-00001001", SuccessMessage(tx)).SetVal(1)
		mock.ExpectLTrim("ledger:notifications:CHK-00001001", 0, 99).SetVal("OK")

		require.NoError(t, feed.OnSuccess(tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failures go to the shared list", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		feed := NewRedisFeed(client, 10)

		mock.ExpectLPush("ledger:notifications:failed", "Transaction failed: N/A. Reason: boom").SetVal(1)
		mock.ExpectLTrim("ledger:notifications:failed", 0, 9).SetVal("OK")

		require.NoError(t, feed.OnFailure(nil, "boom"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis errors are returned", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		feed := NewRedisFeed(client, 10)
		tx := newTransaction(t, models.TransactionDeposit, "", "CHK-00001001", "20")

		mock.ExpectLPush("ledger:notifications:CHK-00001001", SuccessMessage(tx)).SetErr(errors.New("connection refused"))

		err := feed.OnSuccess(tx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("recent", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		feed := NewRedisFeed(client, 10)

		mock.ExpectLRange("ledger:notifications:CHK-00001001", 0, 4).SetVal([]string{"b", "a"})

		msgs, err := feed.Recent(context.Background(), "CHK-00001001", 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, msgs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
