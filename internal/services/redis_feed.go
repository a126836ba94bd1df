package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/ledger/internal/models"
)

const (
	feedKeyPrefix   = "ledger:notifications:"
	failedFeedKey   = feedKeyPrefix + "failed"
	defaultFeedSize = 100
)

// RedisFeed mirrors notification messages into a capped Redis list per
// account, newest first.
type RedisFeed struct {
	client  *redis.Client
	maxLen  int64
	timeout time.Duration
}

func NewRedisFeed(client *redis.Client, maxLen int64) *RedisFeed {
	if maxLen <= 0 {
		maxLen = defaultFeedSize
	}
	return &RedisFeed{
		client:  client,
		maxLen:  maxLen,
		timeout: 2 * time.Second,
	}
}

func FeedKey(accountNumber string) string {
	return feedKeyPrefix + accountNumber
}

func (f *RedisFeed) Name() string { return "RedisFeed" }

func (f *RedisFeed) OnSuccess(tx *models.Transaction) error {
	msg := SuccessMessage(tx)
	for _, account := range []string{tx.Source(), tx.Destination()} {
		if account == "" {
			continue
		}
		if err := f.push(FeedKey(account), msg); err != nil {
			return err
		}
	}
	return nil
}

func (f *RedisFeed) OnFailure(tx *models.Transaction, reason string) error {
	return f.push(failedFeedKey, FailureMessage(tx, reason))
}

// Recent returns up to n messages for the account, newest first.
func (f *RedisFeed) Recent(ctx context.Context, accountNumber string, n int64) ([]string, error) {
	if n <= 0 {
		n = f.maxLen
	}
	return f.client.LRange(ctx, FeedKey(accountNumber), 0, n-1).Result()
}

func (f *RedisFeed) push(key, msg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.client.LPush(ctx, key, msg).Err(); err != nil {
		return fmt.Errorf("failed to push notification to %s: %w", key, err)
	}
	if err := f.client.LTrim(ctx, key, 0, f.maxLen-1).Err(); err != nil {
		return fmt.Errorf("failed to trim %s: %w", key, err)
	}
	return nil
}
