//go:build unit

package uow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"シリアライズ失敗", &pgconn.PgError{Code: "40001"}, true},
		{"デッドロック(ラップ済み)", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"排他制約違反はリトライしない", &pgconn.PgError{Code: "23P01"}, false},
		{"PostgreSQL以外のエラー", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}

func TestNewTxBackOff(t *testing.T) {
	b := newTxBackOff()

	first := b.NextBackOff()
	assert.GreaterOrEqual(t, first, 80*time.Millisecond)
	assert.LessOrEqual(t, first, 120*time.Millisecond)

	for range maxTxRetries - 1 {
		assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	}
	assert.Equal(t, backoff.Stop, b.NextBackOff(), "stops after the retry budget")
}

func TestRetryNotify_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	final := &pgconn.PgError{Code: "23P01"}

	err := backoff.Retry(func() error {
		calls++
		return backoff.Permanent(final)
	}, newTxBackOff())

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, final)
}
