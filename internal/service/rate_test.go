package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancecash/dancecash-api/internal/config"
)

type stubDoer struct {
	calls int

	status int
	body   string
	err    error
}

func (d *stubDoer) Do(_ *http.Request) (*http.Response, error) {
	d.calls++

	if d.err != nil {
		return nil, d.err
	}

	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(bytes.NewBufferString(d.body)),
	}, nil
}

func newRateServiceWithDoer(doer httpDoer) *RateService {
	svc := NewRateService(&config.RatesConfig{
		CacheTTLSeconds: 60,
		FallbackRate:    500,
	})
	svc.httpClient = doer

	return svc
}

func TestRateService_CurrentRate(t *testing.T) {
	t.Run("returns the fetched rate", func(t *testing.T) {
		doer := &stubDoer{
			status: http.StatusOK,
			body:   `{"bitcoin-cash":{"usd":342.5}}`,
		}
		svc := newRateServiceWithDoer(doer)

		rate := svc.CurrentRate(context.Background())

		assert.Equal(t, 342.5, rate.BCHToUSD)
		assert.False(t, rate.Fallback)
		assert.False(t, rate.Timestamp.IsZero())
	})

	t.Run("serves from cache within the TTL", func(t *testing.T) {
		doer := &stubDoer{
			status: http.StatusOK,
			body:   `{"bitcoin-cash":{"usd":342.5}}`,
		}
		svc := newRateServiceWithDoer(doer)

		first := svc.CurrentRate(context.Background())
		second := svc.CurrentRate(context.Background())

		assert.Equal(t, first, second)
		assert.Equal(t, 1, doer.calls)
	})

	t.Run("falls back when the upstream call fails", func(t *testing.T) {
		doer := &stubDoer{err: fmt.Errorf("connection refused")}
		svc := newRateServiceWithDoer(doer)

		rate := svc.CurrentRate(context.Background())

		assert.Equal(t, 500.0, rate.BCHToUSD)
		assert.True(t, rate.Fallback)
	})

	t.Run("falls back on a non-200 response", func(t *testing.T) {
		doer := &stubDoer{status: http.StatusTooManyRequests, body: `{}`}
		svc := newRateServiceWithDoer(doer)

		rate := svc.CurrentRate(context.Background())

		assert.Equal(t, 500.0, rate.BCHToUSD)
		assert.True(t, rate.Fallback)
	})

	t.Run("retries upstream after serving a fallback", func(t *testing.T) {
		doer := &stubDoer{err: fmt.Errorf("connection refused")}
		svc := newRateServiceWithDoer(doer)

		rate := svc.CurrentRate(context.Background())
		require.True(t, rate.Fallback)

		doer.err = nil
		doer.status = http.StatusOK
		doer.body = `{"bitcoin-cash":{"usd":351}}`

		rate = svc.CurrentRate(context.Background())

		assert.Equal(t, 351.0, rate.BCHToUSD)
		assert.False(t, rate.Fallback)
		assert.Equal(t, 2, doer.calls)
	})
}
