package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dancecash/dancecash-api/internal/config"
)

const coinGeckoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin-cash&vs_currencies=usd"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Rate is a BCH/USD quote. Fallback is set when the upstream call failed
// and the hardcoded rate was substituted; pricing callers can surface it
// but must still get HTTP 200.
type Rate struct {
	BCHToUSD  float64
	Timestamp time.Time
	Fallback  bool
}

// RateService fetches the BCH/USD rate from CoinGecko with a short
// in-process cache. Upstream failure never propagates: the configured
// fallback rate is returned instead.
type RateService struct {
	conf       *config.RatesConfig
	httpClient httpDoer

	mu        sync.Mutex
	cached    Rate
	fetchedAt time.Time
}

func NewRateService(conf *config.RatesConfig) *RateService {
	return &RateService{
		conf: conf,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *RateService) CurrentRate(ctx context.Context) Rate {
	s.mu.Lock()
	defer s.mu.Unlock()

	ttl := time.Duration(s.conf.CacheTTLSeconds) * time.Second
	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < ttl && !s.cached.Fallback {
		return s.cached
	}

	rate, err := s.fetch(ctx)
	if err != nil {
		zap.L().Warn("rate fetch failed, using fallback rate", zap.Error(err))

		s.cached = Rate{
			BCHToUSD:  s.conf.FallbackRate,
			Timestamp: time.Now(),
			Fallback:  true,
		}
		s.fetchedAt = time.Now()

		return s.cached
	}

	s.cached = Rate{
		BCHToUSD:  rate,
		Timestamp: time.Now(),
	}
	s.fetchedAt = time.Now()

	return s.cached
}

func (s *RateService) fetch(ctx context.Context) (float64, error) {
	url := coinGeckoURL
	if s.conf.CoinGeckoAPIKey != "" {
		url += "&x_cg_demo_api_key=" + s.conf.CoinGeckoAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("s.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko returned %v", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("io.ReadAll -> %w", err)
	}

	var payload map[string]map[string]float64
	if err = json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	rate, ok := payload["bitcoin-cash"]["usd"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("bch price not found in response")
	}

	return rate, nil
}
