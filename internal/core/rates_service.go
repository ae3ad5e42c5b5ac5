package core

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/pkg/cache"
)

const rateCacheTTL = time.Hour

// Currency symbols used as display suffixes.
var currencySymbols = map[string]string{
	"USD": "$",
	"UAH": "₴",
	"EUR": "€",
}

// RateFetcher retrieves live USD-base exchange rates from an external API.
type RateFetcher interface {
	FetchRate(ctx context.Context, currency string) (float64, error)
}

// HTTPRateFetcher fetches rates from an open exchange-rate endpoint returning
// the {"rates": {"UAH": 41.3, ...}} shape.
type HTTPRateFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPRateFetcher creates a fetcher for the given rates API URL.
func NewHTTPRateFetcher(url string) *HTTPRateFetcher {
	return &HTTPRateFetcher{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRate returns the USD→currency rate from the live API.
func (f *HTTPRateFetcher) FetchRate(ctx context.Context, currency string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return 0, fmt.Errorf("rates: build request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rates: fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("rates: decode response: %w", err)
	}
	rate, ok := payload.Rates[currency]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rates: no rate for %s", currency)
	}
	return rate, nil
}

// ratesService implements RatesService with a one-hour cache bound on
// external API calls. When both the cache and the live fetch come up empty
// the price is displayed in USD rather than failing.
type ratesService struct {
	fetcher RateFetcher
	cache   cache.Cache
	logger  *zap.Logger
}

// NewRatesService creates a new RatesService instance.
func NewRatesService(fetcher RateFetcher, c cache.Cache, logger *zap.Logger) RatesService {
	return &ratesService{fetcher: fetcher, cache: c, logger: logger}
}

// GetRate returns the USD→currency rate. USD is always 1. A zero rate with
// nil error signals "no rate available, fall back to USD".
func (s *ratesService) GetRate(ctx context.Context, currency string) (float64, error) {
	currency = strings.ToUpper(currency)
	if currency == "" || currency == "USD" {
		return 1, nil
	}

	cacheKey := "rates:USD:" + currency
	if cached, err := s.cache.Get(cacheKey); err == nil && cached != "" {
		if rate, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil && rate > 0 {
			return rate, nil
		}
	}

	rate, err := s.fetcher.FetchRate(ctx, currency)
	if err != nil {
		s.logger.Warn("Exchange-rate fetch failed, falling back to USD",
			zap.String("currency", currency),
			zap.Error(err))
		return 0, nil
	}

	if cacheErr := s.cache.Set(cacheKey, strconv.FormatFloat(rate, 'f', -1, 64), rateCacheTTL); cacheErr != nil {
		s.logger.Warn("Failed to cache exchange rate", zap.Error(cacheErr))
	}
	return rate, nil
}

// DisplayPrice renders a USD price in the requested display currency.
func (s *ratesService) DisplayPrice(ctx context.Context, priceUSD float64, currency string) string {
	rate, err := s.GetRate(ctx, currency)
	if err != nil || rate == 0 {
		return FormatPrice(priceUSD, "USD", 1)
	}
	return FormatPrice(priceUSD, strings.ToUpper(currency), rate)
}

// FormatPrice formats a USD-denominated price for display. USD amounts are
// returned verbatim with a "$" suffix; other currencies are rounded to whole
// units with their symbol. A non-positive rate falls back to USD formatting.
func FormatPrice(priceUSD float64, currency string, rate float64) string {
	if currency == "USD" || rate <= 0 {
		return strconv.FormatFloat(priceUSD, 'f', -1, 64) + "$"
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = " " + currency
	}
	converted := math.Round(priceUSD * rate)
	return strconv.FormatFloat(converted, 'f', -1, 64) + symbol
}
