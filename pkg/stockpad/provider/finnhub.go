package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stockpad/stockpad/pkg/stockpad/format"
	"github.com/stockpad/stockpad/pkg/stockpad/types"
)

// DefaultBaseURL is the Finnhub REST endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// metricFallbacks maps each metrics-backed storage column to an ordered
// list of Finnhub metric keys; the first present value wins.
var metricFallbacks = map[string][]string{
	"pe_ratio":       {"peBasicExclExtraTTM", "peTTM"},
	"pb_ratio":       {"pbAnnual", "pbQuarterly"},
	"ps_ratio":       {"psAnnual", "psTTM"},
	"week52_high":    {"52WeekHigh"},
	"week52_low":     {"52WeekLow"},
	"week52_return":  {"52WeekPriceReturnDaily"},
	"beta":           {"beta"},
	"dividend_yield": {"dividendYieldIndicatedAnnual"},
	"roe":            {"roeTTM", "roeRfy"},
	"roa":            {"roaTTM", "roaRfy"},
	"debt_equity":    {"totalDebt/totalEquityAnnual", "totalDebt/totalEquityQuarterly"},
	"current_ratio":  {"currentRatioAnnual", "currentRatioQuarterly"},
	"gross_margin":   {"grossMarginTTM", "grossMarginAnnual"},
	"net_margin":     {"netProfitMarginTTM", "netProfitMarginAnnual"},
	"revenue_growth": {"revenueGrowthTTMYoy", "revenueGrowth3Y"},
}

// Client talks to Finnhub over plain HTTP. No retries: a failed fetch is
// reported and the user re-triggers.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
}

// NewClient builds a Finnhub client. baseURL falls back to DefaultBaseURL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpc:   &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Fetch issues up to three lookups and returns the normalized snapshot.
// A zero or missing current price means the symbol is unknown to the
// provider and maps to ErrTickerNotFound. Nothing is written anywhere on
// failure; the caller decides what to persist.
func (c *Client) Fetch(ctx context.Context, ticker string, need SourceMask) (types.MarketData, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	var q struct {
		Current   float64 `json:"c"`
		PrevClose float64 `json:"pc"`
	}
	if err := c.get(ctx, "quote", url.Values{"symbol": {t}}, &q); err != nil {
		return nil, err
	}
	if q.Current == 0 {
		return nil, fmt.Errorf("%s: %w", t, types.ErrTickerNotFound)
	}

	m := types.MarketData{"price": round(q.Current, 2)}
	if q.PrevClose != 0 {
		m["change_pct"] = round((q.Current-q.PrevClose)/q.PrevClose*100, 2)
	}

	var p struct {
		Name            string   `json:"name"`
		GSector         string   `json:"gsector"`
		Sector          string   `json:"sector"`
		FinnhubIndustry string   `json:"finnhubIndustry"`
		Industry        string   `json:"industry"`
		MarketCap       *float64 `json:"marketCapitalization"`
	}
	if err := c.get(ctx, "stock/profile2", url.Values{"symbol": {t}}, &p); err != nil {
		return nil, err
	}
	m["name"] = firstNonEmpty(p.Name, t)
	if s := firstNonEmpty(p.GSector, p.Sector); s != "" {
		m["sector"] = s
	}
	if s := firstNonEmpty(p.FinnhubIndustry, p.Industry); s != "" {
		m["industry"] = s
	}
	// Finnhub reports market cap in millions; stored preformatted.
	if p.MarketCap != nil && *p.MarketCap > 0 {
		m["market_cap"] = format.Cap(*p.MarketCap * 1e6)
	}

	if need.Has(NeedMetrics) {
		var mr struct {
			Metric map[string]any `json:"metric"`
		}
		if err := c.get(ctx, "stock/metric", url.Values{"symbol": {t}, "metric": {"all"}}, &mr); err != nil {
			return nil, err
		}
		for key, chain := range metricFallbacks {
			if v, ok := lookupMetric(mr.Metric, chain); ok {
				m[key] = round(v, 4)
			}
		}
	}

	return m, nil
}

// get performs one API call and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("token", c.token)
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &types.TransportError{Endpoint: endpoint, Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &types.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &types.TransportError{Endpoint: endpoint, Err: fmt.Errorf("status %s", resp.Status)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &types.ResponseError{Endpoint: endpoint, Reason: err.Error()}
	}
	return nil
}

// lookupMetric walks the fallback chain and returns the first numeric value.
func lookupMetric(metric map[string]any, chain []string) (float64, bool) {
	for _, k := range chain {
		if v, ok := metric[k]; ok && v != nil {
			switch n := v.(type) {
			case float64:
				return n, true
			case json.Number:
				if f, err := n.Float64(); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
