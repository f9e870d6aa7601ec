package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
)

// HTTPProvider implements Provider against the forecast service's REST API.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPProvider creates a provider client with optional proxy support.
func NewHTTPProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *HTTPProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (p *HTTPProvider) Name() string { return "http" }

// wirePoint is the expected JSON shape of one forecast day.
type wirePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
}

type wireForecast struct {
	Points       []wirePoint `json:"points"`
	Confidence   float64     `json:"confidence"`
	ModelVersion string      `json:"model_version"`
}

func (p *HTTPProvider) GenerateForecast(ctx context.Context, businessID string, horizonDays int) (*model.Forecast, error) {
	endpoint := fmt.Sprintf("%s/api/v1/forecast?business_id=%s&horizon_days=%d",
		p.BaseURL, url.QueryEscape(businessID), horizonDays)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", model.ErrProviderUnavailable, resp.StatusCode)
	}

	var wire wireForecast
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	if len(wire.Points) == 0 {
		return nil, &model.InsufficientDataError{Reason: "provider returned an empty forecast"}
	}

	points := make([]model.ForecastPoint, 0, len(wire.Points))
	for _, wp := range wire.Points {
		date, err := time.Parse("2006-01-02", wp.Date)
		if err != nil {
			return nil, fmt.Errorf("parse forecast date %q: %w", wp.Date, err)
		}
		points = append(points, model.ForecastPoint{
			Date:    date,
			Revenue: decimal.NewFromFloat(wp.Revenue).Round(2),
			Lower:   decimal.NewFromFloat(wp.Lower).Round(2),
			Upper:   decimal.NewFromFloat(wp.Upper).Round(2),
		})
	}

	return &model.Forecast{
		BusinessID:   businessID,
		Points:       points,
		Confidence:   wire.Confidence,
		ModelVersion: wire.ModelVersion,
	}, nil
}
