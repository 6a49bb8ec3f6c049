package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medibook/models"

	"go.uber.org/zap"
)

// ipAPIResponse mirrors the fields we read from ipapi.co.
type ipAPIResponse struct {
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IPLocationProvider resolves a position from the caller's IP via ipapi.co.
// The HTTP client timeout bounds the wait; a lookup that exceeds it resolves
// to a typed timeout error rather than blocking step completion.
type IPLocationProvider struct {
	Client  *http.Client
	BaseURL string
	IP      string // client IP to resolve; empty resolves the server's own
	Logger  *zap.Logger
}

// NewIPLocationProvider builds a provider with the given lookup timeout.
func NewIPLocationProvider(ip string, timeout time.Duration, logger *zap.Logger) *IPLocationProvider {
	return &IPLocationProvider{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: "https://ipapi.co",
		IP:      ip,
		Logger:  logger,
	}
}

// GetCurrentLocation queries the geolocation API and maps transport-level
// failures onto the adapter error taxonomy.
func (p *IPLocationProvider) GetCurrentLocation(ctx context.Context) (*models.Location, error) {
	url := fmt.Sprintf("%s/json/", p.BaseURL)
	if p.IP != "" {
		url = fmt.Sprintf("%s/%s/json/", p.BaseURL, p.IP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewAdapterError("location", CodeUnavailable, err.Error())
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			p.Logger.Warn("location lookup timed out", zap.String("ip", p.IP))
			return nil, NewAdapterError("location", CodeTimeout, "geolocation lookup timed out")
		}
		p.Logger.Error("location lookup failed", zap.String("ip", p.IP), zap.Error(err))
		return nil, NewAdapterError("location", CodeUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewAdapterError("location", CodePermissionDenied,
			fmt.Sprintf("geolocation API refused the request (status %d)", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, NewAdapterError("location", CodeUnavailable,
			fmt.Sprintf("geolocation API returned status %d", resp.StatusCode))
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewAdapterError("location", CodeUnavailable, "failed to decode geolocation response")
	}

	address := strings.Join(nonEmptyParts(body.City, body.Region, body.Country), ", ")
	if address == "" {
		address = "Unknown"
	}

	return &models.Location{
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		Address:   address,
		Timestamp: time.Now(),
	}, nil
}

func isClientTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var t timeouter
	return errors.As(err, &t) && t.Timeout()
}

func nonEmptyParts(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
