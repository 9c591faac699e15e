// Package geo reverse-geocodes coordinates into a city and state.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
)

// NominatimClient queries the OpenStreetMap Nominatim reverse endpoint.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

var _ location.Geocoder = (*NominatimClient)(nil)

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
	Error string `json:"error"`
}

// Reverse implements location.Geocoder. The place name is the first of
// city, town or village that is set.
func (c *NominatimClient) Reverse(ctx context.Context, latitude, longitude float64) (location.Location, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to build geocoder request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "pt-BR")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return location.Location{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return location.Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return location.Location{}, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	city := firstNonEmpty(body.Address.City, body.Address.Town, body.Address.Village)
	if body.Error != "" || city == "" || body.Address.State == "" {
		return location.Location{}, location.ErrPlaceNotFound
	}

	return location.Location{City: city, State: body.Address.State}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
