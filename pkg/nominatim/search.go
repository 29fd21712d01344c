package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geocortex/pkg/logger"
	"geocortex/pkg/metrics"
)

// Place is one candidate returned by /search. Coordinates are strings on the wire.
type Place struct {
	PlaceID     int64    `json:"place_id"`
	Licence     string   `json:"licence,omitempty"`
	OSMType     string   `json:"osm_type,omitempty"`
	OSMID       int64    `json:"osm_id,omitempty"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Class       string   `json:"class,omitempty"`
	Type        string   `json:"type,omitempty"`
	PlaceRank   int      `json:"place_rank,omitempty"`
	Importance  float64  `json:"importance,omitempty"`
	AddressType string   `json:"addresstype,omitempty"`
	Name        string   `json:"name,omitempty"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox,omitempty"`
}

// StatusError reports a non-200 answer from the geocoder.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nominatim returned status %d: %s", e.StatusCode, e.Body)
}

// Search looks up address and returns the candidates as sent, unvalidated.
// A single attempt is made.
func (c *Client) Search(ctx context.Context, address string) ([]Place, error) {
	searchURL := c.baseURL + "/search?format=json&q=" + url.QueryEscape(address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to create geocode request: url=%s, error=%v", searchURL, err)
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe("error", start)
		logger.GlobalLogger.Errorf("Failed to execute geocode request: url=%s, error=%v", searchURL, err)
		return nil, fmt.Errorf("failed to execute geocode request: %w", err)
	}
	defer resp.Body.Close()
	observe(strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to read geocode response: url=%s, error=%v", searchURL, err)
		return nil, fmt.Errorf("failed to read geocode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.GlobalLogger.Errorf("Geocode request failed: url=%s, status=%d, body=%s", searchURL, resp.StatusCode, string(body))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		logger.GlobalLogger.Errorf("Failed to parse geocode response: url=%s, error=%v", searchURL, err)
		return nil, fmt.Errorf("failed to parse geocode response: %w", err)
	}
	logger.GlobalLogger.Debugf("Geocoded %q: %d candidates", address, len(places))
	return places, nil
}

func observe(status string, start time.Time) {
	metrics.GeocoderRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
