// Package nominatim is a minimal client for the OpenStreetMap Nominatim search API.
package nominatim

import (
	"net/http"
	"strings"
	"time"
)

// Client sends address searches to a Nominatim instance.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. Nominatim's usage policy requires an
// identifying User-Agent.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
