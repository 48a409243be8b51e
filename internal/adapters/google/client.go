// Package google adapts the Google Maps web services (Geocoding,
// Directions, Street View and Static Maps) to the service ports.
package google

import (
	"errors"
	"moving-presurvey-service/internal/platform/upstream"
	"strings"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client holds the credential and transport shared by the Google adapters.
type Client struct {
	http    *upstream.Client
	apiKey  string
	baseURL string
}

func NewClient(apiKey string, opts upstream.Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}

	return &Client{
		http:    upstream.New("google", opts),
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}, nil
}

// WithBaseURL points the client at another host (tests).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// Google reports request-level failures as a 200 with a non-OK status.
type apiStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}
