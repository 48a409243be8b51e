package google

import (
	"moving-presurvey-service/internal/domain"
	"net/url"
)

// Imagery builds signed-by-key Street View and satellite image URLs.
// It never calls the API itself; the browser fetches the images.
type Imagery struct {
	client *Client
}

func NewImagery(client *Client) *Imagery {
	return &Imagery{client: client}
}

func (i *Imagery) StreetViewURL(c domain.Coordinates) string {
	q := url.Values{}
	q.Set("size", "640x360")
	q.Set("location", formatLatLng(c))
	q.Set("key", i.client.apiKey)
	return i.client.baseURL + "/streetview?" + q.Encode()
}

func (i *Imagery) SatelliteURL(c domain.Coordinates) string {
	q := url.Values{}
	q.Set("center", formatLatLng(c))
	q.Set("zoom", "18")
	q.Set("size", "320x180")
	q.Set("maptype", "satellite")
	q.Set("key", i.client.apiKey)
	return i.client.baseURL + "/staticmap?" + q.Encode()
}
