// Package openmeteo reads current conditions from the keyless Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"moving-presurvey-service/internal/platform/upstream"
	"net/url"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://api.open-meteo.com"

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		Windspeed   *float64 `json:"windspeed"`
		Weathercode *int     `json:"weathercode"`
	} `json:"current_weather"`
}

type Client struct {
	http    *upstream.Client
	baseURL string
}

func New(opts upstream.Options) *Client {
	return &Client{http: upstream.New("openmeteo", opts), baseURL: DefaultBaseURL}
}

func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// CurrentConditions returns whatever the API reports; absent fields stay nil.
func (c *Client) CurrentConditions(ctx context.Context, at domain.Coordinates) (_ domain.CurrentConditions, err error) {
	defer obs.Time(ctx, "openmeteo.CurrentConditions")(&err)

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	q.Set("hourly", "temperature_2m,precipitation,wind_speed_10m")
	q.Set("current_weather", "true")

	var decoded forecastResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/v1/forecast?"+q.Encode(), nil, &decoded); err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("open-meteo forecast: %w", err)
	}

	if decoded.CurrentWeather == nil {
		return domain.CurrentConditions{}, nil
	}
	cw := decoded.CurrentWeather
	return domain.CurrentConditions{
		TemperatureC: cw.Temperature,
		WindKmh:      cw.Windspeed,
		WeatherCode:  cw.Weathercode,
	}, nil
}
