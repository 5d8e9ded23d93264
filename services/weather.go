package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WeatherReading is what the recommendation layer needs from a forecast.
// Fields are pointers so a partial reading degrades to user-entered values
// instead of fake zeros.
type WeatherReading struct {
	TempC      *float64 `json:"temp_c"`
	PrecipProb *float64 `json:"precip_prob"`
	Summary    string   `json:"summary"`
}

// WeatherProvider fetches current conditions for a city. A failed lookup is
// reported as an error and the caller falls back to whatever context the
// user typed in.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (*WeatherReading, error)
}

// OpenMeteoService resolves a city name through the Open-Meteo geocoding
// API and reads today's forecast. No API key needed.
type OpenMeteoService struct {
	GeocodeBaseURL  string
	ForecastBaseURL string
	Client          *http.Client
}

func NewOpenMeteoService() *OpenMeteoService {
	return &OpenMeteoService{
		GeocodeBaseURL:  "https://geocoding-api.open-meteo.com/v1/search",
		ForecastBaseURL: "https://api.open-meteo.com/v1/forecast",
		Client:          &http.Client{Timeout: 6 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature              float64 `json:"temperature_2m"`
		PrecipitationProbability float64 `json:"precipitation_probability"`
		WeatherCode              int     `json:"weather_code"`
	} `json:"current"`
}

var weatherCodeSummaries = map[int]string{
	0: "clear", 1: "mostly clear", 2: "partly cloudy", 3: "overcast",
	45: "fog", 48: "fog", 51: "drizzle", 53: "drizzle", 55: "drizzle",
	61: "rain", 63: "rain", 65: "heavy rain", 71: "snow", 73: "snow",
	75: "heavy snow", 80: "showers", 81: "showers", 82: "heavy showers",
	95: "thunderstorm",
}

func (s *OpenMeteoService) CurrentWeather(ctx context.Context, city string) (*WeatherReading, error) {
	if city == "" {
		return nil, fmt.Errorf("empty city")
	}

	geocodeURL := fmt.Sprintf("%s?name=%s&count=1", s.GeocodeBaseURL, url.QueryEscape(city))
	var geo geocodeResponse
	if err := s.getJSON(ctx, geocodeURL, &geo); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", city, err)
	}
	if len(geo.Results) == 0 {
		return nil, fmt.Errorf("unknown city %q", city)
	}
	loc := geo.Results[0]

	forecastURL := fmt.Sprintf(
		"%s?latitude=%f&longitude=%f&current=temperature_2m,precipitation_probability,weather_code",
		s.ForecastBaseURL, loc.Latitude, loc.Longitude,
	)
	var forecast forecastResponse
	if err := s.getJSON(ctx, forecastURL, &forecast); err != nil {
		return nil, fmt.Errorf("forecast for %q: %w", city, err)
	}

	temp := forecast.Current.Temperature
	precip := forecast.Current.PrecipitationProbability
	summary := weatherCodeSummaries[forecast.Current.WeatherCode]
	if summary == "" {
		summary = "unknown"
	}
	return &WeatherReading{
		TempC:      &temp,
		PrecipProb: &precip,
		Summary:    summary,
	}, nil
}

func (s *OpenMeteoService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
