package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/solar-sim/solar-sim-api/pkg/logging"
)

// Fixed historical window for the daily temperature series. Open-Meteo
// archive data for this range never changes, which is what makes the
// long cache TTL safe.
const (
	climateStartDate = "1994-01-01"
	climateEndDate   = "2024-12-31"
)

// Climate fetches 30-year daily temperature history from the
// Open-Meteo archive API.
type Climate struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClimate creates a client for the Open-Meteo archive endpoint.
func NewClimate(apiURL string, timeout time.Duration) *Climate {
	return &Climate{
		url:        apiURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("climate-client"),
	}
}

// DailyTemperature fetches the daily max/min temperature series for a
// location. Callers pass coordinates already rounded to the cache grid
// so the stored response matches its cache key.
func (c *Climate) DailyTemperature(ctx context.Context, lat, lng float64) ([]byte, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("start_date", climateStartDate)
	q.Set("end_date", climateEndDate)
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := fetch(c.httpClient, serviceClimate, req)
	if err != nil {
		c.logger.Warn().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("Climate request failed")
		return nil, err
	}

	if !json.Valid(body) {
		c.logger.Error().Int("body_size", len(body)).Msg("Climate API returned non-JSON body")
		return nil, &Error{Service: serviceClimate, Class: ErrorClassNetwork, Err: errors.New("response is not valid JSON")}
	}

	return body, nil
}
