package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/solar-sim/solar-sim-api/pkg/logging"
)

// Overpass queries the Overpass API for OSM data (building footprints).
type Overpass struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOverpass creates an Overpass client for the given interpreter URL.
func NewOverpass(apiURL string, timeout time.Duration) *Overpass {
	return &Overpass{
		url:        apiURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("overpass-client"),
	}
}

// Query submits an Overpass QL query as a form-encoded POST and
// returns the JSON response body.
func (c *Overpass) Query(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := fetch(c.httpClient, serviceOverpass, req)
	if err != nil {
		c.logger.Warn().Err(err).Str("query_prefix", truncate(query, 100)).Msg("Overpass request failed")
		return nil, err
	}

	if !json.Valid(body) {
		c.logger.Error().Int("body_size", len(body)).Msg("Overpass returned non-JSON body")
		return nil, &Error{Service: serviceOverpass, Class: ErrorClassNetwork, Err: errors.New("response is not valid JSON")}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
