package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/solar-sim/solar-sim-api/pkg/logging"
)

// Canopy fetches canopy height GeoTIFF tiles from the configured tile
// origin (the Meta/WRI dataset on S3 by default).
type Canopy struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewCanopy creates a client for the tile origin base URL.
func NewCanopy(baseURL string, timeout time.Duration) *Canopy {
	return &Canopy{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("canopy-client"),
	}
}

// FetchTile fetches the GeoTIFF tile for a quadkey, buffering the
// whole payload (tiles run around 20 MB).
func (c *Canopy) FetchTile(ctx context.Context, quadkey string) ([]byte, error) {
	tileURL := fmt.Sprintf("%s/%s.tif", c.baseURL, quadkey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := fetch(c.httpClient, serviceCanopy, req)
	if err != nil {
		c.logger.Warn().Err(err).Str("quadkey", quadkey).Msg("Canopy tile fetch failed")
		return nil, err
	}

	return body, nil
}
