// Package upstream provides HTTP clients for the three external
// services behind the proxy: the Overpass API, the Open-Meteo archive
// API, and the canopy height tile origin.
//
// Each client owns its http.Client with a fixed timeout and performs a
// single call per request; nothing is retried (a cache sits in front of
// every client, so the next request simply tries again).
package upstream

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// Service names used in errors, metrics and logs.
const (
	serviceOverpass = "overpass"
	serviceClimate  = "climate"
	serviceCanopy   = "canopy"
)

// fetch executes req and buffers the whole response body.
// Transport faults and non-2xx statuses come back as *Error.
func fetch(client *http.Client, service string, req *http.Request) ([]byte, error) {
	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	}()

	resp, err := client.Do(req)
	if err != nil {
		class := classify(err)
		upstreamErrorsTotal.WithLabelValues(service, string(class)).Inc()
		upstreamRequestsTotal.WithLabelValues(service, "transport_error").Inc()
		return nil, &Error{Service: service, Class: class, Err: err}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstreamErrorsTotal.WithLabelValues(service, string(ErrorClassStatus)).Inc()
		return nil, &Error{Service: service, Class: ErrorClassStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// A slow body read hits the same client timeout as the dial
		class := classify(err)
		upstreamErrorsTotal.WithLabelValues(service, string(class)).Inc()
		return nil, &Error{Service: service, Class: class, Err: err}
	}

	return body, nil
}
