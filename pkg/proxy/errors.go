package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/solar-sim/solar-sim-api/pkg/upstream"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// writeJSON writes an already-encoded JSON body verbatim.
func writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// internalErrorMessage is the redacted body for unexpected faults. The
// underlying error is logged with full detail but never sent to the
// caller.
const internalErrorMessage = "internal server error"

// upstreamStatusMessage formats a 502 message carrying the upstream
// status code, e.g. "Overpass API error: 503".
func upstreamStatusMessage(prefix string, err error) string {
	return fmt.Sprintf("%s: %d", prefix, upstream.StatusCode(err))
}
