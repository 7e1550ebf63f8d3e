// Package render writes gateway responses. Handlers hand it the error an api
// call returned and never look at transport details themselves.
package render

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ayush/edusync-gateway/internal/api"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// Message writes {"error": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Error logs err and writes it as {"error": message} with the status from
// Status.
func Error(w http.ResponseWriter, err error) {
	log.Printf("request failed: %v", err)
	backendErrors.WithLabelValues(errorKind(err)).Inc()
	status, msg := Status(err)
	Message(w, status, msg)
}

// Status picks the gateway status and the user-facing message for err.
func Status(err error) (int, string) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, "internal error"
	}
	switch apiErr.Kind {
	case api.KindConflict:
		return http.StatusConflict, apiErr.Message
	case api.KindServerMessage:
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	case api.KindNetworkUnavailable:
		return http.StatusServiceUnavailable, apiErr.Message
	case api.KindServerFault:
		return http.StatusBadGateway, apiErr.Message
	}
	if errors.Is(err, api.ErrMissingID) {
		return http.StatusBadRequest, "id is required"
	}
	if apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status, apiErr.Message
	}
	return http.StatusBadGateway, apiErr.Message
}

// Decode reads a JSON request body into out.
func Decode(r *http.Request, out interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(out)
}
