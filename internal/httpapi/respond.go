package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/oisee/gridbridge/pkg/grid"
)

// errorBody is the failure payload of every route.
type errorBody struct {
	Error   string       `json:"error"`
	Details errorDetails `json:"details"`
}

type errorDetails struct {
	Kind   string `json:"kind"`
	Status int    `json:"status,omitempty"` // remote status
	Type   string `json:"type,omitempty"`   // remote error type
	Field  string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, details := classify(err)
	lg := hlog.FromRequest(r)
	if status >= http.StatusInternalServerError {
		lg.Error().Err(err).Str("kind", details.Kind).Msg("request failed")
	} else {
		lg.Debug().Err(err).Str("kind", details.Kind).Msg("request rejected")
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Details: details})
}

// classify maps an error to a response status and its details.
func classify(err error) (int, errorDetails) {
	var (
		vErr      *grid.ValidationError
		safetyErr *grid.SafetyError
		notFound  *grid.TableNotFoundError
		remote    *grid.RemoteOperationError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, errorDetails{Kind: "validation", Field: vErr.Field}
	case errors.Is(err, grid.ErrNoSearchableFields):
		return http.StatusBadRequest, errorDetails{Kind: "no_searchable_fields"}
	case errors.Is(err, grid.ErrMissingFieldNames):
		return http.StatusBadRequest, errorDetails{Kind: "missing_field_names"}
	case errors.As(err, &safetyErr):
		return http.StatusForbidden, errorDetails{Kind: "safety"}
	case errors.As(err, &notFound):
		return http.StatusNotFound, errorDetails{Kind: "table_not_found"}
	case errors.As(err, &remote):
		details := errorDetails{Kind: "remote", Status: remote.StatusCode, Type: remote.Type}
		if grid.IsNotFoundError(err) {
			details.Kind = "not_found"
			return http.StatusNotFound, details
		}
		if remote.StatusCode >= 400 && remote.StatusCode < 500 {
			return remote.StatusCode, details
		}
		return http.StatusBadGateway, details
	default:
		return http.StatusInternalServerError, errorDetails{Kind: "internal"}
	}
}
