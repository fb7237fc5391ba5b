package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/oisee/gridbridge/pkg/grid"
)

// endpoint adapts a typed operation to an http.HandlerFunc:
// decode, validate, call, encode.
func endpoint[Req, Resp any](status int, decode func(*http.Request) (Req, error), call func(context.Context, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decode(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := grid.Validate(&req); err != nil {
			writeError(w, r, err)
			return
		}
		resp, err := call(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, resp)
	}
}

func noRequest(*http.Request) (struct{}, error) {
	return struct{}{}, nil
}

// decodeBody decodes a JSON request body into T.
func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, &grid.ValidationError{Field: "body", Message: "is required"}
		}
		return v, &grid.ValidationError{Field: "body", Message: "is not valid JSON: " + err.Error()}
	}
	return v, nil
}
