package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/developer-portfolio-backend/errs"
)

const maxBodyBytes int64 = 1 << 20

// operation is one query or mutation shared by the REST and RPC routes.
// pathID carries the id taken from a REST URL and is nil for RPC calls,
// which put the id in the payload.
type operation func(ctx context.Context, payload []byte, pathID *int64) (any, error)

type successResponse struct {
	Success bool `json:"success"`
}

// serve adapts an operation to a REST route. idParam names the chi URL
// parameter holding the target id, empty for routes without one.
func serve(responder Responder, op operation, status int, idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pathID *int64
		if idParam != "" {
			id, err := parseID(chi.URLParam(r, idParam))
			if err != nil {
				responder.WriteError(w, err)
				return
			}
			pathID = &id
		}

		payload, err := readPayload(w, r)
		if err != nil {
			responder.WriteError(w, err)
			return
		}

		result, err := op(r.Context(), payload, pathID)
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		responder.WriteJSONStatus(w, status, result)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewInvalidFieldError("id", "must be a positive integer")
	}
	return id, nil
}

// readPayload returns the request body, rejecting non-JSON content types and
// bodies above maxBodyBytes.
func readPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return nil, errs.NewUnsupportedMediaTypeError(contentType, []string{"application/json"})
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxBodyBytes)
		}
		return nil, errs.NewMalformedPayloadError("request", err)
	}
	return body, nil
}
