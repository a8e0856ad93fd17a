package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/gametheory-pro/gtpro/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// envelope is the body of every successful response
type envelope struct {
	Success   bool   `json:"success"`
	Degraded  bool   `json:"degraded,omitempty"`
	Data      any    `json:"data"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, body)
}

func writeData(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{Success: true, Data: data, Timestamp: timestamp()})
}

// writeResult maps a use case result to the response. A failed result is a
// 500 with the error envelope.
func writeResult[T any](ctx context.Context, w http.ResponseWriter, result model.Result[T]) {
	if !result.Success {
		errutil.HandleHTTP(ctx, w, goerr.New(result.Error), http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, envelope{
		Success:   true,
		Degraded:  result.Degraded,
		Data:      result.Data,
		Error:     result.Error,
		Timestamp: timestamp(),
	})
}

// writeError picks the status from the error kind
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrScenarioNotFound),
		errors.Is(err, usecase.ErrWorkspaceNotFound),
		errors.Is(err, usecase.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrMissingRequired),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, model.ErrOutOfRange),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = goerr.New("bad request")

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "invalid JSON body", goerr.V("cause", err.Error()))
	}
	return nil
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
