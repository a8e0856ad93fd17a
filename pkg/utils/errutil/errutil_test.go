package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandleHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	err := goerr.New("database is down", goerr.V("table", "simulations"))

	errutil.HandleHTTP(context.Background(), w, err, http.StatusInternalServerError)

	gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

	var body errutil.ErrorBody
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	gt.Bool(t, body.Success).False()
	gt.Value(t, body.Error).Equal("database is down")
	gt.String(t, body.Timestamp).NotEqual("")
}

func TestHandleNil(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleHTTP(context.Background(), w, nil, http.StatusBadRequest)
	gt.Value(t, w.Body.Len()).Equal(0)
	errutil.Handle(context.Background(), nil, "ignored")
}
