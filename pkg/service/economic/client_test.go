package economic_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/service/economic"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/gt"
)

func newClient(url string) economic.Service {
	hc := httpclient.New("economic",
		httpclient.WithAPIKey("apikey", "k"),
		httpclient.WithErrorMarkers("Error Message", "Note"),
	)
	return economic.New(hc, economic.WithBaseURL(url))
}

func TestIndicators(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("country")).Equal("RUS")
		switch r.URL.Query().Get("function") {
		case "REAL_GDP":
			_, _ = w.Write([]byte(`{"name":"Real GDP","data":[{"date":"2024-01-01","value":"98"},{"date":"2025-01-01","value":"100"},{"date":"2023-01-01","value":"."}]}`))
		case "INFLATION":
			_, _ = w.Write([]byte(`{"name":"Inflation","data":[{"date":"2025-01-01","value":"11.9"}]}`))
		case "UNEMPLOYMENT":
			_, _ = w.Write([]byte(`{"name":"Unemployment","data":[{"date":"2025-01-01","value":"3.7"}]}`))
		}
	}))
	defer srv.Close()

	ind, err := newClient(srv.URL).Indicators(context.Background(), "rus")
	gt.NoError(t, err).Required()
	gt.Value(t, ind.Region).Equal("RUS")
	gt.Value(t, ind.GDPGrowth).Equal(2.04)
	gt.Value(t, ind.Inflation).Equal(11.9)
	gt.Value(t, ind.Unemployment).Equal(3.7)
	gt.Value(t, ind.PoliticalStability).Equal(45.0)
}

func TestIndicators_InBandError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Note":"API call frequency exceeded"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Indicators(context.Background(), "RUS")
	gt.Error(t, err).Is(httpclient.ErrProviderError)
}

func TestIndicators_EmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"x","data":[]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Indicators(context.Background(), "RUS")
	gt.Error(t, err).Is(economic.ErrNoData)
}

func TestIndicators_NotConfigured(t *testing.T) {
	_, err := economic.New(httpclient.New("economic")).Indicators(context.Background(), "RUS")
	gt.Error(t, err).Is(economic.ErrNotConfigured)
}
