package news_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/gametheory-pro/gtpro/pkg/service/news"
	"github.com/m-mizutani/gt"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/everything")
		gt.Value(t, r.URL.Query().Get("q")).Equal("Russia")
		gt.Value(t, r.URL.Query().Get("apiKey")).Equal("k")
		_, _ = w.Write([]byte(`{"status":"ok","articles":[
			{"source":{"name":"Reuters"},"title":"Sanctions widen","description":"d","url":"https://x","publishedAt":"2026-01-02T03:04:05Z"},
			{"source":{"name":"X"},"title":"[Removed]"}
		]}`))
	}))
	defer srv.Close()

	svc := news.New(httpclient.New("news", httpclient.WithAPIKey("apiKey", "k")), news.WithBaseURL(srv.URL))
	articles, err := svc.Search(context.Background(), "Russia", 5)
	gt.NoError(t, err).Required()
	gt.Array(t, articles).Length(1)
	gt.Value(t, articles[0].Source).Equal("Reuters")
	gt.Value(t, articles[0].Title).Equal("Sanctions widen")
}

func TestSearch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"parameterInvalid","message":"bad query"}`))
	}))
	defer srv.Close()

	svc := news.New(httpclient.New("news", httpclient.WithAPIKey("apiKey", "k")), news.WithBaseURL(srv.URL))
	_, err := svc.Search(context.Background(), "x", 5)
	gt.Error(t, err).Is(httpclient.ErrProviderError)
	gt.String(t, err.Error()).Contains("bad query")
}

func TestSearch_NotConfigured(t *testing.T) {
	svc := news.New(httpclient.New("news"))
	_, err := svc.Search(context.Background(), "x", 5)
	gt.Error(t, err).Is(news.ErrNotConfigured)
}
