package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"unicode/utf8"

	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/gt"
)

func TestClient_GetAppendsKeyAndQuery(t *testing.T) {
	var gotQuery url.Values
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2}`))
	}))
	defer srv.Close()

	c := httpclient.New("news", httpclient.WithAPIKey("apiKey", "secret"))
	var out struct {
		Status       string `json:"status"`
		TotalResults int    `json:"totalResults"`
	}
	err := c.Get(context.Background(), srv.URL+"/v2/", "/everything", url.Values{"q": {"crisis"}, "pageSize": {"5"}}, &out)
	gt.NoError(t, err).Required()

	gt.Value(t, gotPath).Equal("/v2/everything")
	gt.Value(t, gotQuery.Get("apiKey")).Equal("secret")
	gt.Value(t, gotQuery.Get("q")).Equal("crisis")
	gt.Value(t, gotQuery.Get("pageSize")).Equal("5")
	gt.Value(t, out.Status).Equal("ok")
	gt.Value(t, out.TotalResults).Equal(2)
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		contains string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: httpclient.ErrRateLimited, contains: "rate limit"},
		{name: "upgrade required", status: http.StatusUpgradeRequired, wantErr: httpclient.ErrUpgradeRequired, contains: "upgraded plan"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: httpclient.ErrInvalidAPIKey, contains: "Invalid API key"},
		{name: "forbidden", status: http.StatusForbidden, wantErr: httpclient.ErrInvalidAPIKey, contains: "Invalid API key"},
		{name: "server error", status: http.StatusBadGateway, wantErr: httpclient.ErrRequestFailed, contains: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}))
			defer srv.Close()

			c := httpclient.New("test")
			err := c.Get(context.Background(), srv.URL, "/", nil, nil)
			gt.Error(t, err).Is(tt.wantErr)
			gt.String(t, err.Error()).Contains(tt.contains)
		})
	}
}

func TestClient_InBandMarkers(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		message string
	}{
		{name: "error message", body: `{"Error Message":"Invalid API call"}`, wantErr: true, message: "Invalid API call"},
		{name: "note", body: `{"Note":"Thank you for using our API. Call frequency is 5 per minute."}`, wantErr: true, message: "Call frequency"},
		{name: "clean body", body: `{"Global Quote":{"05. price":"12.3"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := httpclient.New("economic", httpclient.WithErrorMarkers("Error Message", "Note"))
			var out map[string]any
			err := c.Get(context.Background(), srv.URL, "/query", nil, &out)
			if !tt.wantErr {
				gt.NoError(t, err).Required()
				return
			}
			gt.Error(t, err).Is(httpclient.ErrProviderError)
			gt.String(t, err.Error()).Contains(tt.message)
		})
	}
}

func TestClient_PostJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&got)).Required()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := httpclient.New("gemini", httpclient.WithAPIKey("key", "k"))
	var out struct {
		OK bool `json:"ok"`
	}
	gt.NoError(t, c.PostJSON(context.Background(), srv.URL, "/v1beta/models/x:generateContent", nil, map[string]string{"hello": "world"}, &out)).Required()
	gt.Bool(t, out.OK).True()
	gt.Value(t, got["hello"]).Equal(any("world"))
	gt.Bool(t, c.HasAPIKey()).True()
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := httpclient.New("test").Get(context.Background(), srv.URL, "/", nil, &out)
	gt.Error(t, err).Is(httpclient.ErrInvalidResponse)
}

func TestClient_APIKeyHeader(t *testing.T) {
	var gotHeader string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := httpclient.New("gemini", httpclient.WithAPIKeyHeader("x-goog-api-key", "header-key"))
	gt.NoError(t, c.PostJSON(context.Background(), srv.URL, "/", nil, map[string]string{}, nil)).Required()
	gt.Value(t, gotHeader).Equal("header-key")
	gt.Value(t, gotQuery.Has("key")).Equal(false)
}

func TestClient_TransportErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := srv.URL
	srv.Close()

	c := httpclient.New("news", httpclient.WithAPIKey("apiKey", "AIzaSECRET123"))
	err := c.Get(context.Background(), closedURL, "/v2/everything", nil, nil)
	gt.Value(t, err).NotNil().Required()
	gt.String(t, err.Error()).NotContains("AIzaSECRET123")
	gt.String(t, err.Error()).Contains("apiKey=REDACTED")

	var urlErr *url.Error
	gt.Bool(t, errors.As(err, &urlErr)).True()
}

func TestTruncate(t *testing.T) {
	gt.Value(t, httpclient.Truncate("abc", 5)).Equal("abc")
	gt.Value(t, httpclient.Truncate("abcdef", 3)).Equal("abc...")
	// "é" is two bytes; cutting at 2 would split it
	gt.Value(t, httpclient.Truncate("aé-xyz", 2)).Equal("a...")
	gt.Bool(t, utf8.ValidString(httpclient.Truncate("日本語テキスト", 4))).True()
}
