package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/service/gemini"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

func TestREST_Generate(t *testing.T) {
	var body map[string]any
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(gemini.APIKeyHeader)
		gotPath = r.URL.Path
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&body)).Required()
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"riskScore\":42}"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	hc := httpclient.New("gemini", httpclient.WithAPIKeyHeader(gemini.APIKeyHeader, "test-key"))
	svc := gemini.NewREST(hc, gemini.WithBaseURL(srv.URL), gemini.WithModel("gemini-test"))

	text, err := svc.Generate(context.Background(), "hello", gemini.GenerationConfig{
		Temperature: 0.3, TopK: 40, TopP: 0.95, MaxOutputTokens: 2048,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, text).Equal(`{"riskScore":42}`)
	gt.Value(t, gotKey).Equal("test-key")
	gt.Value(t, gotPath).Equal("/v1beta/models/gemini-test:generateContent")

	cfg := body["generationConfig"].(map[string]any)
	gt.Value(t, cfg["temperature"]).Equal(any(0.3))
	gt.Value(t, cfg["topK"]).Equal(any(40.0))
	gt.Value(t, cfg["topP"]).Equal(any(0.95))
	gt.Value(t, cfg["maxOutputTokens"]).Equal(any(2048.0))

	contents := body["contents"].([]any)
	gt.Array(t, contents).Length(1)
}

func TestREST_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	svc := gemini.NewREST(httpclient.New("gemini"), gemini.WithBaseURL(srv.URL))
	_, err := svc.Generate(context.Background(), "hello", gemini.GenerationConfig{})
	gt.Error(t, err).Is(gemini.ErrEmptyResponse)
}

func TestREST_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := gemini.NewREST(httpclient.New("gemini"), gemini.WithBaseURL(srv.URL))
	_, err := svc.Generate(context.Background(), "hello", gemini.GenerationConfig{})
	gt.Error(t, err).Is(httpclient.ErrRateLimited)
	gt.String(t, err.Error()).Contains("rate limit")
}

type mockSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return s.generateContentFn(ctx, input...)
}

func (s *mockSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLM struct {
	session gollem.Session
}

func (c *mockLLM) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return c.session, nil
}

func (c *mockLLM) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestGollem_Generate(t *testing.T) {
	llm := &mockLLM{session: &mockSession{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{Texts: []string{`{"severity":"High"}`}}, nil
		},
	}}

	svc, err := gemini.NewGollem(llm)
	gt.NoError(t, err).Required()
	text, err := svc.Generate(context.Background(), "classify", gemini.GenerationConfig{})
	gt.NoError(t, err).Required()
	gt.Value(t, text).Equal(`{"severity":"High"}`)
}

func TestGollem_EmptyResponse(t *testing.T) {
	llm := &mockLLM{session: &mockSession{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			return &gollem.Response{}, nil
		},
	}}

	svc, err := gemini.NewGollem(llm)
	gt.NoError(t, err).Required()
	_, err = svc.Generate(context.Background(), "classify", gemini.GenerationConfig{})
	gt.Error(t, err).Is(gemini.ErrEmptyResponse)

	_, err = gemini.NewGollem(nil)
	gt.Value(t, err).NotNil()
}
