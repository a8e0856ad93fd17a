package news

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultBaseURL = "https://newsapi.org/v2"

// ErrNotConfigured is returned by every call when no API key is set
var ErrNotConfigured = goerr.New("news provider is not configured")

// Service fetches recent headlines
type Service interface {
	Search(ctx context.Context, query string, limit int) ([]model.NewsArticle, error)
}

type client struct {
	http    *httpclient.Client
	baseURL string
}

type Option func(*client)

// WithBaseURL overrides the endpoint
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// New creates a Service. hc must carry the "apiKey" query parameter.
func New(hc *httpclient.Client, opts ...Option) Service {
	c := &client{http: hc, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (c *client) Search(ctx context.Context, query string, limit int) ([]model.NewsArticle, error) {
	if !c.http.HasAPIKey() {
		return nil, ErrNotConfigured
	}

	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.Itoa(limit)},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
	}

	var resp searchResponse
	if err := c.http.Get(ctx, c.baseURL, "/everything", params, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to search news", goerr.V("query", query))
	}
	if resp.Status == "error" {
		return nil, goerr.Wrap(httpclient.ErrProviderError, resp.Message, goerr.V("query", query))
	}

	articles := make([]model.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		articles = append(articles, model.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
