package config

import (
	"log/slog"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/service/economic"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/gametheory-pro/gtpro/pkg/service/news"
	"github.com/urfave/cli/v3"
)

// Providers holds credentials of the upstream news and economic data APIs
type Providers struct {
	newsAPIKey     string `masq:"secret"`
	newsBaseURL    string
	economicAPIKey string `masq:"secret"`
	economicURL    string
}

func (x *Providers) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "news-api-key",
			Usage:       "API key of the news provider",
			Category:    "Providers",
			Sources:     cli.EnvVars("GTPRO_NEWS_API_KEY"),
			Destination: &x.newsAPIKey,
		},
		&cli.StringFlag{
			Name:        "news-base-url",
			Usage:       "Base URL of the news provider",
			Category:    "Providers",
			Value:       news.DefaultBaseURL,
			Sources:     cli.EnvVars("GTPRO_NEWS_BASE_URL"),
			Destination: &x.newsBaseURL,
		},
		&cli.StringFlag{
			Name:        "economic-api-key",
			Usage:       "API key of the economic data provider",
			Category:    "Providers",
			Sources:     cli.EnvVars("GTPRO_ECONOMIC_API_KEY"),
			Destination: &x.economicAPIKey,
		},
		&cli.StringFlag{
			Name:        "economic-base-url",
			Usage:       "Base URL of the economic data provider",
			Category:    "Providers",
			Value:       economic.DefaultBaseURL,
			Sources:     cli.EnvVars("GTPRO_ECONOMIC_BASE_URL"),
			Destination: &x.economicURL,
		},
	}
}

func (x Providers) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("news-api-key.len", len(x.newsAPIKey)),
		slog.Int("economic-api-key.len", len(x.economicAPIKey)),
	)
}

// News returns the news client, or nil when no API key is configured
func (x *Providers) News() news.Service {
	if x.newsAPIKey == "" {
		return nil
	}
	hc := httpclient.New("news", httpclient.WithAPIKey("apiKey", x.newsAPIKey))
	return news.New(hc, news.WithBaseURL(x.newsBaseURL))
}

// Economic returns the economic data client, or nil when no API key is
// configured
func (x *Providers) Economic(catalog *model.Catalog) economic.Service {
	if x.economicAPIKey == "" {
		return nil
	}
	hc := httpclient.New("economic",
		httpclient.WithAPIKey("apikey", x.economicAPIKey),
		httpclient.WithErrorMarkers("Error Message", "Note"),
	)
	return economic.New(hc, economic.WithBaseURL(x.economicURL), economic.WithCatalog(catalog))
}
