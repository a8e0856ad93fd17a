package economic

import (
	"context"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/service/httpclient"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://www.alphavantage.co"

var (
	ErrNotConfigured = goerr.New("economic provider is not configured")
	ErrNoData        = goerr.New("economic series has no usable data")
)

// Service fetches the latest indicator snapshot of a region
type Service interface {
	Indicators(ctx context.Context, region string) (*model.EconomicIndicators, error)
}

type client struct {
	http    *httpclient.Client
	baseURL string
	catalog *model.Catalog
}

type Option func(*client)

// WithBaseURL overrides the endpoint
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithCatalog sets the tables used for indicators the provider lacks
func WithCatalog(cat *model.Catalog) Option {
	return func(c *client) {
		c.catalog = cat
	}
}

// New creates a Service. hc must carry the "apikey" query parameter and the
// "Error Message" / "Note" in-band markers.
func New(hc *httpclient.Client, opts ...Option) Service {
	c := &client{http: hc, baseURL: DefaultBaseURL, catalog: model.DefaultCatalog()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type seriesResponse struct {
	Name string        `json:"name"`
	Data []seriesPoint `json:"data"`
}

type seriesPoint struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// values returns the numeric points ordered newest first, skipping "."
// placeholders used for missing observations
func (r *seriesResponse) values() []float64 {
	points := make([]seriesPoint, len(r.Data))
	copy(points, r.Data)
	sort.Slice(points, func(i, j int) bool { return points[i].Date > points[j].Date })

	var out []float64
	for _, p := range points {
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c *client) series(ctx context.Context, function, region string) ([]float64, error) {
	params := url.Values{
		"function": {function},
		"interval": {"annual"},
		"country":  {region},
	}
	var resp seriesResponse
	if err := c.http.Get(ctx, c.baseURL, "/query", params, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch economic series", goerr.V("function", function), goerr.V("region", region))
	}
	values := resp.values()
	if len(values) == 0 {
		return nil, goerr.Wrap(ErrNoData, "empty series", goerr.V("function", function), goerr.V("region", region))
	}
	return values, nil
}

func (c *client) Indicators(ctx context.Context, region string) (*model.EconomicIndicators, error) {
	if !c.http.HasAPIKey() {
		return nil, ErrNotConfigured
	}

	region = strings.ToUpper(region)
	result := &model.EconomicIndicators{
		Region:             region,
		PoliticalStability: c.catalog.Indicators(region).PoliticalStability,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		gdp, err := c.series(ctx, "REAL_GDP", region)
		if err != nil {
			return err
		}
		if len(gdp) < 2 || gdp[1] == 0 {
			return goerr.Wrap(ErrNoData, "need two GDP observations for growth", goerr.V("region", region))
		}
		result.GDPGrowth = round2((gdp[0] - gdp[1]) / gdp[1] * 100)
		return nil
	})
	eg.Go(func() error {
		v, err := c.series(ctx, "INFLATION", region)
		if err != nil {
			return err
		}
		result.Inflation = v[0]
		return nil
	})
	eg.Go(func() error {
		v, err := c.series(ctx, "UNEMPLOYMENT", region)
		if err != nil {
			return err
		}
		result.Unemployment = v[0]
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
