package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// CatalogFile is a TOML document overriding the built-in lookup tables.
// Regions and fallbacks replace the built-in entry with the same code;
// factors and keyword rules are evaluated before the built-in ones.
type CatalogFile struct {
	Regions       []Region       `toml:"region"`
	RiskFallbacks []RiskFallback `toml:"risk_fallback"`
	Factors       []Factor       `toml:"factor"`
	RegionRules   []KeywordRule  `toml:"region_rule"`
	TypeRules     []KeywordRule  `toml:"type_rule"`
}

// Region represents a regional indicator baseline
type Region struct {
	Code               string  `toml:"code"`
	Name               string  `toml:"name"`
	GDPGrowth          float64 `toml:"gdp_growth"`
	Inflation          float64 `toml:"inflation"`
	Unemployment       float64 `toml:"unemployment"`
	PoliticalStability float64 `toml:"political_stability"`
}

// Validate checks if the Region is valid
func (r *Region) Validate() error {
	if err := types.RegionCode(r.Code).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRegion, err.Error(), goerr.V(RegionKey, r.Code))
	}
	if r.Name == "" {
		return goerr.Wrap(ErrMissingName, "region name is required", goerr.V(RegionKey, r.Code))
	}
	return nil
}

// RiskFallback is the analysis used for a region when the model is unreachable
type RiskFallback struct {
	Region          string   `toml:"region"`
	RiskScore       float64  `toml:"risk_score"`
	Confidence      float64  `toml:"confidence"`
	RiskFactors     []string `toml:"risk_factors"`
	Recommendations []string `toml:"recommendations"`
}

// Validate checks if the RiskFallback is valid
func (f *RiskFallback) Validate() error {
	if err := types.RegionCode(f.Region).Validate(); err != nil {
		return goerr.Wrap(ErrInvalidRegion, err.Error(), goerr.V(RegionKey, f.Region))
	}
	if !inScoreRange(f.RiskScore) || !inScoreRange(f.Confidence) {
		return goerr.Wrap(ErrInvalidScore, "invalid risk fallback", goerr.V(RegionKey, f.Region))
	}
	return nil
}

// Factor enriches model-reported factor names containing Keyword
type Factor struct {
	Keyword     string  `toml:"keyword"`
	Description string  `toml:"description"`
	Category    string  `toml:"category"`
	Likelihood  float64 `toml:"likelihood"`
	Impact      float64 `toml:"impact"`
}

// Validate checks if the Factor is valid
func (f *Factor) Validate() error {
	if f.Keyword == "" {
		return goerr.Wrap(ErrMissingName, "factor keyword is required")
	}
	if _, err := types.ParseFactorCategory(f.Category); err != nil {
		return goerr.Wrap(ErrInvalidCategory, err.Error(), goerr.V(KeywordKey, f.Keyword))
	}
	if !inScoreRange(f.Likelihood) || !inScoreRange(f.Impact) {
		return goerr.Wrap(ErrInvalidScore, "invalid factor", goerr.V(KeywordKey, f.Keyword))
	}
	return nil
}

// KeywordRule maps any keyword to a label. Keywords match whole words; a
// trailing "*" matches a word prefix.
type KeywordRule struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
}

// Validate checks if the KeywordRule is valid
func (k *KeywordRule) Validate() error {
	if k.Label == "" {
		return goerr.Wrap(ErrMissingName, "rule label is required")
	}
	if len(k.Keywords) == 0 {
		return goerr.Wrap(ErrMissingKeywords, "empty rule", goerr.V(LabelKey, k.Label))
	}
	return nil
}

func inScoreRange(v float64) bool {
	return v >= 0 && v <= 100
}

// Validate checks if the CatalogFile is valid
func (c *CatalogFile) Validate() error {
	regions := make(map[string]bool)
	for _, r := range c.Regions {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid region")
		}
		if regions[r.Code] {
			return goerr.Wrap(ErrDuplicateRegion, "region defined twice", goerr.V(RegionKey, r.Code))
		}
		regions[r.Code] = true
	}

	fallbacks := make(map[string]bool)
	for _, f := range c.RiskFallbacks {
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid risk fallback")
		}
		if fallbacks[f.Region] {
			return goerr.Wrap(ErrDuplicateRegion, "risk fallback defined twice", goerr.V(RegionKey, f.Region))
		}
		fallbacks[f.Region] = true
	}

	for _, f := range c.Factors {
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid factor")
		}
	}
	for _, r := range c.RegionRules {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid region rule")
		}
	}
	for _, r := range c.TypeRules {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid type rule")
		}
	}

	return nil
}

// LoadCatalogFile loads a catalog override from a TOML file
func LoadCatalogFile(path string) (*CatalogFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}

// Apply merges the overrides into base and returns base
func (c *CatalogFile) Apply(base *model.Catalog) *model.Catalog {
	if base.Regions == nil {
		base.Regions = make(map[string]model.RegionProfile)
	}
	for _, r := range c.Regions {
		base.Regions[r.Code] = model.RegionProfile{
			Code: r.Code,
			Name: r.Name,
			Indicators: model.EconomicIndicators{
				Region:             r.Code,
				GDPGrowth:          r.GDPGrowth,
				Inflation:          r.Inflation,
				Unemployment:       r.Unemployment,
				PoliticalStability: r.PoliticalStability,
			},
		}
	}

	if base.RiskFallbacks == nil {
		base.RiskFallbacks = make(map[string]model.RiskAnalysis)
	}
	for _, f := range c.RiskFallbacks {
		base.RiskFallbacks[f.Region] = model.RiskAnalysis{
			RiskScore:       f.RiskScore,
			Confidence:      f.Confidence,
			RiskFactors:     f.RiskFactors,
			Recommendations: f.Recommendations,
		}
	}

	factors := make([]model.FactorDetail, 0, len(c.Factors)+len(base.FactorDetails))
	for _, f := range c.Factors {
		factors = append(factors, model.FactorDetail{
			Keyword:     f.Keyword,
			Description: f.Description,
			Category:    types.FactorCategory(f.Category),
			Likelihood:  f.Likelihood,
			Impact:      f.Impact,
		})
	}
	base.FactorDetails = append(factors, base.FactorDetails...)

	base.RegionRules = append(toRules(c.RegionRules), base.RegionRules...)
	base.TypeRules = append(toRules(c.TypeRules), base.TypeRules...)

	return base
}

func toRules(rules []KeywordRule) []model.KeywordRule {
	out := make([]model.KeywordRule, len(rules))
	for i, r := range rules {
		out[i] = model.KeywordRule{Label: r.Label, Keywords: r.Keywords}
	}
	return out
}

// Catalog holds the CLI flag for the catalog override file
type Catalog struct {
	path string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "TOML file overriding regional baselines, risk fallbacks and keyword rules",
			Sources:     cli.EnvVars("GTPRO_CATALOG"),
			Destination: &x.path,
		},
	}
}

// Configure returns the built-in catalog with the override file applied
func (x *Catalog) Configure() (*model.Catalog, error) {
	catalog := model.DefaultCatalog()
	if x.path == "" {
		return catalog, nil
	}

	file, err := LoadCatalogFile(x.path)
	if err != nil {
		return nil, err
	}
	return file.Apply(catalog), nil
}
