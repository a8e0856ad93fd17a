package model_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestRiskAssessment_SetScore(t *testing.T) {
	var a model.RiskAssessment

	a.SetScore(75)
	gt.Value(t, a.RiskLevel).Equal(types.RiskLevelHigh)

	a.SetScore(140)
	gt.Value(t, a.OverallRiskScore).Equal(100.0)
	gt.Value(t, a.RiskLevel).Equal(types.RiskLevelCritical)

	a.SetScore(-3)
	gt.Value(t, a.OverallRiskScore).Equal(0.0)
	gt.Value(t, a.RiskLevel).Equal(types.RiskLevelLow)
}

func TestPrediction_SetValues(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		predicted float64
		trend     types.Direction
		change    float64
	}{
		{name: "rising", current: 2, predicted: 3, trend: types.DirectionIncreasing, change: 50},
		{name: "falling from negative", current: -2, predicted: -3, trend: types.DirectionDecreasing, change: -50},
		{name: "flat", current: 4, predicted: 4, trend: types.DirectionStable, change: 0},
		{name: "zero base", current: 0, predicted: 1, trend: types.DirectionIncreasing, change: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p model.Prediction
			p.SetValues(tt.current, tt.predicted)
			gt.Value(t, p.Trend).Equal(tt.trend)
			gt.Value(t, p.Change).Equal(tt.change)
		})
	}
}

func TestPrediction_SetCreatedAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var p model.Prediction
	p.SetCreatedAt(created)
	gt.Value(t, p.ValidUntil).Equal(created.AddDate(0, 0, 180))
}

func TestCatalog_DetermineRegion(t *testing.T) {
	c := model.DefaultCatalog()

	gt.Value(t, c.DetermineRegion("Election results in Germany surprise markets")).Equal("Europe")
	gt.Value(t, c.DetermineRegion("Tensions rise in the South China Sea")).Equal("Asia")
	gt.Value(t, c.DetermineRegion("Local weather report")).Equal(model.DefaultRegionLabel)
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		text string
		kw   string
		want bool
	}{
		{text: "War erupts in the north", kw: "war", want: true},
		{text: "Two wars in one decade", kw: "war", want: true},
		{text: "Storm warning issued", kw: "war", want: false},
		{text: "New software release", kw: "war", want: false},
		{text: "International sanctions impact", kw: "sanction", want: true},
		{text: "Boxes shipped", kw: "box", want: true},
		{text: "Hackers breach ministry", kw: "hack", want: false},
		{text: "Hackers breach ministry", kw: "hack*", want: true},
		{text: "Political polarization", kw: "polariz*", want: true},
		{text: "Tensions rise in the South China Sea", kw: "south china sea", want: true},
		{text: "Supply chain stress in the Asia-Pacific", kw: "asia*", want: true},
		{text: "Crise à Genève", kw: "genève", want: true},
		{text: "Anything", kw: "*", want: false},
		{text: "Anything", kw: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.kw, func(t *testing.T) {
			gt.Value(t, model.MatchKeyword(tt.text, tt.kw)).Equal(tt.want)
		})
	}
}

func TestCatalog_DetermineCrisisType(t *testing.T) {
	c := model.DefaultCatalog()

	gt.Value(t, c.DetermineCrisisType("Reports of a military invasion near the border")).Equal("Military")
	gt.Value(t, c.DetermineCrisisType("Central bank raises rates to fight inflation")).Equal("Economic")
	gt.Value(t, c.DetermineCrisisType("Quiet day in parliament gardens")).Equal("Political")
	gt.Value(t, c.DetermineCrisisType("Nothing noteworthy")).Equal(model.DefaultTypeLabel)
	gt.Value(t, c.DetermineCrisisType("Storm warning issued")).Equal("Natural Disaster")
	gt.Value(t, c.DetermineCrisisType("Software update released")).Equal(model.DefaultTypeLabel)
}

func TestCatalog_RiskFallback(t *testing.T) {
	c := model.DefaultCatalog()

	fb, ok := c.RiskFallback("rus")
	gt.Bool(t, ok).True()
	gt.Value(t, fb.RiskScore).Equal(75.0)
	gt.Array(t, fb.RiskFactors).Has("International sanctions impact")

	fb.RiskFactors[0] = "mutated"
	again, _ := c.RiskFallback("RUS")
	gt.Value(t, again.RiskFactors[0]).Equal("International sanctions impact")

	_, ok = c.RiskFallback("XXX")
	gt.Bool(t, ok).False()
}

func TestCatalog_Indicators(t *testing.T) {
	c := model.DefaultCatalog()

	ind := c.Indicators("RUS")
	gt.Value(t, ind.GDPGrowth).Equal(-2.1)
	gt.Value(t, ind.Inflation).Equal(11.9)
	gt.Value(t, ind.Unemployment).Equal(3.7)
	gt.Value(t, ind.PoliticalStability).Equal(45.0)
	gt.Value(t, ind.Region).Equal("RUS")

	unknown := c.Indicators("zzz")
	gt.Value(t, unknown.Region).Equal("ZZZ")
}

func TestAlertConfig_Matches(t *testing.T) {
	alert := &model.CrisisAlert{Region: "Europe", Severity: types.CrisisSeverityHigh}

	tests := []struct {
		name string
		cfg  model.AlertConfig
		want bool
	}{
		{name: "disabled", cfg: model.AlertConfig{Enabled: false}, want: false},
		{name: "any region", cfg: model.AlertConfig{Enabled: true, MinSeverity: types.CrisisSeverityMedium}, want: true},
		{name: "region match", cfg: model.AlertConfig{Enabled: true, Regions: []string{"Asia", "Europe"}, MinSeverity: types.CrisisSeverityHigh}, want: true},
		{name: "region mismatch", cfg: model.AlertConfig{Enabled: true, Regions: []string{"Asia"}}, want: false},
		{name: "severity too low", cfg: model.AlertConfig{Enabled: true, MinSeverity: types.CrisisSeverityCritical}, want: false},
		{name: "invalid min defaults to high", cfg: model.AlertConfig{Enabled: true, MinSeverity: "bogus"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.cfg.Matches(alert)).Equal(tt.want)
		})
	}
}

func TestScenarioConfig_Validate(t *testing.T) {
	gt.Error(t, model.ScenarioConfig{Region: "RUS"}.Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, model.ScenarioConfig{Title: "x"}.Validate()).Is(model.ErrMissingRequired)
	gt.NoError(t, model.ScenarioConfig{Title: "x", Region: "RUS"}.Validate()).Required()
}

func TestResult(t *testing.T) {
	ok := model.OK(1)
	gt.Bool(t, ok.Success).True()
	gt.Bool(t, ok.Degraded).False()

	d := model.Degraded(2, errTest)
	gt.Bool(t, d.Success).True()
	gt.Bool(t, d.Degraded).True()
	gt.Value(t, d.Error).Equal(model.DegradedMessage)

	f := model.Failed[int](errTest)
	gt.Bool(t, f.Success).False()
	gt.Value(t, f.Data).Equal(0)
}

func TestDegraded_DropsTransportText(t *testing.T) {
	errQuota := goerr.New("rate limit exceeded")
	transport := &url.Error{
		Op:  "Post",
		URL: "http://127.0.0.1:1/v1beta/models/m:generateContent?key=AIzaSECRET",
		Err: errTest,
	}

	t.Run("wrapped transport error keeps only the goerr message", func(t *testing.T) {
		cause := goerr.Wrap(goerr.Wrap(transport, "failed to send request"), "gemini generate failed")
		d := model.Degraded(1, cause)
		gt.Value(t, d.Error).Equal("failed to send request")
		gt.String(t, d.Error).NotContains("AIzaSECRET")
	})

	t.Run("sentinel message survives wrapping", func(t *testing.T) {
		d := model.Degraded(1, goerr.Wrap(errQuota, "provider rejected request"))
		gt.Value(t, d.Error).Equal("rate limit exceeded")
	})

	t.Run("joined causes are de-duplicated", func(t *testing.T) {
		cause := errors.Join(
			goerr.Wrap(errQuota, "news"),
			goerr.Wrap(errQuota, "economic"),
			transport,
		)
		d := model.Degraded(1, cause)
		gt.Value(t, d.Error).Equal("rate limit exceeded; " + model.DegradedMessage)
		gt.String(t, d.Error).NotContains("AIzaSECRET")
	})
}

type testError string

func (e testError) Error() string { return string(e) }

var errTest = testError("boom")
