package types_test

import (
	"math"
	"testing"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.RiskLevel
	}{
		{score: 0, want: types.RiskLevelLow},
		{score: 25, want: types.RiskLevelLow},
		{score: 25.01, want: types.RiskLevelModerate},
		{score: 50, want: types.RiskLevelModerate},
		{score: 50.01, want: types.RiskLevelHigh},
		{score: 75, want: types.RiskLevelHigh},
		{score: 75.01, want: types.RiskLevelCritical},
		{score: 100, want: types.RiskLevelCritical},
	}

	for _, tt := range tests {
		t.Run(types.RiskLevelFromScore(tt.score).String(), func(t *testing.T) {
			gt.Value(t, types.RiskLevelFromScore(tt.score)).Equal(tt.want)
		})
	}
}

func TestRiskLevel_Color(t *testing.T) {
	gt.Value(t, types.RiskLevelCritical.Color()).Equal("red")
	gt.Value(t, types.RiskLevelHigh.Color()).Equal("orange")
	gt.Value(t, types.RiskLevelModerate.Color()).Equal("yellow")
	gt.Value(t, types.RiskLevelLow.Color()).Equal("green")
}

func TestParseRiskLevel(t *testing.T) {
	level, err := types.ParseRiskLevel("moderate")
	gt.NoError(t, err).Required()
	gt.Value(t, level).Equal(types.RiskLevelModerate)

	_, err = types.ParseRiskLevel("severe")
	gt.Value(t, err).NotNil()
}

func TestParseCrisisSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.CrisisSeverity
		wantErr bool
	}{
		{name: "canonical", input: "High", want: types.CrisisSeverityHigh},
		{name: "lower case", input: "critical", want: types.CrisisSeverityCritical},
		{name: "padded", input: " medium ", want: types.CrisisSeverityMedium},
		{name: "unknown", input: "extreme", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseCrisisSeverity(tt.input)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestCrisisSeverity_AtLeast(t *testing.T) {
	gt.Bool(t, types.CrisisSeverityCritical.AtLeast(types.CrisisSeverityHigh)).True()
	gt.Bool(t, types.CrisisSeverityHigh.AtLeast(types.CrisisSeverityHigh)).True()
	gt.Bool(t, types.CrisisSeverityMedium.AtLeast(types.CrisisSeverityHigh)).False()
	gt.Bool(t, types.CrisisSeverity("bogus").IsValid()).False()
}

func TestDirectionFromDelta(t *testing.T) {
	gt.Value(t, types.DirectionFromDelta(1.5)).Equal(types.DirectionIncreasing)
	gt.Value(t, types.DirectionFromDelta(-0.1)).Equal(types.DirectionDecreasing)
	gt.Value(t, types.DirectionFromDelta(0)).Equal(types.DirectionStable)
	gt.Value(t, types.DirectionFromDelta(math.NaN())).Equal(types.DirectionStable)
}

func TestNormalizeImpact(t *testing.T) {
	gt.Value(t, types.NormalizeImpact("HIGH")).Equal(types.ImpactHigh)
	gt.Value(t, types.NormalizeImpact("catastrophic")).Equal(types.ImpactMedium)
	gt.Value(t, types.NormalizeImpact("")).Equal(types.ImpactMedium)
}

func TestScenarioStatus_Normalize(t *testing.T) {
	gt.Value(t, types.ScenarioStatus("").Normalize()).Equal(types.ScenarioStatusDraft)
	gt.Value(t, types.ScenarioStatusArchived.Normalize()).Equal(types.ScenarioStatusArchived)

	_, err := types.ParseScenarioStatus("paused")
	gt.Value(t, err).NotNil()
}

func TestRegionCode_Validate(t *testing.T) {
	gt.NoError(t, types.NewRegionCode(" rus ").Validate()).Required()
	gt.Value(t, types.NewRegionCode("rus")).Equal(types.RegionCode("RUS"))
	gt.Value(t, types.RegionCode("").Validate()).NotNil()
	gt.Value(t, types.RegionCode("RUSSIA").Validate()).NotNil()
}

func TestParseIndicator(t *testing.T) {
	for _, ind := range types.AllIndicators() {
		got, err := types.ParseIndicator(ind.String())
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(ind)
	}
	_, err := types.ParseIndicator("gdp")
	gt.Value(t, err).NotNil()
}
