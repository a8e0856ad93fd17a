package insight

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"
)

// stripFence removes a surrounding markdown code fence such as ```json ... ```
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// document validates text as a JSON object and returns its root
func document(text string) (gjson.Result, error) {
	s := stripFence(text)
	if !gjson.Valid(s) {
		return gjson.Result{}, goerr.Wrap(ErrMalformedReply, "reply is not JSON", goerr.V("reply", truncate(s, 256)))
	}
	root := gjson.Parse(s)
	if !root.IsObject() {
		return gjson.Result{}, goerr.Wrap(ErrMalformedReply, "reply is not a JSON object", goerr.V("reply", truncate(s, 256)))
	}
	return root, nil
}

func require(root gjson.Result, field string, typ gjson.Type) (gjson.Result, error) {
	v := root.Get(field)
	if !v.Exists() || v.Type != typ {
		return gjson.Result{}, goerr.Wrap(ErrMissingField, "required field missing or mistyped",
			goerr.V("field", field), goerr.V("expected", typ.String()), goerr.V("actual", v.Type.String()))
	}
	return v, nil
}

func requireArray(root gjson.Result, field string) (gjson.Result, error) {
	v := root.Get(field)
	if !v.IsArray() {
		return gjson.Result{}, goerr.Wrap(ErrMissingField, "required array missing or mistyped", goerr.V("field", field))
	}
	return v, nil
}

// score reads an optional number, clamped to 0-100, defaulting to def
func score(root gjson.Result, field string, def float64) float64 {
	v := root.Get(field)
	if v.Type != gjson.Number {
		return def
	}
	return model.ClampScore(v.Float())
}

// text reads an optional string, defaulting to def when absent or blank
func text(root gjson.Result, field, def string) string {
	v := root.Get(field)
	if v.Type != gjson.String || strings.TrimSpace(v.String()) == "" {
		return def
	}
	return strings.TrimSpace(v.String())
}

// strs reads an optional array of strings, dropping non-string and blank
// items. It never returns nil.
func strs(root gjson.Result, field string) []string {
	out := []string{}
	v := root.Get(field)
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseRisk(reply string) (model.RiskAnalysis, error) {
	root, err := document(reply)
	if err != nil {
		return model.RiskAnalysis{}, err
	}
	riskScore, err := require(root, "riskScore", gjson.Number)
	if err != nil {
		return model.RiskAnalysis{}, err
	}

	result := model.RiskAnalysis{
		RiskScore:       model.ClampScore(riskScore.Float()),
		Confidence:      score(root, "confidence", 50),
		RiskFactors:     strs(root, "riskFactors"),
		Recommendations: strs(root, "recommendations"),
		Trends:          []model.RiskTrend{},
	}
	for _, t := range root.Get("trends").Array() {
		factor := text(t, "factor", "")
		if factor == "" {
			continue
		}
		result.Trends = append(result.Trends, model.RiskTrend{
			Factor:    factor,
			Direction: types.NormalizeDirection(t.Get("direction").String()),
			Rate:      t.Get("rate").Float(),
		})
	}
	return result, nil
}

func parseScenario(reply string) (model.ScenarioAnalysis, error) {
	root, err := document(reply)
	if err != nil {
		return model.ScenarioAnalysis{}, err
	}
	outcomes, err := requireArray(root, "outcomes")
	if err != nil {
		return model.ScenarioAnalysis{}, err
	}

	result := model.ScenarioAnalysis{
		Outcomes:        []model.ScenarioOutcome{},
		Confidence:      score(root, "confidence", 50),
		KeyInsights:     strs(root, "keyInsights"),
		Recommendations: strs(root, "recommendations"),
	}
	for _, o := range outcomes.Array() {
		if !o.IsObject() {
			continue
		}
		n := len(result.Outcomes) + 1
		result.Outcomes = append(result.Outcomes, model.ScenarioOutcome{
			ID:           fmt.Sprintf("outcome-%d", n),
			Title:        text(o, "title", fmt.Sprintf("Outcome %d", n)),
			Description:  text(o, "description", ""),
			Probability:  score(o, "probability", 0),
			Impact:       types.NormalizeImpact(o.Get("impact").String()),
			Timeframe:    text(o, "timeframe", ""),
			Consequences: strs(o, "consequences"),
			Mitigation:   strs(o, "mitigation"),
		})
	}
	if len(result.Outcomes) == 0 {
		return model.ScenarioAnalysis{}, goerr.Wrap(ErrMissingField, "outcomes has no usable item", goerr.V("field", "outcomes"))
	}
	return result, nil
}

func parseCrisis(reply string) (model.CrisisAnalysis, error) {
	root, err := document(reply)
	if err != nil {
		return model.CrisisAnalysis{}, err
	}
	sev, err := require(root, "severity", gjson.String)
	if err != nil {
		return model.CrisisAnalysis{}, err
	}
	severity, err := types.ParseCrisisSeverity(sev.String())
	if err != nil {
		return model.CrisisAnalysis{}, goerr.Wrap(ErrMissingField, "unknown severity", goerr.V("field", "severity"), goerr.V("value", sev.String()))
	}

	return model.CrisisAnalysis{
		Severity:        severity,
		EscalationRisk:  score(root, "escalationRisk", 50),
		KeyFactors:      strs(root, "keyFactors"),
		AffectedRegions: strs(root, "affectedRegions"),
	}, nil
}

func parsePrediction(reply string) (model.PredictionAnalysis, error) {
	root, err := document(reply)
	if err != nil {
		return model.PredictionAnalysis{}, err
	}
	predicted, err := require(root, "predictedValue", gjson.Number)
	if err != nil {
		return model.PredictionAnalysis{}, err
	}

	return model.PredictionAnalysis{
		PredictedValue: predicted.Float(),
		Confidence:     score(root, "confidence", 50),
		Factors:        strs(root, "factors"),
		Methodology:    text(root, "methodology", "AI-assisted forecast"),
	}, nil
}

func parseCollaboration(reply string) (model.CollaborationInsights, error) {
	root, err := document(reply)
	if err != nil {
		return model.CollaborationInsights{}, err
	}
	summary, err := require(root, "summary", gjson.String)
	if err != nil {
		return model.CollaborationInsights{}, err
	}
	if strings.TrimSpace(summary.String()) == "" {
		return model.CollaborationInsights{}, goerr.Wrap(ErrMissingField, "summary is blank", goerr.V("field", "summary"))
	}

	return model.CollaborationInsights{
		Summary:         strings.TrimSpace(summary.String()),
		ConsensusLevel:  score(root, "consensusLevel", 50),
		KeyThemes:       strs(root, "keyThemes"),
		Recommendations: strs(root, "recommendations"),
		ActionItems:     strs(root, "actionItems"),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
