package model

import (
	"strings"

	"github.com/gametheory-pro/gtpro/pkg/domain/types"
)

// Catalog holds the static lookup tables used when live data is missing:
// regional indicator baselines, regional risk fallbacks, risk factor details
// and the keyword dictionaries for crisis region/type inference.
type Catalog struct {
	Regions       map[string]RegionProfile
	RiskFallbacks map[string]RiskAnalysis
	FactorDetails []FactorDetail
	RegionRules   []KeywordRule
	TypeRules     []KeywordRule
	FillerAlerts  []CrisisAlert
}

// RegionProfile is the baseline indicator snapshot of a region
type RegionProfile struct {
	Code       string
	Name       string
	Indicators EconomicIndicators
}

// FactorDetail enriches a factor name reported by the model
type FactorDetail struct {
	Keyword     string
	Description string
	Category    types.FactorCategory
	Likelihood  float64
	Impact      float64
}

// KeywordRule maps any of Keywords to Label. Rules are evaluated in order
// and the first one with a matching keyword wins.
type KeywordRule struct {
	Label    string
	Keywords []string
}

const (
	DefaultRegionLabel = "Global"
	DefaultTypeLabel   = "General"
)

// DetermineRegion returns the label of the first region rule whose keyword
// appears in text, or DefaultRegionLabel
func (c *Catalog) DetermineRegion(text string) string {
	return matchRule(c.RegionRules, text, DefaultRegionLabel)
}

// DetermineCrisisType returns the label of the first type rule whose keyword
// appears in text, or DefaultTypeLabel
func (c *Catalog) DetermineCrisisType(text string) string {
	return matchRule(c.TypeRules, text, DefaultTypeLabel)
}

func matchRule(rules []KeywordRule, text, fallback string) string {
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if MatchKeyword(text, kw) {
				return rule.Label
			}
		}
	}
	return fallback
}

// Region returns the baseline profile of code
func (c *Catalog) Region(code string) (RegionProfile, bool) {
	p, ok := c.Regions[strings.ToUpper(code)]
	return p, ok
}

// Indicators returns the baseline indicators of code, or a neutral snapshot
// for unknown regions
func (c *Catalog) Indicators(code string) EconomicIndicators {
	if p, ok := c.Region(code); ok {
		ind := p.Indicators
		ind.Region = p.Code
		return ind
	}
	return EconomicIndicators{
		Region:             strings.ToUpper(code),
		GDPGrowth:          2.0,
		Inflation:          3.0,
		Unemployment:       5.0,
		PoliticalStability: 60,
	}
}

// RiskFallback returns the regional fallback analysis of code
func (c *Catalog) RiskFallback(code string) (RiskAnalysis, bool) {
	fb, ok := c.RiskFallbacks[strings.ToUpper(code)]
	if !ok {
		return RiskAnalysis{}, false
	}
	return RiskAnalysis{
		RiskScore:       fb.RiskScore,
		Confidence:      fb.Confidence,
		RiskFactors:     append([]string(nil), fb.RiskFactors...),
		Recommendations: append([]string(nil), fb.Recommendations...),
	}, true
}

// FactorDetail returns the first detail whose keyword appears in name
func (c *Catalog) FactorDetail(name string) (FactorDetail, bool) {
	for _, d := range c.FactorDetails {
		if MatchKeyword(name, d.Keyword) {
			return d, true
		}
	}
	return FactorDetail{}, false
}

// DefaultCatalog returns the built-in tables
func DefaultCatalog() *Catalog {
	return &Catalog{
		Regions: map[string]RegionProfile{
			"USA": {Code: "USA", Name: "United States", Indicators: EconomicIndicators{GDPGrowth: 2.5, Inflation: 3.2, Unemployment: 3.8, PoliticalStability: 70}},
			"CHN": {Code: "CHN", Name: "China", Indicators: EconomicIndicators{GDPGrowth: 5.2, Inflation: 0.2, Unemployment: 5.0, PoliticalStability: 65}},
			"RUS": {Code: "RUS", Name: "Russia", Indicators: EconomicIndicators{GDPGrowth: -2.1, Inflation: 11.9, Unemployment: 3.7, PoliticalStability: 45}},
			"DEU": {Code: "DEU", Name: "Germany", Indicators: EconomicIndicators{GDPGrowth: -0.3, Inflation: 5.9, Unemployment: 3.0, PoliticalStability: 80}},
			"GBR": {Code: "GBR", Name: "United Kingdom", Indicators: EconomicIndicators{GDPGrowth: 0.1, Inflation: 6.7, Unemployment: 4.2, PoliticalStability: 75}},
			"FRA": {Code: "FRA", Name: "France", Indicators: EconomicIndicators{GDPGrowth: 0.9, Inflation: 4.9, Unemployment: 7.3, PoliticalStability: 72}},
			"JPN": {Code: "JPN", Name: "Japan", Indicators: EconomicIndicators{GDPGrowth: 1.9, Inflation: 3.3, Unemployment: 2.6, PoliticalStability: 85}},
			"IND": {Code: "IND", Name: "India", Indicators: EconomicIndicators{GDPGrowth: 7.2, Inflation: 5.4, Unemployment: 7.8, PoliticalStability: 60}},
			"BRA": {Code: "BRA", Name: "Brazil", Indicators: EconomicIndicators{GDPGrowth: 2.9, Inflation: 4.6, Unemployment: 7.9, PoliticalStability: 55}},
			"UKR": {Code: "UKR", Name: "Ukraine", Indicators: EconomicIndicators{GDPGrowth: 5.3, Inflation: 12.8, Unemployment: 19.1, PoliticalStability: 30}},
			"IRN": {Code: "IRN", Name: "Iran", Indicators: EconomicIndicators{GDPGrowth: 4.7, Inflation: 40.7, Unemployment: 8.9, PoliticalStability: 35}},
			"ISR": {Code: "ISR", Name: "Israel", Indicators: EconomicIndicators{GDPGrowth: 2.0, Inflation: 4.2, Unemployment: 3.5, PoliticalStability: 50}},
			"SAU": {Code: "SAU", Name: "Saudi Arabia", Indicators: EconomicIndicators{GDPGrowth: -0.8, Inflation: 2.3, Unemployment: 4.9, PoliticalStability: 62}},
			"TUR": {Code: "TUR", Name: "Turkey", Indicators: EconomicIndicators{GDPGrowth: 4.5, Inflation: 53.9, Unemployment: 9.4, PoliticalStability: 48}},
		},
		RiskFallbacks: map[string]RiskAnalysis{
			"RUS": {
				RiskScore:       75,
				Confidence:      60,
				RiskFactors:     []string{"International sanctions impact", "Military conflict exposure", "Energy export dependency"},
				Recommendations: []string{"Monitor sanctions developments", "Diversify energy supply exposure", "Review regional supply chains"},
			},
			"UKR": {
				RiskScore:       85,
				Confidence:      65,
				RiskFactors:     []string{"Active military conflict", "Infrastructure damage", "Refugee displacement"},
				Recommendations: []string{"Suspend non-essential operations", "Track humanitarian corridors", "Prepare contingency logistics"},
			},
			"IRN": {
				RiskScore:       70,
				Confidence:      55,
				RiskFactors:     []string{"Nuclear program tensions", "Hyperinflation pressure", "International sanctions impact"},
				Recommendations: []string{"Monitor nuclear negotiations", "Limit currency exposure"},
			},
			"CHN": {
				RiskScore:       55,
				Confidence:      60,
				RiskFactors:     []string{"Trade policy tensions", "Taiwan strait tensions", "Property sector slowdown"},
				Recommendations: []string{"Diversify manufacturing footprint", "Monitor export controls"},
			},
			"USA": {
				RiskScore:       30,
				Confidence:      70,
				RiskFactors:     []string{"Political polarization", "Monetary policy tightening"},
				Recommendations: []string{"Track election cycle developments", "Hedge interest rate exposure"},
			},
			"DEU": {
				RiskScore:       28,
				Confidence:      70,
				RiskFactors:     []string{"Energy price volatility", "Industrial slowdown"},
				Recommendations: []string{"Monitor energy markets"},
			},
			"TUR": {
				RiskScore:       58,
				Confidence:      55,
				RiskFactors:     []string{"Currency depreciation", "Hyperinflation pressure", "Regional security spillover"},
				Recommendations: []string{"Limit currency exposure", "Monitor central bank policy"},
			},
		},
		FactorDetails: []FactorDetail{
			{Keyword: "sanction", Description: "Restrictions on trade, finance and technology transfers imposed by other states", Category: types.FactorCategoryEconomic, Likelihood: 85, Impact: 80},
			{Keyword: "military", Description: "Exposure to armed conflict or military escalation", Category: types.FactorCategoryMilitary, Likelihood: 60, Impact: 90},
			{Keyword: "conflict", Description: "Exposure to armed conflict or military escalation", Category: types.FactorCategoryMilitary, Likelihood: 65, Impact: 90},
			{Keyword: "nuclear", Description: "Tensions around nuclear capability and non-proliferation", Category: types.FactorCategoryMilitary, Likelihood: 40, Impact: 95},
			{Keyword: "energy", Description: "Dependence on energy exports or imports and their price swings", Category: types.FactorCategoryEconomic, Likelihood: 70, Impact: 65},
			{Keyword: "hyperinflation", Description: "Runaway price growth destroying purchasing power and savings", Category: types.FactorCategoryEconomic, Likelihood: 70, Impact: 75},
			{Keyword: "inflation", Description: "Sustained price growth eroding purchasing power", Category: types.FactorCategoryEconomic, Likelihood: 75, Impact: 60},
			{Keyword: "currency", Description: "Exchange rate depreciation and capital flight", Category: types.FactorCategoryEconomic, Likelihood: 65, Impact: 60},
			{Keyword: "trade", Description: "Tariffs, export controls and trade disputes", Category: types.FactorCategoryEconomic, Likelihood: 60, Impact: 55},
			{Keyword: "election", Description: "Uncertainty around electoral outcomes and transitions", Category: types.FactorCategoryPolitical, Likelihood: 50, Impact: 45},
			{Keyword: "polariz*", Description: "Deep political division limiting policy continuity", Category: types.FactorCategoryPolitical, Likelihood: 60, Impact: 40},
			{Keyword: "political", Description: "Instability of government institutions", Category: types.FactorCategoryPolitical, Likelihood: 55, Impact: 55},
			{Keyword: "refugee", Description: "Large-scale population displacement", Category: types.FactorCategorySocial, Likelihood: 60, Impact: 55},
			{Keyword: "protest", Description: "Civil unrest and mass demonstrations", Category: types.FactorCategorySocial, Likelihood: 45, Impact: 45},
			{Keyword: "climate", Description: "Extreme weather and long-term climate stress", Category: types.FactorCategoryEnvironmental, Likelihood: 55, Impact: 50},
			{Keyword: "drought", Description: "Water scarcity affecting agriculture and energy", Category: types.FactorCategoryEnvironmental, Likelihood: 45, Impact: 55},
			{Keyword: "infrastructure", Description: "Damage to critical infrastructure", Category: types.FactorCategoryMilitary, Likelihood: 60, Impact: 75},
		},
		RegionRules: []KeywordRule{
			{Label: "Europe", Keywords: []string{"europe*", "german*", "france", "french", "britain", "british", "united kingdom", "ukrain*", "poland", "italy", "italian", "spain", "spanish", "russia*", "nato"}},
			{Label: "Middle East", Keywords: []string{"middle east", "israel*", "gaza", "iran*", "iraq*", "syria*", "lebanon", "lebanese", "yemen*", "saudi", "red sea"}},
			{Label: "Asia", Keywords: []string{"asia*", "china", "chinese", "taiwan*", "japan*", "korea*", "india", "indian", "pakistan*", "philippine*", "south china sea"}},
			{Label: "Americas", Keywords: []string{"america*", "united states", "canada", "canadian", "mexic*", "brazil*", "venezuela*", "argentin*", "colombia*"}},
			{Label: "Africa", Keywords: []string{"africa*", "sudan*", "ethiopia*", "nigeria*", "congo*", "sahel", "somali*", "libya*"}},
		},
		TypeRules: []KeywordRule{
			{Label: "Military", Keywords: []string{"military", "invasion", "invade*", "troop*", "missile", "airstrike", "war", "warfare", "attack*", "offensive"}},
			{Label: "Economic", Keywords: []string{"economic", "economy", "inflation", "hyperinflation", "sanction*", "market", "currency", "currencies", "trade", "trading", "debt"}},
			{Label: "Political", Keywords: []string{"election", "government", "coup", "parliament*", "protest*", "political"}},
			{Label: "Natural Disaster", Keywords: []string{"earthquake", "flood*", "hurricane", "wildfire", "tsunami", "disaster", "storm"}},
			{Label: "Humanitarian", Keywords: []string{"refugee", "famine", "humanitarian", "displace*", "outbreak"}},
			{Label: "Cyber", Keywords: []string{"cyber*", "hack*", "ransomware", "breach"}},
		},
		FillerAlerts: []CrisisAlert{
			{
				Title:          "Regional tensions monitored in Eastern Europe",
				Severity:       types.CrisisSeverityMedium,
				Region:         "Europe",
				Type:           "Political",
				Description:    "Diplomatic activity and troop movements continue to be monitored across the region.",
				Sources:        []string{"GameTheory Pro Monitoring"},
				EscalationRisk: 45,
			},
			{
				Title:          "Shipping disruption risk in the Red Sea",
				Severity:       types.CrisisSeverityHigh,
				Region:         "Middle East",
				Type:           "Economic",
				Description:    "Commercial shipping faces elevated security risk along key maritime routes.",
				Sources:        []string{"GameTheory Pro Monitoring"},
				EscalationRisk: 60,
			},
			{
				Title:          "Supply chain stress in the Asia-Pacific",
				Severity:       types.CrisisSeverityLow,
				Region:         "Asia",
				Type:           "Economic",
				Description:    "Manufacturing output and logistics capacity remain under pressure.",
				Sources:        []string{"GameTheory Pro Monitoring"},
				EscalationRisk: 30,
			},
		},
	}
}
