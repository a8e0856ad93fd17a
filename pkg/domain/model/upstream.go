package model

import "time"

// NewsArticle is a headline from the news provider or the mock generator
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}

// EconomicIndicators is the latest indicator snapshot of a region
type EconomicIndicators struct {
	Region             string  `json:"region"`
	GDPGrowth          float64 `json:"gdpGrowth"`
	Inflation          float64 `json:"inflation"`
	Unemployment       float64 `json:"unemployment"`
	PoliticalStability float64 `json:"politicalStability"`
}

// Value returns the indicator named by key, and false for unknown keys
func (e *EconomicIndicators) Value(key string) (float64, bool) {
	switch key {
	case "gdp_growth":
		return e.GDPGrowth, true
	case "inflation":
		return e.Inflation, true
	case "unemployment":
		return e.Unemployment, true
	case "political_stability":
		return e.PoliticalStability, true
	default:
		return 0, false
	}
}

// SocialSentiment summarizes public mood about a topic
type SocialSentiment struct {
	Topic    string  `json:"topic"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Volume   int     `json:"volume"`
}

// RegionSignals is the upstream picture of one region: indicators, recent
// headlines, public sentiment, watched risk factors and current crisis alerts
type RegionSignals struct {
	Region      string             `json:"region"`
	Indicators  EconomicIndicators `json:"indicators"`
	Headlines   []NewsArticle      `json:"headlines"`
	Sentiment   SocialSentiment    `json:"sentiment"`
	Factors     []RiskFactor       `json:"factors"`
	Alerts      []*CrisisAlert     `json:"alerts"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
