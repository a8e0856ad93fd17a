package mockdata

import "github.com/gametheory-pro/gtpro/pkg/domain/types"

type articleSeed struct {
	title       string
	description string
}

type pool struct {
	keywords []string
	articles []articleSeed
}

// pools are matched in order against the category key; generalPool is used
// when none matches
var pools = []pool{
	{
		keywords: []string{"crisis", "conflict", "war", "emergency"},
		articles: []articleSeed{
			{"Military tensions escalate along contested border", "Satellite imagery shows troop build-up as diplomatic talks stall."},
			{"Humanitarian corridor opened amid ongoing fighting", "Aid agencies warn supplies will last only a few days."},
			{"Missile attack reported near key port city", "Officials confirm damage to logistics infrastructure."},
			{"Earthquake disaster leaves thousands displaced", "Rescue teams struggle to reach remote villages."},
			{"Cyber attack disrupts national power grid", "Authorities attribute the outage to a state-backed group."},
		},
	},
	{
		keywords: []string{"geopolitic", "politic", "diplomac", "election"},
		articles: []articleSeed{
			{"Summit ends without agreement on security pact", "Leaders pledge to resume negotiations next quarter."},
			{"Snap election called after coalition collapse", "Polls suggest a fragmented parliament."},
			{"New sanctions package targets energy exports", "Analysts expect limited short-term market impact."},
			{"Regional bloc admits new member state", "The move reshapes the balance of power in the region."},
			{"Border dispute referred to international court", "Both governments say they will respect the ruling."},
		},
	},
	{
		keywords: []string{"econom", "market", "finance", "trade"},
		articles: []articleSeed{
			{"Central bank raises interest rates to curb inflation", "Markets had priced in a smaller increase."},
			{"Trade surplus narrows as exports slow", "Weak demand from major partners weighs on manufacturing."},
			{"Currency hits record low against the dollar", "Capital outflows accelerate despite intervention."},
			{"Sovereign debt rating downgraded", "Agencies cite rising fiscal deficits."},
			{"Commodity prices surge on supply concerns", "Shipping disruptions tighten global supply chains."},
		},
	},
	{
		keywords: []string{"tech", "cyber", "semiconductor", "digital"},
		articles: []articleSeed{
			{"Export controls tightened on advanced chips", "Manufacturers warn of supply chain disruptions."},
			{"Ransomware campaign hits regional hospitals", "Patient services diverted as systems are restored."},
			{"Undersea cable damage slows internet traffic", "Repair vessels dispatched to the affected segment."},
			{"Government unveils national AI strategy", "The plan includes new rules for critical infrastructure."},
		},
	},
}

var generalPool = pool{
	articles: []articleSeed{
		{"Global outlook remains uncertain, analysts say", "Risk indicators point to slower growth across regions."},
		{"International organizations call for de-escalation", "Statements urge restraint from all parties."},
		{"Supply chain resilience tops corporate agendas", "Companies diversify suppliers to reduce exposure."},
		{"Climate-related disruptions weigh on agriculture", "Crop yields fall in several exporting countries."},
	},
}

var sources = []string{
	"Reuters",
	"Associated Press",
	"BBC News",
	"Financial Times",
	"Al Jazeera",
	"The Economist",
}

var factorNames = []struct {
	name     string
	category types.FactorCategory
}{
	{"Political instability", types.FactorCategoryPolitical},
	{"Currency volatility", types.FactorCategoryEconomic},
	{"Inflation pressure", types.FactorCategoryEconomic},
	{"Civil unrest", types.FactorCategorySocial},
	{"Border tensions", types.FactorCategoryMilitary},
	{"Extreme weather events", types.FactorCategoryEnvironmental},
	{"Trade disruptions", types.FactorCategoryEconomic},
	{"Regulatory uncertainty", types.FactorCategoryPolitical},
}

var crisisTypes = []string{"Military", "Economic", "Political", "Natural Disaster", "Humanitarian", "Cyber"}

var crisisRegions = []string{"Europe", "Middle East", "Asia", "Americas", "Africa"}
