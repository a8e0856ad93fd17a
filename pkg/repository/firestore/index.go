package firestore

import (
	"github.com/m-mizutani/fireconf"
)

func userIndex(field string, desc bool) fireconf.Index {
	f := fireconf.IndexField{Path: field, Order: fireconf.OrderAscending}
	if desc {
		f.Order = fireconf.OrderDescending
	}
	return fireconf.Index{
		Fields: []fireconf.IndexField{
			{Path: "user_id", Order: fireconf.OrderAscending},
			f,
		},
	}
}

// IndexConfig returns the composite indexes the repository queries need
func IndexConfig(prefix string) *fireconf.Config {
	name := func(c string) string {
		if prefix != "" {
			return prefix + "_" + c
		}
		return c
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name:    name(CollectionNotifications),
				Indexes: []fireconf.Index{userIndex("created_at", true)},
			},
			{
				Name:    name(CollectionLearningProgress),
				Indexes: []fireconf.Index{userIndex("module_id", false)},
			},
			{
				Name:    name(CollectionAlertConfigs),
				Indexes: []fireconf.Index{userIndex("created_at", false)},
			},
			{
				Name:    name(CollectionScenarios),
				Indexes: []fireconf.Index{userIndex("updated_at", true)},
			},
			{
				Name:    name(CollectionSimulations),
				Indexes: []fireconf.Index{userIndex("created_at", true)},
			},
			{
				Name:    name(CollectionRiskAssessments),
				Indexes: []fireconf.Index{userIndex("last_analyzed", true)},
			},
		},
	}
}
