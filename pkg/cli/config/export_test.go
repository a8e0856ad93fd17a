package config

import "time"

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(apiKey, projectID string) *Gemini {
	return &Gemini{
		apiKey:    apiKey,
		model:     "gemini-1.5-flash",
		projectID: projectID,
		location:  "us-central1",
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseURL string) *Repository {
	return &Repository{
		backend:     backend,
		projectID:   projectID,
		databaseURL: databaseURL,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel, minSeverity string) *Slack {
	return &Slack{
		botToken:    botToken,
		channel:     channel,
		minSeverity: minSeverity,
	}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(jwtSecret, noAuthUID string) *Auth {
	return &Auth{
		jwtSecret: jwtSecret,
		audience:  "authenticated",
		skew:      10 * time.Second,
		noAuthUID: noAuthUID,
	}
}

// NewKafkaForTest creates a Kafka config for testing purposes
func NewKafkaForTest(brokers []string, topic string) *Kafka {
	return &Kafka{brokers: brokers, topic: topic}
}

// NewMonitorForTest creates a Monitor config for testing purposes
func NewMonitorForTest(schedule string, timeout time.Duration) *Monitor {
	return &Monitor{schedule: schedule, timeout: timeout}
}

// NewProvidersForTest creates a Providers config for testing purposes
func NewProvidersForTest(newsKey, economicKey string) *Providers {
	return &Providers{
		newsAPIKey:     newsKey,
		newsBaseURL:    "https://news.invalid",
		economicAPIKey: economicKey,
		economicURL:    "https://economic.invalid",
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewCatalogForTest creates a Catalog config for testing purposes
func NewCatalogForTest(path string) *Catalog {
	return &Catalog{path: path}
}
