package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Conversation flow
	DefaultLang string        // language used when a client sends none
	SessionTTL  time.Duration // idle time before a chord session expires

	// MIDI export
	Octave        int
	Tempo         float64
	BeatsPerChord int
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		DefaultLang:   getEnv("DEFAULT_LANG", "en"),
		SessionTTL:    getDuration("SESSION_TTL", 5*time.Minute),
		Octave:        getInt("MIDI_OCTAVE", 4),
		Tempo:         getFloat("MIDI_TEMPO", 120),
		BeatsPerChord: getInt("BEATS_PER_CHORD", 4),
	}
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
