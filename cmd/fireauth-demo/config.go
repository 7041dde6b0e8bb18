package main

import (
	"os"
	"time"
)

type demoConfig struct {
	APIKey    string // Required: Firebase web API key
	ProjectID string // Optional: project ID, enables ID token verification

	Email    string // Optional: account email (default: generated throwaway)
	Password string // Optional: account password (default: generated)

	Locale         string        // Optional: locale for out-of-band emails
	ConnectTimeout time.Duration // Optional: TCP connect timeout (default: 10s)
	RequestTimeout time.Duration // Optional: whole-request timeout (default: 60s)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text, pretty) (default: pretty)
}

func loadConfig() demoConfig {
	return demoConfig{
		APIKey:         os.Getenv("FIREBASE_API_KEY"),
		ProjectID:      os.Getenv("FIREBASE_PROJECT_ID"),
		Email:          os.Getenv("DEMO_EMAIL"),
		Password:       os.Getenv("DEMO_PASSWORD"),
		Locale:         os.Getenv("DEMO_LOCALE"),
		ConnectTimeout: getEnvDurationOrDefault("CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout: getEnvDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		Env:            getEnvOrDefault("ENV", "dev"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "pretty"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
