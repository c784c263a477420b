package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the value of an environment variable, or the
// default when the variable is unset or empty. No validation, no
// logging; use it for plain string settings.
//
// Example:
//
//	base := GetEnvString("BACKEND_API_URL", "http://localhost:8000")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable parsed as an
// integer. Unset means the default; an unparseable value also means the
// default, with a warning, so a typo degrades to known behavior instead
// of crashing startup.
//
// Example:
//
//	perPage := GetEnvInt("PAGINATION_PER_PAGE", 12)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		warnBadValue(key, valueStr, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the value of an environment variable parsed as a
// float64, with the same unset/unparseable fallback as GetEnvInt.
//
// Example:
//
//	rps := GetEnvFloat("BACKEND_WARM_RPS", 5.0)
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		warnBadValue(key, valueStr, strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the value of an environment variable parsed as a
// boolean, accepting the strconv.ParseBool forms ("1", "t", "true",
// "FALSE", ...). Unset or unparseable values fall back to the default,
// the latter with a warning.
//
// Example:
//
//	enabled := GetEnvBool("NOTIFY_DISCORD_ENABLED", false)
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		warnBadValue(key, valueStr, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the value of an environment variable parsed by
// time.ParseDuration ("90s", "5m", "1h30m"). Unset or unparseable
// values fall back to the default, the latter with a warning.
//
// Example:
//
//	ttl := GetEnvDuration("SESSION_TTL", 12*time.Hour)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnBadValue(key, valueStr, defaultValue.String(), err)
		return defaultValue
	}
	return value
}

func warnBadValue(key, value, fallback string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", fallback),
		slog.String("error", err.Error()))
}
