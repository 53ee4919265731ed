package file

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
)

// Configuration keys in config.toml.
const (
	KeyAPIKey    = "api.key"
	KeyAPIURL    = "api.url"
	KeyRateLimit = "api.rate_limit"
	KeyPort      = "server.port"
	KeyRelayURL  = "relay.url"
	KeyDataDir   = "storage.data_dir"
)

// Environment variables that override config.toml.
const (
	EnvAPIKey    = "V0_API_KEY"
	EnvAPIURL    = "V0_API_URL"
	EnvPort      = "PORT"
	EnvRelayURL  = "SITEGEN_RELAY_URL"
	EnvDataDir   = "SITEGEN_DATA_DIR"
	EnvRateLimit = "SITEGEN_RATE_LIMIT"
)

// Keys lists the settings keys that `sitegen config` accepts.
var Keys = []string{KeyAPIKey, KeyAPIURL, KeyRateLimit, KeyPort, KeyRelayURL, KeyDataDir}

// LoadDotEnv loads environment variables from .env files, or ./.env when no
// paths are given. Variables already set are not overridden and missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// LoadSettings resolves settings from the environment, then store, then
// defaults. A nil store skips the file layer; a nil getenv uses os.Getenv.
func LoadSettings(store driven.ConfigStore, getenv func(string) string) domain.Settings {
	if getenv == nil {
		getenv = os.Getenv
	}
	settings := domain.DefaultSettings()

	settings.APIKey = resolve(getenv(EnvAPIKey), storeString(store, KeyAPIKey), "")
	settings.APIBaseURL = strings.TrimRight(
		resolve(getenv(EnvAPIURL), storeString(store, KeyAPIURL), settings.APIBaseURL), "/")
	settings.RelayURL = strings.TrimRight(
		resolve(getenv(EnvRelayURL), storeString(store, KeyRelayURL), settings.RelayURL), "/")
	settings.DataDir = resolve(getenv(EnvDataDir), storeString(store, KeyDataDir), "")
	settings.Port = resolve(getenv(EnvPort), storePort(store), settings.Port)

	if rate, ok := parseRate(getenv(EnvRateLimit)); ok {
		settings.RateLimit = rate
	} else if store != nil && store.GetFloat(KeyRateLimit) > 0 {
		settings.RateLimit = store.GetFloat(KeyRateLimit)
	}

	return settings
}

// resolve returns the first non-blank value.
func resolve(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func storeString(store driven.ConfigStore, key string) string {
	if store == nil {
		return ""
	}
	return store.GetString(key)
}

// storePort accepts the port as a TOML integer or string.
func storePort(store driven.ConfigStore) string {
	if store == nil {
		return ""
	}
	if port := store.GetInt(KeyPort); port > 0 {
		return strconv.Itoa(port)
	}
	return store.GetString(KeyPort)
}

func parseRate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}
