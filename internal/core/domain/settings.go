package domain

// Default settings values.
const (
	DefaultPort       = "3001"
	DefaultAPIBaseURL = "https://api.v0.dev/v1"
	DefaultRelayURL   = "http://localhost:3001"
	DefaultRateLimit  = 1.0
)

// Settings holds the resolved application configuration.
type Settings struct {
	// Port is the relay server listen port.
	Port string

	// APIKey is the generation service credential.
	APIKey string

	// APIBaseURL is the generation service base URL.
	APIBaseURL string

	// RelayURL is where clients reach the relay server.
	RelayURL string

	// DataDir holds the session database. Empty means ~/.sitegen/data.
	DataDir string

	// RateLimit is the upstream request rate in requests per second.
	RateLimit float64
}

// HasCredential reports whether an API key is configured.
func (s Settings) HasCredential() bool {
	return s.APIKey != ""
}

// DefaultSettings returns settings with default values and no credential.
func DefaultSettings() Settings {
	return Settings{
		Port:       DefaultPort,
		APIBaseURL: DefaultAPIBaseURL,
		RelayURL:   DefaultRelayURL,
		RateLimit:  DefaultRateLimit,
	}
}
