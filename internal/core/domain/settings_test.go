package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "3001", s.Port)
	assert.Equal(t, "https://api.v0.dev/v1", s.APIBaseURL)
	assert.Equal(t, "http://localhost:3001", s.RelayURL)
	assert.Equal(t, 1.0, s.RateLimit)
	assert.Empty(t, s.APIKey)
	assert.Empty(t, s.DataDir)
	assert.False(t, s.HasCredential())
}

func TestSettings_HasCredential(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"empty", "", false},
		{"set", "v0-key", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Settings{APIKey: tt.apiKey}.HasCredential())
		})
	}
}
