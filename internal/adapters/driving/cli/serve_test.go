package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
)

func TestServeCmd_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
}

func TestServeCmd_RefusesWithoutCredential(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	called := false
	relayFactory = func(domain.Settings) (driving.ChatRelay, error) {
		called = true
		return mockRelay{}, nil
	}

	_, err := execute(t, "", "serve")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
	assert.Contains(t, err.Error(), "V0_API_KEY")
	assert.False(t, called)
}

func TestServeCmd_RelayFactoryError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settings.APIKey = "v0-key"
	relayFactory = func(domain.Settings) (driving.ChatRelay, error) {
		return nil, errors.New("bad base url")
	}

	_, err := execute(t, "", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad base url")
}

func TestServeCmd_StartsAndStops(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settings.APIKey = "v0-key"

	var got domain.Settings
	relayFactory = func(s domain.Settings) (driving.ChatRelay, error) {
		got = s
		return mockRelay{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	buf := new(strings.Builder)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"serve", "--port", "0"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, "0", got.Port)
	assert.Equal(t, "v0-key", got.APIKey)
	assert.Contains(t, buf.String(), "/api/health")
	assert.Contains(t, buf.String(), "curl -X POST")
}

func TestPrintBanner(t *testing.T) {
	buf := new(strings.Builder)
	serveCmd.SetOut(buf)
	defer serveCmd.SetOut(nil)

	printBanner(serveCmd, "3001")

	assert.Contains(t, buf.String(), "port 3001")
	assert.Contains(t, buf.String(), "http://localhost:3001/api/health")
	assert.Contains(t, buf.String(), "http://localhost:3001/api/chat")
}
