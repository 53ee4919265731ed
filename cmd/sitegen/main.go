// Command sitegen relays website generation prompts and manages the
// generated project files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sitegen/internal/adapters/driven/archive"
	"github.com/custodia-labs/sitegen/internal/adapters/driven/config/file"
	v0 "github.com/custodia-labs/sitegen/internal/adapters/driven/generator/v0"
	"github.com/custodia-labs/sitegen/internal/adapters/driven/relayclient"
	"github.com/custodia-labs/sitegen/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitegen/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sitegen/internal/adapters/driving/cli"
	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
	"github.com/custodia-labs/sitegen/internal/core/services"
	"github.com/custodia-labs/sitegen/internal/logger"
	"github.com/custodia-labs/sitegen/internal/normalisers/generated"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := file.LoadDotEnv(".env"); err != nil {
		logger.Warn("loading .env: %v", err)
	}

	configStore, err := openConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	settings := file.LoadSettings(configStore, os.Getenv)

	sessions, closeStore := openSessionStore(settings.DataDir)
	defer closeStore()

	normaliser := generated.New()
	exporter := archive.NewZipExporter()

	newConversation := func(relayURL string) driving.ConversationService {
		return services.NewConversationService(relayclient.New(relayURL, nil), sessions, normaliser, exporter)
	}

	cli.SetServices(cli.Services{
		Settings:            settings,
		Config:              configStore,
		Conversation:        newConversation(settings.RelayURL),
		RelayFactory:        newRelay,
		ConversationFactory: newConversation,
		ExportFileName:      archive.DefaultFileName,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openConfig() (driven.ConfigStore, error) {
	dir, err := file.DefaultConfigDir()
	if err != nil {
		logger.Warn("config directory unavailable, settings will not persist: %v", err)
		return memory.NewConfigStore(), nil
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return store, nil
}

// openSessionStore opens the sqlite session database, falling back to an
// in-memory store when it cannot be opened.
func openSessionStore(dataDir string) (driven.SessionStore, func()) {
	store, err := sqlite.NewStore(dataDir)
	if err == nil {
		return store.SessionStore(), func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing session database: %v", err)
			}
		}
	}

	logger.Warn("session database unavailable, sessions will not persist: %v", err)
	mem, memErr := memory.NewSessionStore(memory.DefaultSessionCapacity)
	if memErr != nil {
		panic(memErr)
	}
	return mem, func() {}
}

func newRelay(settings domain.Settings) (driving.ChatRelay, error) {
	client, err := v0.NewClient(v0.Config{
		APIKey:    settings.APIKey,
		BaseURL:   settings.APIBaseURL,
		RateLimit: settings.RateLimit,
	})
	if err != nil {
		return nil, err
	}
	return services.NewRelayService(client), nil
}
