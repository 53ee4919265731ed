// Package cli provides the sitegen command line interface.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	settings            = domain.DefaultSettings()
	configStore         driven.ConfigStore
	conversationService driving.ConversationService

	// relayFactory builds the relay backed by the generation service.
	relayFactory func(domain.Settings) (driving.ChatRelay, error)

	// conversationFactory builds a conversation service that reaches the
	// relay at the given URL.
	conversationFactory func(relayURL string) driving.ConversationService

	// exportFileName names archives when export is given no -o flag.
	exportFileName = func(t time.Time) string {
		return "project-" + t.Format("2006-01-02") + ".zip"
	}
)

// Services holds the dependencies the commands run against.
type Services struct {
	Settings            domain.Settings
	Config              driven.ConfigStore
	Conversation        driving.ConversationService
	RelayFactory        func(domain.Settings) (driving.ChatRelay, error)
	ConversationFactory func(relayURL string) driving.ConversationService
	ExportFileName      func(time.Time) string
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	settings = s.Settings
	configStore = s.Config
	conversationService = s.Conversation
	relayFactory = s.RelayFactory
	conversationFactory = s.ConversationFactory
	if s.ExportFileName != nil {
		exportFileName = s.ExportFileName
	}
}

var rootCmd = &cobra.Command{
	Use:   "sitegen",
	Short: "Generate websites from prompts",
	Long: `sitegen relays natural-language prompts to a website generation service
and keeps the generated project files in sync across a conversation.

Run "sitegen serve" to start the relay, then "sitegen chat" to talk to it.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// errNoConversation is returned when no conversation service is wired.
var errNoConversation = errors.New("conversation service not configured")

func requireConversation() (driving.ConversationService, error) {
	if conversationService == nil {
		return nil, errNoConversation
	}
	return conversationService, nil
}
