package cli

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitegen/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sitegen/internal/core/domain"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay server",
	Long: `Start the HTTP relay between clients and the website generation service.

The generation service credential is read from V0_API_KEY (environment or
.env file) or the api.key config setting. The server refuses to start
without it.

Endpoints:
  GET  /api/health
  POST /api/chat       {"message": "..."}
  POST /api/chat/send  {"chatId": "...", "message": "..."}`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default from PORT or 3001)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if servePort != "" {
		cfg.Port = servePort
	}
	if cfg.Port == "" {
		cfg.Port = domain.DefaultPort
	}

	if !cfg.HasCredential() {
		return fmt.Errorf("%w: set V0_API_KEY in the environment or a .env file", domain.ErrCredentialMissing)
	}
	if relayFactory == nil {
		return errors.New("relay not configured")
	}

	relay, err := relayFactory(cfg)
	if err != nil {
		return fmt.Errorf("creating relay: %w", err)
	}

	server, err := httpapi.NewServer(relay)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort("", cfg.Port)
	printBanner(cmd, cfg.Port)
	return server.ListenAndServe(cmd.Context(), addr)
}

func printBanner(cmd *cobra.Command, port string) {
	base := "http://localhost:" + port
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render("sitegen relay listening on port "+port))
	fmt.Fprintf(out, "  Health: %s\n", linkStyle.Render(base+"/api/health"))
	fmt.Fprintln(out, "  Try:")
	fmt.Fprintln(out, mutedStyle.Render(strings.Join([]string{
		"    curl -X POST " + base + "/api/chat \\",
		`      -H "Content-Type: application/json" \`,
		`      -d '{"message": "Create a landing page for a coffee shop"}'`,
	}, "\n")))
}
