package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Download a session's files as a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive path (default project-YYYY-MM-DD.zip)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = exportFileName(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := svc.Export(cmd.Context(), args[0], f); err != nil {
		f.Close()
		os.Remove(path) //nolint:errcheck
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmd.Println(successStyle.Render("Exported to " + path))
	return nil
}
