package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

var filesCmd = &cobra.Command{
	Use:   "files [session-id] [name]",
	Short: "List a session's files or print one",
	Long: `Without a name, lists the current project files of a session. With a name,
prints that file's content.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	files, err := svc.Files(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get files: %w", err)
	}

	if len(args) == 1 {
		printFiles(cmd, files)
		return nil
	}

	for _, f := range files {
		if f.Name == args[1] {
			fmt.Fprint(cmd.OutOrStdout(), f.Content)
			return nil
		}
	}
	return fmt.Errorf("file %q: %w", args[1], domain.ErrNotFound)
}

func printFiles(cmd *cobra.Command, files []domain.CanonicalFile) {
	if len(files) == 0 {
		cmd.Println("No files.")
		return
	}
	for _, f := range files {
		cmd.Printf("  %s %s\n",
			nameStyle.Render(f.Name),
			mutedStyle.Render(fmt.Sprintf("(%s, %d chars)", f.Type, f.Size)))
	}
}
