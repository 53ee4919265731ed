package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage generation sessions",
	Long: `A session keeps one conversation with the generator: its transcript and the
current project files. Sessions are stored locally.`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty session",
	Args:  cobra.NoArgs,
	RunE:  runSessionNew,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session and its transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Start a new conversation in a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionReset,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

func init() {
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, _ []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	session, err := svc.Start(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	cmd.Println(session.ID)
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	sessions, err := svc.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		cmd.Println("No sessions.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tFILES\tUPDATED")
	for i := range sessions {
		title := sessions[i].Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			sessions[i].ID,
			title,
			len(sessions[i].Reconciliation.Files.Valid()),
			sessions[i].UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	session, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	cmd.Println(titleStyle.Render("Session " + session.ID))
	cmd.Printf("  State:        %s\n", session.State())
	if session.ConversationID != "" {
		cmd.Printf("  Conversation: %s\n", session.ConversationID)
	}
	if session.Title != "" {
		cmd.Printf("  Title:        %s\n", session.Title)
	}
	if session.Status != "" {
		cmd.Printf("  Status:       %s\n", session.Status)
	}
	if session.DemoURL != "" {
		cmd.Printf("  Preview:      %s\n", linkStyle.Render(session.DemoURL))
	}
	if session.WebURL != "" {
		cmd.Printf("  Web:          %s\n", session.WebURL)
	}
	cmd.Printf("  Files:        %d\n", len(session.Reconciliation.Files.Valid()))

	if len(session.Transcript) > 0 {
		cmd.Println()
		cmd.Println(nameStyle.Render("Transcript"))
		for _, m := range session.Transcript {
			cmd.Printf("  %s %s\n", mutedStyle.Render(m.Role+":"), m.Content)
		}
	}
	return nil
}

func runSessionReset(cmd *cobra.Command, args []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	if _, err := svc.Reset(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	cmd.Printf("Session %s reset.\n", args[0])
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireConversation()
	if err != nil {
		return err
	}

	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	cmd.Printf("Session %s deleted.\n", args[0])
	return nil
}
