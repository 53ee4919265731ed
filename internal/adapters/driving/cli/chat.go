package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
)

var (
	chatSession string
	chatRelay   string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the generator through the relay",
	Long: `Start an interactive conversation. Each line you type is sent as a prompt;
the first creates a project and later ones refine it.

Commands:
  /new     start a new conversation in this session
  /files   list the current files
  /quit    exit

Use --session to continue an existing session and --relay to reach a relay
other than the configured one.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "session to continue")
	chatCmd.Flags().StringVar(&chatRelay, "relay", "", "relay base URL")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc := conversationService
	if chatRelay != "" && conversationFactory != nil {
		svc = conversationFactory(chatRelay)
	}
	if svc == nil {
		return errNoConversation
	}

	ctx := cmd.Context()
	session, err := openSession(ctx, svc, chatSession)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	interactive := isTerminal(in)
	if interactive {
		cmd.Println(titleStyle.Render("sitegen chat") + mutedStyle.Render("  session "+session.ID))
		cmd.Println(mutedStyle.Render("Describe what to build. /new starts over, /quit exits."))
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for {
		if interactive {
			cmd.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/new":
			session, err = svc.Reset(ctx, session.ID)
			if err != nil {
				return err
			}
			cmd.Println(mutedStyle.Render("Started a new conversation."))
			continue
		case "/files":
			printFiles(cmd, session.Reconciliation.Files.Valid())
			continue
		}

		session, err = sendPrompt(ctx, cmd, svc, session.ID, line)
		if err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// sendPrompt sends one prompt and prints the outcome. Upstream failures are
// reported and the conversation continues; other errors end it.
func sendPrompt(
	ctx context.Context,
	cmd *cobra.Command,
	svc driving.ConversationService,
	sessionID, prompt string,
) (*domain.Session, error) {
	session, err := svc.Send(ctx, sessionID, prompt)
	if err != nil {
		if session != nil && (errors.Is(err, domain.ErrUpstream) || errors.Is(err, domain.ErrValidation)) {
			cmd.PrintErrln(errorStyle.Render("Error: " + err.Error()))
			return session, nil
		}
		return nil, err
	}

	if reply := lastReply(session); reply != "" {
		cmd.Println(reply)
	}
	if session.DemoURL != "" {
		cmd.Println("Preview: " + linkStyle.Render(session.DemoURL))
	}
	files := session.Reconciliation.Files.Valid()
	cmd.Println(successStyle.Render(fmt.Sprintf("%d file(s)", len(files))))
	return session, nil
}

func openSession(ctx context.Context, svc driving.ConversationService, id string) (*domain.Session, error) {
	if id == "" {
		return svc.Start(ctx)
	}
	return svc.Get(ctx, id)
}

func lastReply(session *domain.Session) string {
	for i := len(session.Transcript) - 1; i >= 0; i-- {
		if session.Transcript[i].Role == domain.RoleAssistant {
			return session.Transcript[i].Content
		}
	}
	return ""
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
