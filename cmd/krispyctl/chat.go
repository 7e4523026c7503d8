package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
	"github.com/kristykoh/krispyledger-web/internal/service"
	"github.com/kristykoh/krispyledger-web/internal/session"
	"github.com/kristykoh/krispyledger-web/internal/storage"
	"github.com/kristykoh/krispyledger-web/internal/storage/memory"
	"github.com/kristykoh/krispyledger-web/internal/storage/sqlite"
	"github.com/kristykoh/krispyledger-web/pkg/logging"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive ledger conversation",
	Long: `Reads lines from stdin and sends them as intents.

Commands: /start /adduser /removeuser /expense /done /cancel /summary /log /clear /quit
Pick a button with #N. Anything else is sent as text.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("conversation", "console", "Conversation ID")
	chatCmd.Flags().String("db", "", "SQLite database path (default: in-memory)")
	chatCmd.Flags().String("server", "", "Base URL of a running server; runs in-process when empty")
	chatCmd.Flags().String("token", "", "Bridge token for --server")
	chatCmd.Flags().Bool("plain", false, "Print plain text instead of rendered markdown")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	conversationID, _ := cmd.Flags().GetString("conversation")
	dbPath, _ := cmd.Flags().GetString("db")
	serverURL, _ := cmd.Flags().GetString("server")
	token, _ := cmd.Flags().GetString("token")
	plain, _ := cmd.Flags().GetBool("plain")
	level, _ := cmd.Flags().GetString("log-level")

	logging.SetupWithLevel(logging.ParseLevel(level))

	var d dispatcher
	if serverURL != "" {
		d = remoteDispatcher{client: service.NewDispatchClient(http.DefaultClient, serverURL), token: token}
	} else {
		var store storage.LedgerStore = memory.NewStore()
		if dbPath != "" {
			s, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			store = s
		}
		defer store.Close()
		d = localDispatcher{manager: session.NewManager(store)}
	}

	render := func(md string) string { return md }
	if !plain {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		render = func(md string) string {
			out, err := r.Render(md)
			if err != nil {
				return md
			}
			return out
		}
	}

	return chatLoop(cmd.Context(), d, conversationID, cmd.InOrStdin(), cmd.OutOrStdout(), render)
}

func chatLoop(ctx context.Context, d dispatcher, conversationID string, in io.Reader, out io.Writer, render func(string) string) error {
	scanner := bufio.NewScanner(in)

	last, err := d.dispatch(ctx, conversationID, dialog.Of(dialog.KindStart))
	if err != nil {
		return err
	}
	fmt.Fprint(out, render(last.markdown()))

	for {
		fmt.Fprintf(out, "[%s] > ", last.Phase)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		intent, err := parseLine(scanner.Text(), last.buttons())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		next, err := d.dispatch(ctx, conversationID, intent)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		last = next
		fmt.Fprint(out, render(last.markdown()))
	}
}
