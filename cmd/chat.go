package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/chatterbot/internal"
	"github.com/iksnae/chatterbot/tui"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open an interactive chat session",
	Long: `Open an interactive chat session with the ChatterBot server.

Your message appears immediately; the reply follows when the server answers.
If a send fails, your message stays in the conversation and the error shows
in a dismissible banner; just send again to retry.

Keys:
  Enter    send the typed message
  Ctrl+L   clear the conversation (a fresh greeting is seeded)
  Ctrl+S   save the transcript as Markdown in the working directory
  Ctrl+R   re-check connectivity
  Esc      dismiss the error banner, or quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; keep log lines off it.
		if verbose {
			f, err := tea.LogToFile("chatterbot.log", "")
			if err == nil {
				defer f.Close()
				internal.SetLogOutput(f)
			}
		} else {
			internal.SetLogOutput(io.Discard)
		}

		client := internal.NewClient(cfg.ServerURL, cfg.Timeout)
		session := internal.NewSession(client, cfg.Greeting)

		program := tea.NewProgram(tui.New(session, cfg.ServerURL), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
