package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatterbot/internal"
	"github.com/iksnae/chatterbot/internal/export"
	"github.com/spf13/cobra"
)

var (
	sendSave   string
	sendFormat string
)

var (
	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	modelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true)
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message and print the reply",
	Long: `Send a single message to the ChatterBot server and print the reply.

Each invocation is a fresh conversation: the server sees only the seeded
greeting and your message. Useful for scripting and smoke tests.

Examples:
  chatterbot send "what's the capital of France?"
  chatterbot send --save answer.md "explain goroutines"
  chatterbot send --save out.json --format json "hello"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		if internal.IsBlank(message) {
			return errors.New("message is empty")
		}

		client := internal.NewClient(cfg.ServerURL, cfg.Timeout)
		session := internal.NewSession(client, cfg.Greeting)

		snap := session.Send(cmd.Context(), message)
		if snap.LastError != "" {
			return fmt.Errorf("send failed: %s", snap.LastError)
		}

		reply, ok := snap.Last()
		if !ok || reply.Role != internal.RoleAssistant {
			return errors.New("no reply received")
		}

		fmt.Println(replyStyle.Render(reply.Content))
		if reply.Model != "" {
			fmt.Println(modelStyle.Render("— " + reply.Model))
		}

		if sendSave != "" {
			transcript := internal.NewTranscript(snap, cfg.ServerURL, time.Now())
			if err := export.WriteFile(transcript, sendFormat, sendSave); err != nil {
				return err
			}
			internal.LogInfo("transcript saved to %s", sendSave)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendSave, "save", "", "Save the transcript to this file")
	sendCmd.Flags().StringVar(&sendFormat, "format", "md", "Transcript format: md, json, jsonl, yaml")
}
