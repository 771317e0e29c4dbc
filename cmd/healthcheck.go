package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatterbot/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the ChatterBot server is reachable",
	Long: `Check the health of the configured ChatterBot server by verifying:
  • Configuration resolution (server URL, timeout)
  • Service reachability via the health endpoint

This command is useful for debugging connection issues before opening a chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 ChatterBot Health Check"))
		fmt.Println()

		// Step 1: Show resolved configuration
		fmt.Println(infoStyle.Render("Step 1: Resolving configuration..."))
		fmt.Println(successStyle.Render("✅ Configuration resolved"))
		if healthcheckVerbose {
			fmt.Printf("   Server:  %s\n", cfg.ServerURL)
			fmt.Printf("   Timeout: %s\n", cfg.Timeout)
		}
		fmt.Println()

		// Step 2: Probe the service
		fmt.Println(infoStyle.Render("Step 2: Probing the health endpoint..."))
		client := internal.NewClient(cfg.ServerURL, cfg.Timeout)
		session := internal.NewSession(client, cfg.Greeting)
		snap := session.CheckConnectivity(cmd.Context())

		switch snap.Connectivity {
		case internal.ConnectivityReachable:
			fmt.Println(successStyle.Render("✅ Service is reachable"))
		default:
			fmt.Println(errorStyle.Render("❌ Service is unreachable"))
			if healthcheckVerbose {
				fmt.Printf("   Probed: %s/api/health\n", cfg.ServerURL)
				fmt.Println("   Is the server running? Check the URL and any proxies in between.")
			}
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		if snap.Connectivity == internal.ConnectivityReachable {
			fmt.Println(successStyle.Render("✅ Health check passed!"))
			fmt.Println(successStyle.Render(fmt.Sprintf("   • Server: %s", cfg.ServerURL)))
			return nil
		}

		fmt.Println(errorStyle.Render("❌ Health check failed"))
		fmt.Println("   • The chat service did not answer the health probe")
		return fmt.Errorf("health check failed: %s is unreachable", cfg.ServerURL)
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
