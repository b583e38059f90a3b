package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format only")
	cmd.PersistentFlags().String("api-key", "", "API key (overrides SGAI_API_KEY and the stored key)")
	cmd.PersistentFlags().String("base-url", "", "API base URL override")
	cmd.PersistentFlags().String("timeout", "120s", "Hard timeout for API requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().Int("max-attempts", DefaultPollMaxAttempts, "Maximum polling attempts for async jobs")
	cmd.PersistentFlags().String("poll-delay", "5s", "Base delay between polling attempts")
	cmd.PersistentFlags().String("proxy", "", "Comma-separated proxy URLs for local fetches")
}
