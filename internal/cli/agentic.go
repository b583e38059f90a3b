// internal/cli/agentic.go
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	agenticSteps     []string
	agenticPrompt    string
	agenticSchema    string
	agenticSession   bool
	agenticOutput    string
	agenticTransform string
)

// agenticCmd represents the agentic command
var agenticCmd = &cobra.Command{
	Use:   "agentic <url>",
	Short: "Drive a browser through natural-language steps",
	Long: `Submits an agentic scraper job: a hosted browser session executes the
given steps in order (clicking, typing, navigating), then optionally runs
an AI extraction prompt against the final page state.`,
	Example: `  # Log in and return the dashboard
  sgai agentic https://example.com/login \
    --step "Type user@example.com in the email field" \
    --step "Type secret in the password field" \
    --step "Click the Login button"

  # Automation followed by structured extraction
  sgai agentic https://example.com \
    --step "Open the pricing page" \
    --prompt "Extract all plans with prices" --schema @plans.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentic,
}

func init() {
	rootCmd.AddCommand(agenticCmd)

	agenticCmd.Flags().StringArrayVar(&agenticSteps, "step", []string{}, "Browser step in natural language (repeatable, required)")
	agenticCmd.Flags().StringVarP(&agenticPrompt, "prompt", "p", "", "Extraction prompt to run after the steps")
	agenticCmd.Flags().StringVar(&agenticSchema, "schema", "", "Output schema as inline JSON or @file")
	agenticCmd.Flags().BoolVar(&agenticSession, "use-session", false, "Reuse the hosted browser session across steps")
	agenticCmd.Flags().StringVarP(&agenticOutput, "output", "o", "", "File path to save the result")
	agenticCmd.Flags().StringVar(&agenticTransform, "transform", "", "JavaScript file applied to the result payload")
	agenticCmd.MarkFlagRequired("step")
}

func runAgentic(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.AgenticScraperRequest{
		URL:          args[0],
		Steps:        agenticSteps,
		UseSession:   agenticSession,
		UserPrompt:   agenticPrompt,
		AIExtraction: agenticPrompt != "",
	}
	if req.OutputSchema, err = parseSchema(agenticSchema); err != nil {
		return err
	}

	log.Debug().
		Str("url", req.URL).
		Int("steps", len(agenticSteps)).
		Bool("ai_extraction", req.AIExtraction).
		Msg("Submitting agentic scraper job")

	spin := ui.NewSpinner("automating")
	defer spin.Stop()

	res, err := client.AgenticScraper(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, agenticOutput, agenticTransform)
}
