// internal/cli/account.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/api"
	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	feedbackRating int
	feedbackText   string
)

// creditsCmd represents the credits command
var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show the account's credit balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireAPI(cmd)
		if err != nil {
			return err
		}
		resp, err := client.Credits(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s %d\n", ui.Bold("Remaining credits:"), resp.RemainingCredits)
		fmt.Printf("%s %d\n", ui.Bold("Total used:"), resp.TotalCreditsUsed)
		return nil
	},
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service availability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetAppFromCmd(cmd)
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		// healthz needs no API key
		resp, err := api.HealthCheck(cmd.Context(), a.Config.BaseURL)
		if err != nil {
			return fmt.Errorf("service unreachable: %w", err)
		}
		fmt.Println(ui.Success("✓ Service is " + resp.Status))
		return nil
	},
}

// feedbackCmd represents the feedback command
var feedbackCmd = &cobra.Command{
	Use:   "feedback <request-id>",
	Short: "Rate the result of a previous request",
	Example: `  # Rate a request from 0 to 5
  sgai feedback 3fa85f64-5717-4562-b3fc-2c963f66afa6 --rating 5

  # Include a comment
  sgai feedback 3fa85f64-5717-4562-b3fc-2c963f66afa6 --rating 2 --text "Missed the prices"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := requireAPI(cmd)
		if err != nil {
			return err
		}
		resp, err := client.Feedback(cmd.Context(), models.FeedbackRequest{
			RequestID:    args[0],
			Rating:       feedbackRating,
			FeedbackText: feedbackText,
		})
		if err != nil {
			return err
		}
		if resp.Message != "" {
			fmt.Println(ui.Success("✓ " + resp.Message))
		} else {
			fmt.Println(ui.Success("✓ Feedback recorded"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(creditsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(feedbackCmd)

	feedbackCmd.Flags().IntVar(&feedbackRating, "rating", 0, "Rating from 0 to 5 (required)")
	feedbackCmd.Flags().StringVar(&feedbackText, "text", "", "Free-form feedback text")
	feedbackCmd.MarkFlagRequired("rating")
}
