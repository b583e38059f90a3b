// internal/cli/search.go
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	searchResults   int
	searchSchema    string
	searchOutput    string
	searchTransform string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <prompt>",
	Short: "Search the web and extract a merged answer",
	Long: `Submits a searchscraper job: the service searches the web, scrapes the
top results, and merges them into one structured answer with reference
URLs.`,
	Example: `  # Ask a question answered from live web results
  sgai search "What are the latest Go releases and their dates?"

  # More sources, structured output
  sgai search "Top rated espresso machines with prices" -n 5 --schema @machines.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchResults, "num-results", "n", 0, "Number of search results to scrape (default service-side: 3)")
	searchCmd.Flags().StringVar(&searchSchema, "schema", "", "Output schema as inline JSON or @file")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "File path to save the result")
	searchCmd.Flags().StringVar(&searchTransform, "transform", "", "JavaScript file applied to the result payload")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.SearchScraperRequest{
		UserPrompt: args[0],
		NumResults: searchResults,
	}
	if req.OutputSchema, err = parseSchema(searchSchema); err != nil {
		return err
	}

	log.Debug().Int("num_results", searchResults).Msg("Submitting searchscraper job")

	spin := ui.NewSpinner("searching")
	defer spin.Stop()

	res, err := client.SearchScraper(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, searchOutput, searchTransform)
}
