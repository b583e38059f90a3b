// internal/cli/scrape.go
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/internal/utils/headers"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	scrapePrompt    string
	scrapeSchema    string
	scrapeHTMLFile  string
	scrapeHeaders   []string
	scrapeCookies   []string
	scrapeScrolls   int
	scrapeRenderJS  bool
	scrapeOutput    string
	scrapeTransform string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract structured data from a page with an AI prompt",
	Long: `Submits a smartscraper job: the service fetches the page, runs the
extraction prompt against it, and returns structured JSON. The command
polls the job until it finishes.

Instead of a URL you can supply pre-fetched HTML with --html-file.`,
	Example: `  # Extract with a natural-language prompt
  sgai scrape https://example.com --prompt "Extract the product name and price"

  # Constrain the output shape with a JSON schema
  sgai scrape https://example.com -p "List all articles" --schema @article.schema.json

  # Heavy client-side rendering and infinite scroll
  sgai scrape https://example.com -p "Extract the feed" --render-js --scrolls 5

  # Extract from local HTML
  sgai scrape --html-file page.html -p "Extract the table as JSON"

  # Post-process the result with a JavaScript snippet
  sgai scrape https://example.com -p "Extract prices" --transform pick.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&scrapePrompt, "prompt", "p", "", "Extraction prompt (required)")
	scrapeCmd.Flags().StringVar(&scrapeSchema, "schema", "", "Output schema as inline JSON or @file")
	scrapeCmd.Flags().StringVar(&scrapeHTMLFile, "html-file", "", "Extract from a local HTML file instead of a URL")
	scrapeCmd.Flags().StringArrayVarP(&scrapeHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"User-Agent: Bot\")")
	scrapeCmd.Flags().StringArrayVar(&scrapeCookies, "cookie", []string{}, "Cookies to send (e.g., --cookie \"session=abc\")")
	scrapeCmd.Flags().IntVar(&scrapeScrolls, "scrolls", 0, "Number of infinite scrolls before extraction")
	scrapeCmd.Flags().BoolVar(&scrapeRenderJS, "render-js", false, "Render heavy JavaScript before extraction")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "File path to save the result (.json, .md, .txt)")
	scrapeCmd.Flags().StringVar(&scrapeTransform, "transform", "", "JavaScript file applied to the result payload")
	scrapeCmd.MarkFlagRequired("prompt")
}

func runScrape(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.SmartScraperRequest{
		UserPrompt:      scrapePrompt,
		Headers:         headers.ParseHeaders(scrapeHeaders),
		Cookies:         headers.ParseCookies(scrapeCookies),
		NumberOfScrolls: scrapeScrolls,
		RenderHeavyJS:   scrapeRenderJS,
	}

	if len(args) == 1 {
		req.WebsiteURL = args[0]
	}
	if scrapeHTMLFile != "" {
		content, err := os.ReadFile(scrapeHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		req.WebsiteHTML = string(content)
	}
	if req.WebsiteURL == "" && req.WebsiteHTML == "" {
		return fmt.Errorf("either a URL argument or --html-file is required")
	}

	if req.OutputSchema, err = parseSchema(scrapeSchema); err != nil {
		return err
	}

	log.Debug().Str("url", req.WebsiteURL).Msg("Submitting smartscraper job")

	spin := ui.NewSpinner("submitting")
	defer spin.Stop()

	res, err := client.SmartScraper(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, scrapeOutput, scrapeTransform)
}
