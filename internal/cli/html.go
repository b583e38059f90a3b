// internal/cli/html.go
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/internal/utils/headers"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	htmlRenderJS bool
	htmlHeaders  []string
	htmlOutput   string
)

// htmlCmd represents the html command
var htmlCmd = &cobra.Command{
	Use:   "html <url>",
	Short: "Fetch the raw HTML of a page via the service",
	Long: `Submits a scrape job: the service fetches the page, optionally rendering
JavaScript in a hosted browser first, and returns the raw HTML.`,
	Example: `  # Plain fetch
  sgai html https://example.com

  # Render client-side JavaScript before capturing
  sgai html https://example.com --render-js -o page.html`,
	Args: cobra.ExactArgs(1),
	RunE: runHTML,
}

func init() {
	rootCmd.AddCommand(htmlCmd)

	htmlCmd.Flags().BoolVar(&htmlRenderJS, "render-js", false, "Render JavaScript before capturing the HTML")
	htmlCmd.Flags().StringArrayVarP(&htmlHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"User-Agent: Bot\")")
	htmlCmd.Flags().StringVarP(&htmlOutput, "output", "o", "", "File path to save the HTML")
}

func runHTML(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.ScrapeRequest{
		WebsiteURL:    args[0],
		RenderHeavyJS: htmlRenderJS,
		Headers:       headers.ParseHeaders(htmlHeaders),
	}

	log.Debug().Str("url", req.WebsiteURL).Bool("render_js", htmlRenderJS).Msg("Submitting scrape job")

	spin := ui.NewSpinner("fetching")
	defer spin.Stop()

	res, err := client.Scrape(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, htmlOutput, "")
}
