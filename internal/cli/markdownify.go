// internal/cli/markdownify.go
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/internal/utils/headers"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	mdHeaders []string
	mdOutput  string
)

// markdownifyCmd represents the markdownify command
var markdownifyCmd = &cobra.Command{
	Use:   "markdownify <url>",
	Short: "Convert a page to clean markdown via the service",
	Long: `Submits a markdownify job: the service fetches the page and returns its
content as markdown. For conversion without the service, see 'sgai local'.`,
	Example: `  # Convert and print
  sgai markdownify https://example.com/article

  # Save straight to a file
  sgai markdownify https://example.com/article -o article.md`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkdownify,
}

func init() {
	rootCmd.AddCommand(markdownifyCmd)

	markdownifyCmd.Flags().StringArrayVarP(&mdHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"User-Agent: Bot\")")
	markdownifyCmd.Flags().StringVarP(&mdOutput, "output", "o", "", "File path to save the markdown (.md)")
}

func runMarkdownify(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.MarkdownifyRequest{
		WebsiteURL: args[0],
		Headers:    headers.ParseHeaders(mdHeaders),
	}

	log.Debug().Str("url", req.WebsiteURL).Msg("Submitting markdownify job")

	spin := ui.NewSpinner("converting")
	defer spin.Stop()

	res, err := client.Markdownify(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, mdOutput, "")
}
