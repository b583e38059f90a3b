// internal/cli/sitemap.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/output"
	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/pkg/models"
)

var sitemapOutput string

// sitemapCmd represents the sitemap command
var sitemapCmd = &cobra.Command{
	Use:   "sitemap <url>",
	Short: "List the URLs in a site's sitemap",
	Example: `  # Print discovered URLs, one per line
  sgai sitemap https://example.com

  # Save as JSON
  sgai sitemap https://example.com -o urls.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSitemap,
}

func init() {
	rootCmd.AddCommand(sitemapCmd)

	sitemapCmd.Flags().StringVarP(&sitemapOutput, "output", "o", "", "File path to save the URL list (.json)")
}

func runSitemap(cmd *cobra.Command, args []string) error {
	_, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	resp, err := client.Sitemap(cmd.Context(), models.SitemapRequest{WebsiteURL: args[0]})
	if err != nil {
		return err
	}

	if sitemapOutput != "" {
		if err := output.SaveJSON(resp, sitemapOutput); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Println(ui.Success("✓ Saved to " + sitemapOutput))
		return nil
	}

	for _, u := range resp.URLs {
		fmt.Println(u)
	}
	return nil
}
