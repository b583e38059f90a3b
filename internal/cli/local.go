// internal/cli/local.go
package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/app"
	"github.com/law-makers/sgai/internal/output"
	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/internal/utils/headers"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	localRenderJS    bool
	localHeaders     []string
	localOutput      string
	localTimeout     string
	localConcurrency int
)

// localCmd represents the local command
var localCmd = &cobra.Command{
	Use:   "local <url> [url...]",
	Short: "Fetch pages and convert them to markdown without the service",
	Long: `Fetches pages directly and converts them to markdown on this machine.
No API key or credits are needed. With --render-js a locally installed
Chrome renders each page first (set SGAI_CHROME_PATH to pick the binary).

With multiple URLs the pages are fetched concurrently and --output names
a directory receiving one markdown file per page.`,
	Example: `  # Fetch and print a summary with markdown preview
  sgai local https://example.com

  # Save the converted markdown
  sgai local https://example.com -o page.md

  # Render a JavaScript-heavy page with local Chrome
  sgai local https://example.com --render-js -o page.md

  # Batch fetch into a directory
  sgai local https://example.com/a https://example.com/b -o pages/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLocal,
}

func init() {
	rootCmd.AddCommand(localCmd)

	localCmd.Flags().BoolVar(&localRenderJS, "render-js", false, "Render pages with local headless Chrome first")
	localCmd.Flags().StringArrayVarP(&localHeaders, "header", "H", []string{}, "Custom headers (e.g., -H \"User-Agent: Bot\")")
	localCmd.Flags().StringVarP(&localOutput, "output", "o", "", "File path (single URL) or directory (multiple URLs)")
	localCmd.Flags().StringVar(&localTimeout, "fetch-timeout", "", "Per-fetch timeout (e.g., 45s)")
	localCmd.Flags().IntVarP(&localConcurrency, "concurrency", "c", 0, "Concurrent fetches for batch mode (0 = auto)")
}

func runLocal(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	opts := models.FetchOptions{
		RenderJS: localRenderJS,
		Headers:  headers.ParseHeaders(localHeaders),
	}
	if localTimeout != "" {
		d, err := time.ParseDuration(localTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch timeout: %w", err)
		}
		opts.Timeout = d
	}

	if len(args) > 1 {
		return runLocalBatch(cmd, a, args, opts)
	}

	opts.URL = args[0]
	log.Debug().Str("url", opts.URL).Bool("render_js", localRenderJS).Msg("Fetching locally")

	page, err := a.Local().Fetch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if localOutput != "" {
		if err := output.SavePage(page, localOutput); err != nil {
			return err
		}
		fmt.Println(ui.Success("✓ Saved to " + localOutput))
		return nil
	}

	printPageSummary(page)
	return nil
}

func runLocalBatch(cmd *cobra.Command, a *app.Application, urls []string, opts models.FetchOptions) error {
	if localOutput == "" {
		return fmt.Errorf("batch mode requires --output naming a directory")
	}
	if err := os.MkdirAll(localOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Debug().
		Int("urls", len(urls)).
		Int("concurrency", localConcurrency).
		Msg("Starting batch fetch")

	var failed int
	results := a.Local().FetchAll(cmd.Context(), urls, opts, localConcurrency)
	for res := range results {
		if res.Error != nil {
			failed++
			fmt.Println(ui.Error("✗ " + res.URL + ": " + res.Error.Error()))
			continue
		}

		path := filepath.Join(localOutput, pageFilename(res.URL))
		if err := output.SavePage(res.Data, path); err != nil {
			failed++
			fmt.Println(ui.Error("✗ " + res.URL + ": " + err.Error()))
			continue
		}
		fmt.Println(ui.Success("✓ " + res.URL + " → " + path))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(urls))
	}
	fmt.Println(ui.Success(fmt.Sprintf("✓ Fetched %d pages into %s", len(urls), localOutput)))
	return nil
}

func printPageSummary(page *models.PageData) {
	fmt.Printf("\n%s %s\n", ui.Bold("URL:"), page.URL)
	fmt.Printf("%s %d\n", ui.Bold("Status:"), page.StatusCode)
	fmt.Printf("%s %s\n", ui.Bold("Title:"), page.Title)
	fmt.Printf("%s %dms\n", ui.Bold("Response Time:"), page.ResponseTime)
	fmt.Printf("%s %d\n", ui.Bold("Links:"), len(page.Links))
	fmt.Printf("%s %d\n\n", ui.Bold("Images:"), len(page.Images))

	preview := page.Markdown
	if len(preview) > 2000 {
		preview = preview[:2000] + "\n..."
	}
	fmt.Println(preview)
}

// pageFilename derives a filesystem-safe markdown filename from a URL
func pageFilename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "page.md"
	}
	name := u.Host + strings.ReplaceAll(u.Path, "/", "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "page"
	}
	return name + ".md"
}
