// internal/cli/schema.go
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/ui"
	"github.com/law-makers/sgai/pkg/models"
)

var (
	schemaExisting string
	schemaOutput   string
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema <prompt>",
	Short: "Generate an extraction schema from a prompt",
	Long: `Asks the service to infer a JSON output schema from a natural-language
description. The generated schema can be fed back to 'sgai scrape' and
'sgai search' with --schema.`,
	Example: `  # Infer a schema for product listings
  sgai schema "product name, price as a number, and availability" -o product.schema.json

  # Refine an existing schema
  sgai schema "also include the review count" --existing @product.schema.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaExisting, "existing", "", "Existing schema to refine, inline JSON or @file")
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "File path to save the generated schema (.json)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	a, client, err := requireAPI(cmd)
	if err != nil {
		return err
	}

	req := models.GenerateSchemaRequest{UserPrompt: args[0]}
	if req.ExistingSchema, err = parseSchema(schemaExisting); err != nil {
		return err
	}

	log.Debug().Msg("Submitting schema generation job")

	spin := ui.NewSpinner("generating")
	defer spin.Stop()

	res, err := client.GenerateSchema(cmd.Context(), req, pollConfig(a, spin))
	if err != nil {
		return err
	}
	spin.Stop()

	return emitResult(res, schemaOutput, "")
}
