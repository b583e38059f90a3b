// internal/cli/helpers.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/sgai/internal/api"
	"github.com/law-makers/sgai/internal/app"
	"github.com/law-makers/sgai/internal/output"
	"github.com/law-makers/sgai/internal/poller"
	"github.com/law-makers/sgai/internal/transform"
	"github.com/law-makers/sgai/internal/ui"
)

// requireAPI fetches the shared service client, failing with a setup hint
// when no key is configured.
func requireAPI(cmd *cobra.Command) (*app.Application, *api.Client, error) {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return nil, nil, fmt.Errorf("application not initialized")
	}
	client, err := a.API()
	if err != nil {
		return nil, nil, err
	}
	return a, client, nil
}

// pollConfig attaches a terminal spinner to the application's poll settings
func pollConfig(a *app.Application, spin *ui.Spinner) poller.Config {
	cfg := a.PollConfig()
	cfg.OnAttempt = func(attempt int, state string) {
		label := state
		if label == "" {
			label = "retrying"
		}
		spin.Tick(fmt.Sprintf("%s (attempt %d/%d)", label, attempt, cfg.MaxAttempts))
	}
	return cfg
}

// emitResult prints or saves the payload of a finished job. Failure and
// exhaustion outcomes become command errors so the process exits non-zero.
func emitResult(res *poller.Result, outPath, transformPath string) error {
	switch res.Outcome {
	case poller.OutcomeSuccess:
		payload := res.Payload
		if transformPath != "" {
			transformed, err := applyTransform(payload, transformPath)
			if err != nil {
				return err
			}
			payload = transformed
		}
		if outPath != "" {
			if err := output.SaveResult(payload, outPath); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Println(ui.Success("✓ Saved to " + outPath))
			return nil
		}
		return output.PrintResult(os.Stdout, payload)

	case poller.OutcomeTimeout:
		return fmt.Errorf("job still running after %d status checks; retry later with the request id", res.Attempts)

	default:
		if res.Err != "" {
			return fmt.Errorf("job failed: %s", res.Err)
		}
		return fmt.Errorf("job failed")
	}
}

// applyTransform runs the JavaScript file at path against the payload
func applyTransform(payload json.RawMessage, path string) (json.RawMessage, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transform script: %w", err)
	}
	out, err := transform.Apply(string(script), payload, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	return out, nil
}

// parseSchema accepts inline JSON or an @file reference and returns the
// raw schema bytes.
func parseSchema(arg string) (json.RawMessage, error) {
	if arg == "" {
		return nil, nil
	}

	var raw []byte
	if strings.HasPrefix(arg, "@") {
		content, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		raw = content
	} else {
		raw = []byte(arg)
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("schema is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
