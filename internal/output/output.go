// internal/output/output.go
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/law-makers/sgai/pkg/models"
)

// PrettyJSON returns an indented rendering of a raw JSON payload.
// Non-JSON input is returned unchanged.
func PrettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// PrintResult writes a job payload to w. A payload that is a bare JSON
// string (markdown jobs) is unquoted; everything else prints as indented
// JSON.
func PrintResult(w io.Writer, payload json.RawMessage) error {
	var s string
	if json.Unmarshal(payload, &s) == nil {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	_, err := fmt.Fprintln(w, PrettyJSON(payload))
	return err
}

// SaveResult writes a job payload to path. ".md", ".txt" and ".html"
// unwrap bare string payloads; everything else is written as indented JSON.
func SaveResult(payload json.RawMessage, path string) error {
	var content []byte

	switch {
	case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".txt"), strings.HasSuffix(path, ".html"):
		var s string
		if json.Unmarshal(payload, &s) == nil {
			content = []byte(s)
		} else {
			content = []byte(PrettyJSON(payload))
		}
	default:
		content = []byte(PrettyJSON(payload))
	}

	return os.WriteFile(path, content, 0644)
}

// SaveJSON writes an indented JSON export of any value to path
func SaveJSON(v any, path string) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// SavePage writes locally fetched page data to path, choosing the format by
// extension: .md (markdown), .html (raw HTML), .json (full export minus HTML)
func SavePage(data *models.PageData, path string) error {
	switch {
	case strings.HasSuffix(path, ".md"):
		return os.WriteFile(path, []byte(data.Markdown), 0644)
	case strings.HasSuffix(path, ".html"):
		return os.WriteFile(path, []byte(data.HTML), 0644)
	case strings.HasSuffix(path, ".json"):
		export := *data
		export.HTML = ""
		return SaveJSON(&export, path)
	default:
		return fmt.Errorf("unsupported output format: %s (use .md, .html, or .json)", path)
	}
}
