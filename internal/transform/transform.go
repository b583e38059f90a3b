// internal/transform/transform.go
package transform

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds script execution
const DefaultTimeout = 5 * time.Second

// Apply runs a user-supplied JavaScript snippet over a JSON payload.
//
// The script sees the parsed payload as the global `result`; the value of
// its final expression becomes the transformed output. Scripts run in a
// bare VM with only a console shim, no network, no filesystem.
func Apply(script string, payload json.RawMessage, timeout time.Duration) (json.RawMessage, error) {
	if script == "" {
		return payload, nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var input interface{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, fmt.Errorf("payload is not valid JSON: %w", err)
		}
	}

	vm := goja.New()
	vm.Set("result", input)
	vm.Set("console", map[string]interface{}{
		"log": func(call goja.FunctionCall) goja.Value {
			args := make([]interface{}, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = a.Export()
			}
			log.Debug().Interface("args", args).Msg("transform script log")
			return nil
		},
		"error": func(call goja.FunctionCall) goja.Value {
			args := make([]interface{}, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = a.Export()
			}
			log.Warn().Interface("args", args).Msg("transform script error")
			return nil
		},
	})

	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt("script timeout")
	})
	defer timer.Stop()

	value, err := vm.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("transform script failed: %w", err)
	}

	exported := value.Export()
	if exported == nil {
		return nil, fmt.Errorf("transform script produced no value")
	}

	out, err := json.Marshal(exported)
	if err != nil {
		return nil, fmt.Errorf("transform result is not serializable: %w", err)
	}
	return out, nil
}
