// Package cli provides the command-line interface for the sgai application.
package cli

import (
	"github.com/law-makers/sgai/internal/app"
	"github.com/spf13/cobra"
)

// SetApp stores the Application for commands to access
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	globalApp = a
}

// GetApp retrieves the shared Application
func GetApp() *app.Application {
	return globalApp
}

// GetAppFromCmd retrieves the Application for the given command
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	return globalApp
}

var globalApp *app.Application
