// internal/cli/auth.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/law-makers/sgai/internal/api"
	"github.com/law-makers/sgai/internal/auth"
	"github.com/law-makers/sgai/internal/ui"
)

var (
	loginKey      string
	loginNoVerify bool
)

// authCmd groups credential management subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API key",
}

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API key in the system credential store",
	Long: `Saves an API key for later commands. The key is verified against the
service before storing unless --no-verify is given. On systems without a
keyring the key is written to ~/.sgai/api-key with owner-only permissions.`,
	Example: `  # Prompt for the key (input is hidden)
  sgai auth login

  # Non-interactive
  sgai auth login --key sgai-xxxxxxxx --no-verify`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key is active and whether the service accepts it",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteAPIKey(); err != nil {
			return fmt.Errorf("failed to remove stored key: %w", err)
		}
		fmt.Println(ui.Success("✓ Stored API key removed"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)

	authLoginCmd.Flags().StringVar(&loginKey, "key", "", "API key to store (prompted when omitted)")
	authLoginCmd.Flags().BoolVar(&loginNoVerify, "no-verify", false, "Skip validating the key against the service")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	key := strings.TrimSpace(loginKey)
	if key == "" {
		fmt.Print("API key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = strings.TrimSpace(string(raw))
	}
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}

	if !loginNoVerify {
		client, err := api.NewClient(api.Options{
			APIKey:  key,
			BaseURL: a.Config.BaseURL,
		})
		if err != nil {
			return err
		}
		resp, err := client.Validate(cmd.Context())
		if err != nil {
			return fmt.Errorf("key validation failed: %w", err)
		}
		if !resp.Valid {
			if resp.Message != "" {
				return fmt.Errorf("service rejected the key: %s", resp.Message)
			}
			return fmt.Errorf("service rejected the key")
		}
		log.Debug().Str("email", resp.Email).Msg("API key validated")
	}

	if err := auth.SaveAPIKey(key); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Println(ui.Success("✓ API key stored"))
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	key := a.ResolveAPIKey()
	if key == "" {
		fmt.Println(ui.Warn("No API key configured"))
		fmt.Println(ui.Dim("Set --api-key, SGAI_API_KEY, or run 'sgai auth login'"))
		return nil
	}

	fmt.Printf("%s %s\n", ui.Bold("Active key:"), maskKey(key))

	client, err := a.API()
	if err != nil {
		return err
	}
	resp, err := client.Validate(cmd.Context())
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	if resp.Valid {
		if resp.Email != "" {
			fmt.Println(ui.Success("✓ Key accepted (" + resp.Email + ")"))
		} else {
			fmt.Println(ui.Success("✓ Key accepted"))
		}
	} else {
		fmt.Println(ui.Error("✗ Key rejected by the service"))
	}
	return nil
}

// maskKey keeps just enough of the key to recognize it
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
