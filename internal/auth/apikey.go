// internal/auth/apikey.go
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "sgai-cli"
	// keyringUser is the account name the API key is stored under
	keyringUser = "api-key"
	// FallbackDir is the directory for file-based key storage (when keyring fails)
	FallbackDir = ".sgai"
	// fallbackFile is the key file name inside FallbackDir
	fallbackFile = "api-key"
)

// useFileBasedStorage checks if we should use file-based storage
// This is a fallback for environments where keyring isn't available (Codespaces, CI)
var fileBasedStorageCache *bool

func useFileBasedStorage() bool {
	if fileBasedStorageCache != nil {
		return *fileBasedStorageCache
	}

	// Check environment hints
	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result := true
		fileBasedStorageCache = &result
		return true
	}

	// Try to use keyring, but if it fails, use file-based storage
	testKey := "_test_keyring_access_"
	err := keyring.Set(KeyringService, testKey, "test")
	result := (err != nil)
	fileBasedStorageCache = &result

	if !result {
		keyring.Delete(KeyringService, testKey)
	}

	return result
}

// keyFilePath returns the fallback file path for the stored API key
func keyFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, fallbackFile), nil
}

// SaveAPIKey stores the opaque API key in the OS keyring or fallback file
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if useFileBasedStorage() {
		path, err := keyFilePath()
		if err != nil {
			return fmt.Errorf("failed to get key path: %w", err)
		}
		if err := os.WriteFile(path, []byte(key), 0600); err != nil {
			return fmt.Errorf("failed to save key file: %w", err)
		}
		return nil
	}

	if err := keyring.Set(KeyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return nil
}

// LoadAPIKey retrieves the stored API key, if any
func LoadAPIKey() (string, error) {
	if useFileBasedStorage() {
		path, err := keyFilePath()
		if err != nil {
			return "", fmt.Errorf("failed to get key path: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("no stored API key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	key, err := keyring.Get(KeyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no stored API key: %w", err)
	}
	return key, nil
}

// DeleteAPIKey removes the stored API key
func DeleteAPIKey() error {
	if useFileBasedStorage() {
		path, err := keyFilePath()
		if err != nil {
			return fmt.Errorf("failed to get key path: %w", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete key file: %w", err)
		}
		return nil
	}

	if err := keyring.Delete(KeyringService, keyringUser); err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
