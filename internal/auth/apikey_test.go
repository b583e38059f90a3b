package auth

import (
	"strings"
	"testing"
)

// force the file fallback so tests never touch the real keyring
func useFileStorage(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	forced := true
	prev := fileBasedStorageCache
	fileBasedStorageCache = &forced
	t.Cleanup(func() { fileBasedStorageCache = prev })
}

func TestAPIKey_SaveLoadDelete(t *testing.T) {
	useFileStorage(t)

	if err := SaveAPIKey("sgai-abc123"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	key, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey failed: %v", err)
	}
	if key != "sgai-abc123" {
		t.Errorf("LoadAPIKey = %q, want %q", key, "sgai-abc123")
	}

	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}
	if _, err := LoadAPIKey(); err == nil {
		t.Error("LoadAPIKey succeeded after delete")
	}
}

func TestAPIKey_TrimsWhitespace(t *testing.T) {
	useFileStorage(t)

	if err := SaveAPIKey("  sgai-xyz  \n"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}
	key, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey failed: %v", err)
	}
	if key != "sgai-xyz" {
		t.Errorf("LoadAPIKey = %q, want trimmed key", key)
	}
}

func TestAPIKey_RejectsEmpty(t *testing.T) {
	useFileStorage(t)

	err := SaveAPIKey("   ")
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("SaveAPIKey(blank) err = %v, want empty-key error", err)
	}
}

func TestAPIKey_DeleteMissingIsIdempotent(t *testing.T) {
	useFileStorage(t)

	if err := DeleteAPIKey(); err != nil {
		t.Errorf("DeleteAPIKey on missing key failed: %v", err)
	}
}
