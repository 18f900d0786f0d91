package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRoundTripsProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	want := Profile{
		Token:     "secret-token",
		Username:  "pawnbot",
		LogLevel:  "debug",
		NoAccept:  true,
		Stockfish: "1-3",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "env-token")

	got, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "env-token" {
		t.Fatalf("Token = %q, want env-token", got.Token)
	}
	if got.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want default info", got.LogLevel)
	}
}

func TestLoadEmptyPathSkipsFile(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "")
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "" {
		t.Fatalf("Token = %q, want empty", got.Token)
	}
	if got.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want default info", got.LogLevel)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("token: [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load of malformed YAML returned nil error")
	}
}

func TestFileTokenOverridesEnv(t *testing.T) {
	t.Setenv("LICHESS_TOKEN", "env-token")
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := Save(path, Profile{Token: "file-token", LogLevel: "warn"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "file-token" {
		t.Fatalf("Token = %q, want file-token to win over env", got.Token)
	}
}
