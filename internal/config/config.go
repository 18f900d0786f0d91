// Package config loads the agent's operating profile: account token,
// challenge-acceptance policy, and log level, read from a YAML file with
// an environment fallback for an empty token (flag overrides are applied
// by the caller).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk shape of a pawnbot config file.
type Profile struct {
	Token     string `yaml:"token"`
	Username  string `yaml:"username"`
	LogLevel  string `yaml:"log_level"`
	NoAccept  bool   `yaml:"no_accept"`
	Stockfish string `yaml:"stockfish"` // "N" or "N-M", validated by caller
}

// Load reads path (if non-empty and it exists) and applies the
// LICHESS_TOKEN environment variable as a fallback for an empty token.
// A missing path is not an error: callers may run entirely off flags
// and the environment.
func Load(path string) (Profile, error) {
	var p Profile
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return withEnvToken(p), nil
			}
			return Profile{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return withEnvToken(p), nil
}

func withEnvToken(p Profile) Profile {
	if p.Token == "" {
		p.Token = os.Getenv("LICHESS_TOKEN")
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	return p
}

// Save writes p to path as YAML, creating or truncating the file.
func Save(path string, p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
