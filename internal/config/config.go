package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the name of the config file inside the .git directory
const ConfigFileName = ".gitwip_config"

// Divergence policies for the merge-tracking branch
const (
	PolicyFail     = "fail"
	PolicyAutoJoin = "autojoin"
)

// Config represents the per-repository gitwip configuration.
// All fields are optional; zero values fall back to defaults.
type Config struct {
	Owner      *string  `json:"owner,omitempty"`
	Remotes    []string `json:"remotes,omitempty"`
	Policy     *string  `json:"policy,omitempty"`
	PruneStale *bool    `json:"pruneStale,omitempty"`
}

// DefaultPath returns the default config path for a repository root
func DefaultPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ConfigFileName)
}

// Load reads the configuration from the given path.
// A missing file is not an error and yields the default config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the configuration to the given path
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// OwnerID returns the configured owner id, falling back to the hostname.
// Slashes are replaced so the id is always usable as a branch name segment.
func (c *Config) OwnerID() (string, error) {
	owner := ""
	if c.Owner != nil {
		owner = *c.Owner
	}
	if owner == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return "", fmt.Errorf("failed to determine owner id: %w", err)
		}
		owner = hostname
	}
	owner = strings.ReplaceAll(owner, "/", "-")
	if owner == "" || owner == "HEAD" || owner == "MERGE" {
		return "", fmt.Errorf("invalid owner id %q", owner)
	}
	return owner, nil
}

// DivergencePolicy returns the configured policy name, defaulting to autojoin
func (c *Config) DivergencePolicy() string {
	if c.Policy != nil {
		switch *c.Policy {
		case PolicyFail, PolicyAutoJoin:
			return *c.Policy
		}
	}
	return PolicyAutoJoin
}

// ShouldPruneStale reports whether reconciliation proposes deletion of
// remote WIP refs that no longer have a local counterpart. Off by default.
func (c *Config) ShouldPruneStale() bool {
	return c.PruneStale != nil && *c.PruneStale
}

// CandidateRemotes returns the configured remotes, or the fallback list
// (usually the repository's configured git remotes) if none are set.
func (c *Config) CandidateRemotes(fallback []string) []string {
	if len(c.Remotes) > 0 {
		return c.Remotes
	}
	return fallback
}
