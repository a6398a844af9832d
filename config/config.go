// Package config provides the boxctl configuration. Settings come from
// ~/.boxctl/config.yaml, overridden by BOXCTL_* environment variables,
// overridden by CLI flags. Commands receive an explicit Config value -
// business logic never reads the process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Providers boxctl knows how to drive.
const (
	ProviderAWS = "aws"
	ProviderGCP = "gcp"
)

// Config holds everything a command handler needs.
type Config struct {
	// Owner is the identity stamped on created instances and used to
	// scope every query. Required for all resource commands.
	Owner string `yaml:"owner"`

	// Prefix namespaces instance names: prefix + "-" + name.
	Prefix string `yaml:"prefix"`

	Provider string `yaml:"provider"`
	Region   string `yaml:"region"`  // AWS
	Project  string `yaml:"project"` // GCP
	Zone     string `yaml:"zone"`    // GCP

	// SSHUsers is the ordered username candidate list for the SSH probe.
	SSHUsers        []string `yaml:"ssh_users,omitempty"`
	SSHIdentityFile string   `yaml:"ssh_identity_file,omitempty"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boxctl", "config.yaml")
}

// Load reads configuration from the given path, then applies environment
// overrides. A missing file is not an error - env and defaults still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
		switch {
		case os.IsNotExist(err):
			// fall through to env and defaults
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BOXCTL_OWNER"); v != "" {
		c.Owner = v
	}
	if v := os.Getenv("BOXCTL_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("BOXCTL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("BOXCTL_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("BOXCTL_PROJECT"); v != "" {
		c.Project = v
	}
	if v := os.Getenv("BOXCTL_ZONE"); v != "" {
		c.Zone = v
	}
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAWS
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.Zone == "" {
		c.Zone = "us-central1-a"
	}
}

// Validate checks provider selection and provider-specific settings.
// Owner is checked separately by RequireOwner so read-only commands like
// context can run without an identity.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAWS:
		if c.Region == "" {
			return fmt.Errorf("region is required for provider aws")
		}
	case ProviderGCP:
		if c.Project == "" {
			return fmt.Errorf("project is required for provider gcp (set BOXCTL_PROJECT or config)")
		}
		if c.Zone == "" {
			return fmt.Errorf("zone is required for provider gcp")
		}
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderAWS, ProviderGCP)
	}
	return nil
}

// RequireOwner aborts resource commands before any provider call when no
// identity is configured.
func (c *Config) RequireOwner() error {
	if c.Owner == "" {
		return fmt.Errorf("no owner identity configured: set BOXCTL_OWNER or owner in %s", DefaultPath())
	}
	return nil
}

// QualifiedName prepends the configured prefix to a user-supplied name.
func (c *Config) QualifiedName(name string) string {
	if c.Prefix == "" {
		return name
	}
	return c.Prefix + "-" + name
}

// ProbeUsers returns the SSH username candidate list, falling back to
// provider-appropriate defaults.
func (c *Config) ProbeUsers() []string {
	if len(c.SSHUsers) > 0 {
		return c.SSHUsers
	}
	if c.Provider == ProviderGCP {
		return []string{"ubuntu", "debian", "admin"}
	}
	return []string{"ec2-user", "ubuntu", "admin", "debian", "centos"}
}
