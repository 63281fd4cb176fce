// Package config loads the playbook that drives content aggregation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// Config is the root of the playbook file.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Runtime RuntimeConfig `yaml:"runtime"`
	URLs    URLConfig     `yaml:"urls"`

	// Dir is the directory of the playbook file. Relative local source paths
	// and the cache directory are resolved against it.
	Dir string `yaml:"-"`
}

// SiteConfig holds site-wide settings.
type SiteConfig struct {
	URL   string `yaml:"url,omitempty"`
	Title string `yaml:"title,omitempty"`
}

// ContentConfig lists the content sources and the default ref patterns.
type ContentConfig struct {
	Branches Patterns       `yaml:"branches,omitempty"`
	Tags     Patterns       `yaml:"tags,omitempty"`
	EditURL  *bool          `yaml:"edit_url,omitempty"`
	Sources  []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one content repository.
type SourceConfig struct {
	URL       string      `yaml:"url"`
	StartPath string      `yaml:"start_path,omitempty"`
	Branches  Patterns    `yaml:"branches,omitempty"`
	Tags      Patterns    `yaml:"tags,omitempty"`
	Remote    string      `yaml:"remote,omitempty"`
	EditURL   *bool       `yaml:"edit_url,omitempty"`
	Auth      *AuthConfig `yaml:"auth,omitempty"`
}

// RuntimeConfig controls repository acquisition.
type RuntimeConfig struct {
	CacheDir    string      `yaml:"cache_dir,omitempty"`
	Fetch       bool        `yaml:"fetch,omitempty"`
	Concurrency int         `yaml:"concurrency,omitempty"`
	Retry       RetryConfig `yaml:"retry,omitempty"`
}

// URLConfig controls how publication URLs are computed.
type URLConfig struct {
	HTMLExtensionStyle HTMLExtensionStyle `yaml:"html_extension_style,omitempty"`
}

// Load reads, expands, defaults and validates the playbook at configPath.
// Environment variables from .env files next to the playbook are loaded
// first without overriding the process environment.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.ConfigError("invalid configuration path").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	dir := filepath.Dir(absPath)
	loadEnvFiles(dir)

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("path", absPath).
				Fatal().
				Build()
		}
		return nil, errors.FileSystemError("failed to read configuration file").
			WithCause(err).
			WithContext("path", absPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Dir = dir
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes playbook YAML after expanding ${VAR} references. It does not
// apply defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse configuration").WithCause(err).Build()
	}
	return &cfg, nil
}

// ResolvePath resolves p against the playbook directory after expanding a
// leading "~" or "~+".
func (c *Config) ResolvePath(p string) string {
	if p == "" {
		return p
	}
	p = ExpandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	base := c.Dir
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	return filepath.Join(base, p)
}

// ExpandHome replaces a leading "~" with the user's home directory and "~+"
// with the working directory.
func ExpandHome(p string) string {
	switch {
	case p == "~+" || strings.HasPrefix(p, "~+/"):
		if wd, err := os.Getwd(); err == nil {
			return filepath.Join(wd, p[2:])
		}
	case p == "~" || strings.HasPrefix(p, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

// String implements fmt.Stringer for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{sources=%d cache=%s fetch=%t style=%s}",
		len(c.Content.Sources), c.Runtime.CacheDir, c.Runtime.Fetch, c.URLs.HTMLExtensionStyle)
}
