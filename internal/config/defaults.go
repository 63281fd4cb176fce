package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultBranches are used when neither the source nor the content section
// names branch patterns.
var DefaultBranches = Patterns{"HEAD", "v{0..9}*"}

const (
	DefaultRemote      = "origin"
	DefaultConcurrency = 4
	cacheDirName       = "doccatalog"
)

// ApplyDefaults fills unset fields. It is idempotent.
func (c *Config) ApplyDefaults() error {
	if c.Content.Branches == nil {
		c.Content.Branches = append(Patterns(nil), DefaultBranches...)
	}
	for i := range c.Content.Sources {
		src := &c.Content.Sources[i]
		src.URL = strings.TrimSpace(src.URL)
		src.StartPath = strings.Trim(strings.TrimSpace(src.StartPath), "/")
		if src.Remote == "" {
			src.Remote = DefaultRemote
		}
		if src.Auth != nil {
			if t, err := authTypeNormalizer.Parse(string(src.Auth.Type)); err == nil {
				src.Auth.Type = t
			}
		}
	}

	if c.Runtime.Concurrency == 0 {
		c.Runtime.Concurrency = DefaultConcurrency
	}
	if c.Runtime.CacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil || base == "" {
			base = filepath.Join(os.TempDir(), ".cache")
		}
		c.Runtime.CacheDir = filepath.Join(base, cacheDirName)
	} else {
		c.Runtime.CacheDir = c.ResolvePath(c.Runtime.CacheDir)
	}
	if c.Runtime.Retry.Backoff != "" {
		c.Runtime.Retry.Backoff = NormalizeRetryBackoff(string(c.Runtime.Retry.Backoff))
	}

	if c.URLs.HTMLExtensionStyle == "" {
		c.URLs.HTMLExtensionStyle = HTMLExtensionDefault
	}
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	return nil
}

// BranchesFor returns the branch patterns that apply to src.
func (c *Config) BranchesFor(src SourceConfig) Patterns {
	if src.Branches != nil {
		return src.Branches
	}
	return c.Content.Branches
}

// TagsFor returns the tag patterns that apply to src.
func (c *Config) TagsFor(src SourceConfig) Patterns {
	if src.Tags != nil {
		return src.Tags
	}
	return c.Content.Tags
}

// EditURLEnabled reports whether edit URLs are computed for src. It defaults to true.
func (c *Config) EditURLEnabled(src SourceConfig) bool {
	if src.EditURL != nil {
		return *src.EditURL
	}
	if c.Content.EditURL != nil {
		return *c.Content.EditURL
	}
	return true
}
