// Package auth turns source configuration and repository URLs into go-git
// transport authentication.
package auth

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/doccatalog/internal/auth/providers"
	"git.home.luguber.info/inful/doccatalog/internal/config"
)

// ErrSSHAgentUnavailable is re-exported for callers classifying transport failures.
var ErrSSHAgentUnavailable = providers.ErrSSHAgentUnavailable

// Manager provides a high-level interface for authentication operations.
type Manager struct {
	registry *providers.AuthProviderRegistry
}

// NewManager creates a new authentication manager with the standard providers.
func NewManager() *Manager {
	return &Manager{
		registry: providers.NewAuthProviderRegistry(),
	}
}

// CreateAuth creates authentication for an explicit configuration.
func (m *Manager) CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	res, err := m.registry.CreateAuth(authCfg, providers.AuthContext{})
	if err != nil {
		return nil, err
	}
	return res.Auth, nil
}

// Resolved is the outcome of ForSource.
type Resolved struct {
	Auth transport.AuthMethod
	// URL is the repository URL with any embedded credentials removed.
	URL string
	// FromURL is set when the credentials were taken from the URL.
	FromURL bool
	// Supplied reports whether any credentials were offered to the server.
	Supplied bool
}

// ForSource picks the auth method for a repository URL. Explicit
// configuration wins, then credentials embedded in the URL, then the SSH
// agent for SSH URLs. Otherwise no authentication is used.
func (m *Manager) ForSource(authCfg *config.AuthConfig, rawURL string) (Resolved, error) {
	cleanURL, creds := SplitCredentials(rawURL)
	ctx := providers.AuthContext{RepositoryURL: cleanURL, User: SSHUser(rawURL)}

	if !authCfg.IsZero() {
		res, err := m.registry.CreateAuth(authCfg, ctx)
		if err != nil {
			return Resolved{URL: cleanURL}, err
		}
		return Resolved{Auth: res.Auth, URL: cleanURL, Supplied: res.Auth != nil}, nil
	}
	if !creds.IsZero() {
		return Resolved{
			Auth:     &http.BasicAuth{Username: creds.Username, Password: creds.Password},
			URL:      cleanURL,
			FromURL:  true,
			Supplied: true,
		}, nil
	}
	if IsSSHURL(rawURL) {
		user := ctx.User
		if user == "" {
			user = "git"
		}
		agentAuth, err := providers.AgentAuth(user)
		if err != nil {
			return Resolved{URL: cleanURL}, err
		}
		return Resolved{Auth: agentAuth, URL: cleanURL, Supplied: true}, nil
	}
	return Resolved{URL: cleanURL}, nil
}

// DefaultManager is a package-level instance for convenience.
var DefaultManager = NewManager()

// CreateAuth is a convenience function that uses the default manager.
func CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	return DefaultManager.CreateAuth(authCfg)
}

// ForSource is a convenience function that uses the default manager.
func ForSource(authCfg *config.AuthConfig, rawURL string) (Resolved, error) {
	return DefaultManager.ForSource(authCfg, rawURL)
}
