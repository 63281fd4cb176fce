package providers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/doccatalog/internal/config"
)

// NoneProvider handles "none" authentication (no authentication).
type NoneProvider struct{}

// NewNoneProvider creates a new none authentication provider.
func NewNoneProvider() *NoneProvider { return &NoneProvider{} }

func (p *NoneProvider) Type() config.AuthType { return config.AuthTypeNone }
func (p *NoneProvider) Name() string          { return "NoneProvider" }

func (p *NoneProvider) CreateAuth(_ *config.AuthConfig, _ AuthContext) (transport.AuthMethod, error) {
	return nil, nil
}

func (p *NoneProvider) ValidateConfig(_ *config.AuthConfig) error { return nil }

// TokenProvider handles token-based authentication over HTTP(S).
type TokenProvider struct{}

// NewTokenProvider creates a new token authentication provider.
func NewTokenProvider() *TokenProvider { return &TokenProvider{} }

func (p *TokenProvider) Type() config.AuthType { return config.AuthTypeToken }
func (p *TokenProvider) Name() string          { return "TokenProvider" }

// CreateAuth sends the token as the password of user "token", which GitHub,
// GitLab and Gitea all accept.
func (p *TokenProvider) CreateAuth(authConfig *config.AuthConfig, _ AuthContext) (transport.AuthMethod, error) {
	username := authConfig.Username
	if username == "" {
		username = "token"
	}
	return &http.BasicAuth{Username: username, Password: authConfig.Token}, nil
}

func (p *TokenProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.Token == "" {
		return fmt.Errorf("token authentication requires a token")
	}
	return nil
}

// BasicProvider handles basic username/password authentication.
type BasicProvider struct{}

// NewBasicProvider creates a new basic authentication provider.
func NewBasicProvider() *BasicProvider { return &BasicProvider{} }

func (p *BasicProvider) Type() config.AuthType { return config.AuthTypeBasic }
func (p *BasicProvider) Name() string          { return "BasicProvider" }

func (p *BasicProvider) CreateAuth(authConfig *config.AuthConfig, _ AuthContext) (transport.AuthMethod, error) {
	return &http.BasicAuth{Username: authConfig.Username, Password: authConfig.Password}, nil
}

func (p *BasicProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.Username == "" {
		return fmt.Errorf("basic authentication requires a username")
	}
	if authConfig.Password == "" {
		return fmt.Errorf("basic authentication requires a password")
	}
	return nil
}
