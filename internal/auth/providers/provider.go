package providers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// AuthProvider defines the interface for authentication providers.
// Each provider handles a specific authentication method (SSH, token, basic, none).
type AuthProvider interface {
	// Type returns the authentication type this provider handles.
	Type() config.AuthType

	// CreateAuth creates a transport.AuthMethod from the given configuration.
	// Returns nil, nil for no authentication (AuthTypeNone).
	CreateAuth(authCfg *config.AuthConfig, ctx AuthContext) (transport.AuthMethod, error)

	// ValidateConfig validates the authentication configuration for this provider.
	ValidateConfig(authCfg *config.AuthConfig) error

	// Name returns a human-readable name for this provider (for logging/debugging).
	Name() string
}

// AuthContext carries the repository an auth method is created for.
type AuthContext struct {
	RepositoryURL string // credential-free repository URL
	User          string // user name embedded in the URL, if any
}

// ProviderResult wraps the result of authentication creation with metadata.
type ProviderResult struct {
	Auth     transport.AuthMethod
	Provider string // Name of the provider that created this auth
	Type     config.AuthType
}

// AuthProviderRegistry manages the collection of available auth providers.
type AuthProviderRegistry struct {
	providers map[config.AuthType]AuthProvider
}

// NewAuthProviderRegistry creates a new registry with the standard providers.
func NewAuthProviderRegistry() *AuthProviderRegistry {
	registry := &AuthProviderRegistry{
		providers: make(map[config.AuthType]AuthProvider),
	}

	registry.Register(NewNoneProvider())
	registry.Register(NewSSHProvider())
	registry.Register(NewTokenProvider())
	registry.Register(NewBasicProvider())

	return registry
}

// Register adds a provider to the registry.
func (r *AuthProviderRegistry) Register(provider AuthProvider) {
	r.providers[provider.Type()] = provider
}

// GetProvider returns the provider for the given auth type.
func (r *AuthProviderRegistry) GetProvider(authType config.AuthType) (AuthProvider, bool) {
	provider, exists := r.providers[authType]
	return provider, exists
}

// CreateAuth creates authentication using the appropriate provider.
func (r *AuthProviderRegistry) CreateAuth(authCfg *config.AuthConfig, ctx AuthContext) (*ProviderResult, error) {
	if authCfg == nil {
		authCfg = &config.AuthConfig{Type: config.AuthTypeNone}
	}
	authType := authCfg.Type
	if authType == "" {
		authType = config.AuthTypeNone
	}

	provider, exists := r.GetProvider(authType)
	if !exists {
		return nil, &AuthError{
			Type:    authType,
			Message: "unsupported authentication type",
		}
	}

	if err := provider.ValidateConfig(authCfg); err != nil {
		return nil, &AuthError{
			Type:    authType,
			Message: "configuration validation failed",
			Cause:   err,
		}
	}

	auth, err := provider.CreateAuth(authCfg, ctx)
	if err != nil {
		return nil, &AuthError{
			Type:    authType,
			Message: "failed to create authentication",
			Cause:   err,
		}
	}

	return &ProviderResult{
		Auth:     auth,
		Provider: provider.Name(),
		Type:     provider.Type(),
	}, nil
}

// AuthError represents an authentication-related error.
type AuthError struct {
	Type    config.AuthType
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth error (%s): %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("auth error (%s): %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Category classifies auth errors for exit code mapping.
func (e *AuthError) Category() errors.ErrorCategory {
	return errors.CategoryAuth
}
