package config

import "git.home.luguber.info/inful/doccatalog/internal/foundation/normalization"

// AuthType enumerates supported authentication methods.
type AuthType string

const (
	AuthTypeNone  AuthType = "none"
	AuthTypeSSH   AuthType = "ssh"
	AuthTypeToken AuthType = "token"
	AuthTypeBasic AuthType = "basic"
)

var authTypeNormalizer = normalization.NewNormalizer("auth type", map[string]AuthType{
	"none":  AuthTypeNone,
	"ssh":   AuthTypeSSH,
	"token": AuthTypeToken,
	"basic": AuthTypeBasic,
}, AuthTypeNone)

// AuthConfig represents explicit credentials for a source. Credentials
// embedded in a source URL are used when no AuthConfig is given.
type AuthConfig struct {
	Type     AuthType `yaml:"type"` // ssh|token|basic|none
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	Token    string   `yaml:"token,omitempty"`
	KeyPath  string   `yaml:"key_path,omitempty"`
}

// IsZero reports whether no auth method specified.
func (a *AuthConfig) IsZero() bool { return a == nil || a.Type == "" || a.Type == AuthTypeNone }
