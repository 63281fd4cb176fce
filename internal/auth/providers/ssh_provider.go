package providers

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/doccatalog/internal/config"
)

// ErrSSHAgentUnavailable is wrapped by errors returned when an SSH URL needs
// the agent but none is reachable.
var ErrSSHAgentUnavailable = stderrors.New("ssh agent unavailable")

// SSHProvider handles SSH authentication. With a key path it loads the key
// file; without one it uses the running SSH agent.
type SSHProvider struct{}

// NewSSHProvider creates a new SSH authentication provider.
func NewSSHProvider() *SSHProvider { return &SSHProvider{} }

func (p *SSHProvider) Type() config.AuthType { return config.AuthTypeSSH }
func (p *SSHProvider) Name() string          { return "SSHProvider" }

func (p *SSHProvider) CreateAuth(authConfig *config.AuthConfig, ctx AuthContext) (transport.AuthMethod, error) {
	user := ctx.User
	if user == "" {
		user = "git"
	}
	if authConfig.KeyPath == "" {
		return AgentAuth(user)
	}
	keyPath := config.ExpandHome(authConfig.KeyPath)
	publicKeys, err := ssh.NewPublicKeysFromFile(user, keyPath, authConfig.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
	}
	return publicKeys, nil
}

func (p *SSHProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.KeyPath == "" {
		return nil
	}
	keyPath := config.ExpandHome(authConfig.KeyPath)
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		return fmt.Errorf("SSH key file does not exist: %s", keyPath)
	}
	return nil
}

// AgentAuth connects to the SSH agent named by SSH_AUTH_SOCK.
func AgentAuth(user string) (transport.AuthMethod, error) {
	if os.Getenv("SSH_AUTH_SOCK") == "" {
		return nil, fmt.Errorf("%w: SSH_AUTH_SOCK is not set", ErrSSHAgentUnavailable)
	}
	agentAuth, err := ssh.NewSSHAgentAuth(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSSHAgentUnavailable, err)
	}
	return agentAuth, nil
}
