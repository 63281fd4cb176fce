package git

import (
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/doccatalog/internal/auth"
)

var (
	scpLikeRx = regexp.MustCompile(`^(?:[^/@:]+@)?([^/@:]+):(.+)$`)
	sshURLRx  = regexp.MustCompile(`^(?:git\+)?ssh://(?:[^/@]+@)?([^/:]+)(?::\d+)?/(.+)$`)
)

// ResolveRemoteURL returns the browsable URL of the named remote. Mirrors
// report the URL they were cloned from. SSH URLs are rewritten to https and
// credentials are stripped. When the remote is not configured the
// repository directory is returned.
func ResolveRemoteURL(h *Handle, remoteName string) string {
	if h.Remote {
		return PublicURL(h.URL)
	}
	var raw string
	_ = h.with(func(repo *git.Repository) error {
		if remoteName == "" {
			return nil
		}
		remote, err := repo.Remote(remoteName)
		if err != nil {
			return nil
		}
		if urls := remote.Config().URLs; len(urls) > 0 {
			raw = urls[0]
		}
		return nil
	})
	if raw == "" {
		return h.Dir
	}
	return PublicURL(raw)
}

// PublicURL converts a git transport URL into the https form used in
// origins and edit links.
func PublicURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := sshURLRx.FindStringSubmatch(raw); m != nil {
		return "https://" + m[1] + "/" + m[2]
	}
	if !strings.Contains(raw, "://") {
		if m := scpLikeRx.FindStringSubmatch(raw); m != nil && strings.Contains(raw, "@") {
			return "https://" + m[1] + "/" + strings.TrimPrefix(m[2], "/")
		}
		return raw
	}
	return auth.StripCredentials(raw)
}
