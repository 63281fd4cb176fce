package auth

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	httpCredentialsRx = regexp.MustCompile(`(?i)^(https?://)(?:([^/:@]+)?(?::([^/@]+)?)?@)?(.*)$`)
	sshURLRx          = regexp.MustCompile(`^ssh://(?:([^@/]+)@)?`)
	scpLikeRx         = regexp.MustCompile(`^(?:([^@/:]+)@)?[^@/:]+:`)
)

// Credentials are a user name and password taken from a repository URL.
type Credentials struct {
	Username string
	Password string
}

// IsZero reports whether no credentials were present.
func (c Credentials) IsZero() bool { return c.Username == "" && c.Password == "" }

// SplitCredentials removes user info from an HTTP(S) URL. The returned URL
// is safe to log and to use as a cache key. Non-HTTP URLs are returned
// unchanged with zero credentials.
func SplitCredentials(rawURL string) (string, Credentials) {
	m := httpCredentialsRx.FindStringSubmatch(rawURL)
	if m == nil {
		return rawURL, Credentials{}
	}
	creds := Credentials{Username: unescape(m[2]), Password: unescape(m[3])}
	return m[1] + m[4], creds
}

// StripCredentials is SplitCredentials without the credentials.
func StripCredentials(rawURL string) string {
	clean, _ := SplitCredentials(rawURL)
	return clean
}

// IsSSHURL reports whether rawURL uses the SSH transport, either as an
// ssh:// URL or in scp-like user@host:path form.
func IsSSHURL(rawURL string) bool {
	if strings.HasPrefix(rawURL, "ssh://") || strings.HasPrefix(rawURL, "git+ssh://") {
		return true
	}
	if strings.Contains(rawURL, "://") {
		return false
	}
	return strings.Contains(rawURL, "@") && scpLikeRx.MatchString(rawURL)
}

// SSHUser returns the user named in an SSH URL, or "".
func SSHUser(rawURL string) string {
	if m := sshURLRx.FindStringSubmatch(strings.TrimPrefix(rawURL, "git+")); m != nil {
		return m[1]
	}
	if m := scpLikeRx.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
