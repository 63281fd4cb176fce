package git

import (
	"crypto/sha1" // #nosec G505 -- folder naming, not security
	"encoding/hex"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/auth"
)

var (
	remoteURLRx = regexp.MustCompile(`(?i)^(?:(?:https?|git|ssh|git\+ssh|file)://|[^/@:]+@[^/:]+:)`)
	gitSuffixRx = regexp.MustCompile(`(?:/|\.git)+$`)
)

// IsRemoteURL reports whether url names a repository that must be cloned
// into the cache rather than opened in place.
func IsRemoteURL(url string) bool {
	return remoteURLRx.MatchString(url)
}

// NormalizeURL lower-cases url, removes credentials and strips trailing
// slashes and .git suffixes.
func NormalizeURL(url string) string {
	normalized := strings.ToLower(auth.StripCredentials(url))
	normalized = strings.ReplaceAll(normalized, `\`, "/")
	return gitSuffixRx.ReplaceAllString(normalized, "")
}

// CacheFolderName derives the cache directory name of a remote repository:
// the last path segment of the normalized URL, a dash, the SHA-1 of the
// normalized URL and a .git suffix.
func CacheFolderName(url string) string {
	normalized := NormalizeURL(url)
	basename := normalized
	if i := strings.LastIndexAny(normalized, "/:"); i >= 0 {
		basename = normalized[i+1:]
	}
	sum := sha1.Sum([]byte(normalized)) // #nosec G401 -- folder naming, not security
	return basename + "-" + hex.EncodeToString(sum[:]) + ".git"
}
