package aggregate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// hostKind identifies a git hosting service with a web editor.
type hostKind string

const (
	hostGitHub    hostKind = "github"
	hostGitLab    hostKind = "gitlab"
	hostBitbucket hostKind = "bitbucket"
	hostForgejo   hostKind = "forgejo"
	hostPagure    hostKind = "pagure"
)

var knownHosts = map[string]hostKind{
	"github.com":    hostGitHub,
	"gitlab.com":    hostGitLab,
	"bitbucket.org": hostBitbucket,
	"codeberg.org":  hostForgejo,
	"pagure.io":     hostPagure,
}

var hostedRepoRx = regexp.MustCompile(`^https?://([^/]+)/(.+?)(?:\.git)?/?$`)

// EditURLPattern returns the edit URL template for a file of the given
// origin. The template contains a single %s for the path of the file
// relative to the start path. It returns an empty string for repositories
// on unknown hosts.
func EditURLPattern(o *content.Origin) string {
	startPath := ""
	if o.StartPath != "" {
		startPath = o.StartPath + "/"
	}
	if o.Worktree {
		return "file://" + filepath.ToSlash(o.WorktreePath) + "/" + startPath + "%s"
	}
	m := hostedRepoRx.FindStringSubmatch(o.URL)
	if m == nil {
		return ""
	}
	host, repoPath := strings.ToLower(m[1]), m[2]
	kind, ok := knownHosts[host]
	if !ok {
		return ""
	}
	base := fmt.Sprintf("https://%s/%s", host, repoPath)
	branch := o.RefType != content.RefTypeTag
	ref := o.RefName

	switch kind {
	case hostGitHub:
		action := "blob"
		if branch {
			action = "edit"
		}
		return fmt.Sprintf("%s/%s/%s/%s%%s", base, action, ref, startPath)
	case hostGitLab:
		action := "blob"
		if branch {
			action = "edit"
		}
		return fmt.Sprintf("%s/-/%s/%s/%s%%s", base, action, ref, startPath)
	case hostForgejo:
		if branch {
			return fmt.Sprintf("%s/_edit/%s/%s%%s", base, ref, startPath)
		}
		return fmt.Sprintf("%s/src/tag/%s/%s%%s", base, ref, startPath)
	case hostBitbucket:
		if branch {
			return fmt.Sprintf("%s/src/%s/%s%%s?mode=edit", base, ref, startPath)
		}
		return fmt.Sprintf("%s/src/%s/%s%%s", base, ref, startPath)
	case hostPagure:
		return fmt.Sprintf("%s/blob/%s/f/%s%%s", base, ref, startPath)
	}
	return ""
}
