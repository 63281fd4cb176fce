package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/gobwas/glob"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// Ref is a branch or tag selected for materialization.
type Ref struct {
	// Name is the short name (main, v1.0, HEAD).
	Name string
	// QualifiedName is the full reference name (refs/heads/main, refs/remotes/origin/main, refs/tags/v1.0).
	QualifiedName string
	Type          content.RefType
	// IsHead marks the branch checked out in a non-bare repository, or the
	// synthetic detached HEAD.
	IsHead bool
	// Remote names the remote of a remote-tracking branch.
	Remote string
	Hash   plumbing.Hash
}

// Detached reports whether the ref is the synthetic detached HEAD.
func (r Ref) Detached() bool { return r.QualifiedName == plumbing.HEAD.String() }

// SelectRefs returns the refs of h matching the branch and tag patterns.
// Unmatched patterns are ignored; the result is empty when nothing matches.
//
// The literals HEAD and "." in branch patterns stand for the checked-out
// branch. For cache mirrors remote-tracking branches win over local ones;
// in a working repository local branches win.
func SelectRefs(h *Handle, remote string, branches, tags []string) ([]Ref, error) {
	var out []Ref
	err := h.with(func(repo *git.Repository) error {
		var err error
		out, err = selectRefs(repo, h.Bare, remote, branches, tags)
		return err
	})
	return out, err
}

func selectRefs(repo *git.Repository, bare bool, remote string, branchPatterns, tagPatterns []string) ([]Ref, error) {
	refs := newRefSet()

	if len(tagPatterns) > 0 {
		m, err := compilePatterns(tagPatterns)
		if err != nil {
			return nil, err
		}
		tagIter, err := repo.Tags()
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		err = tagIter.ForEach(func(ref *plumbing.Reference) error {
			name := ref.Name().Short()
			if m.Match(name) {
				refs.set("tags/"+name, Ref{Name: name, QualifiedName: ref.Name().String(), Type: content.RefTypeTag, Hash: ref.Hash()})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(branchPatterns) == 0 {
		return refs.list(), nil
	}

	var currentBranch string
	patterns := make([]string, 0, len(branchPatterns))
	wantsHead := false
	for _, p := range branchPatterns {
		if p == "HEAD" || p == "." {
			wantsHead = true
			continue
		}
		patterns = append(patterns, p)
	}
	if wantsHead {
		currentBranch = currentBranchName(repo, bare, remote)
		switch {
		case currentBranch != "":
			patterns = append(patterns, escapePattern(currentBranch))
		case !bare:
			head, err := repo.Head()
			if err != nil {
				return nil, fmt.Errorf("resolve HEAD: %w", err)
			}
			refs.set("HEAD", Ref{
				Name:          "HEAD",
				QualifiedName: plumbing.HEAD.String(),
				Type:          content.RefTypeBranch,
				IsHead:        true,
				Hash:          head.Hash(),
			})
			if len(patterns) == 0 {
				return refs.list(), nil
			}
		}
	}
	if len(patterns) == 0 {
		return refs.list(), nil
	}

	m, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	iter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	var locals []*plumbing.Reference
	remotePrefix := "refs/remotes/" + remote + "/"
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		full := ref.Name().String()
		switch {
		case ref.Name().IsBranch():
			locals = append(locals, ref)
		case remote != "" && strings.HasPrefix(full, remotePrefix):
			name := strings.TrimPrefix(full, remotePrefix)
			if name == "HEAD" || !m.Match(name) {
				return nil
			}
			refs.set(name, Ref{Name: name, QualifiedName: full, Type: content.RefTypeBranch, Remote: remote, Hash: ref.Hash()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ref := range locals {
		name := ref.Name().Short()
		if !m.Match(name) {
			continue
		}
		if bare && refs.has(name) {
			continue
		}
		refs.set(name, Ref{
			Name:          name,
			QualifiedName: ref.Name().String(),
			Type:          content.RefTypeBranch,
			IsHead:        !bare && name == currentBranch,
			Hash:          ref.Hash(),
		})
	}
	return refs.list(), nil
}

// currentBranchName returns the short name of the checked-out branch, or ""
// when HEAD is detached.
func currentBranchName(repo *git.Repository, bare bool, remote string) string {
	if bare && remote != "" {
		remoteHead := plumbing.ReferenceName("refs/remotes/" + remote + "/HEAD")
		if ref, err := repo.Reference(remoteHead, false); err == nil && ref.Type() == plumbing.SymbolicReference {
			return strings.TrimPrefix(ref.Target().String(), "refs/remotes/"+remote+"/")
		}
	}
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return ""
	}
	return ref.Target().Short()
}

// refSet keeps refs keyed by name in first-insertion order.
type refSet struct {
	order []string
	byKey map[string]Ref
}

func newRefSet() *refSet { return &refSet{byKey: map[string]Ref{}} }

func (s *refSet) has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

func (s *refSet) set(key string, r Ref) {
	if !s.has(key) {
		s.order = append(s.order, key)
	}
	s.byKey[key] = r
}

func (s *refSet) list() []Ref {
	out := make([]Ref, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// Matcher matches ref names against an ordered pattern list. A pattern
// prefixed with "!" removes names matched by earlier patterns.
type Matcher struct {
	rules []matchRule
}

type matchRule struct {
	negate bool
	glob   glob.Glob
}

// Match reports whether name is selected.
func (m *Matcher) Match(name string) bool {
	matched := len(m.rules) > 0 && m.rules[0].negate
	for _, r := range m.rules {
		if r.negate {
			if matched && r.glob.Match(name) {
				matched = false
			}
			continue
		}
		if !matched && r.glob.Match(name) {
			matched = true
		}
	}
	return matched
}

// CompilePatterns compiles ref patterns. Globs follow gobwas/glob syntax with
// "/" as separator; numeric ranges such as {0..9} are expanded first.
func CompilePatterns(patterns []string) (*Matcher, error) {
	return compilePatterns(patterns)
}

func compilePatterns(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		negate := strings.HasPrefix(p, "!")
		if negate {
			p = p[1:]
		}
		g, err := glob.Compile(expandRanges(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ref pattern %q: %w", p, err)
		}
		m.rules = append(m.rules, matchRule{negate: negate, glob: g})
	}
	return m, nil
}

var rangeRx = regexp.MustCompile(`\{(-?\d+)\.\.(-?\d+)\}`)

// expandRanges rewrites {n..m} as the alternation {n,n+1,...,m}.
func expandRanges(p string) string {
	return rangeRx.ReplaceAllStringFunc(p, func(s string) string {
		sub := rangeRx.FindStringSubmatch(s)
		from, err1 := strconv.Atoi(sub[1])
		to, err2 := strconv.Atoi(sub[2])
		if err1 != nil || err2 != nil {
			return s
		}
		step := 1
		if from > to {
			step = -1
		}
		items := make([]string, 0, (to-from)*step+1)
		for i := from; ; i += step {
			items = append(items, strconv.Itoa(i))
			if i == to {
				break
			}
		}
		return "{" + strings.Join(items, ",") + "}"
	})
}

// escapePattern quotes glob metacharacters so a branch name matches literally.
func escapePattern(name string) string {
	return glob.QuoteMeta(name)
}
