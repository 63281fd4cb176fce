// Package testutils builds throwaway git repositories for tests.
package testutils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature is the author used for every test commit. The clock starts at a
// fixed instant so commit times are deterministic.
var Signature = object.Signature{
	Name:  "Doc Writer",
	Email: "docs@example.com",
	When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

// TestRepo wraps a non-bare repository created in a temporary directory.
type TestRepo struct {
	t        *testing.T
	Repo     *git.Repository
	Worktree *git.Worktree
	Dir      string
	commits  int
}

// SetupTestGitRepo initializes a temporary git repository for testing.
// Returns the repository, its worktree, and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()
	r := NewTestRepo(t)
	return r.Repo, r.Worktree, r.Dir
}

// NewTestRepo initializes an empty repository whose HEAD points at main.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()

	tempDir := t.TempDir()
	repo, err := git.PlainInitWithOptions(tempDir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	return &TestRepo{t: t, Repo: repo, Worktree: w, Dir: tempDir}
}

// WriteFiles writes files (slash-separated path to contents) into the worktree
// without committing them.
func (r *TestRepo) WriteFiles(files map[string]string) {
	r.t.Helper()
	for name, body := range files {
		full := filepath.Join(r.Dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			r.t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(body), 0o600); err != nil {
			r.t.Fatalf("write %s: %v", name, err)
		}
	}
}

// RemoveFiles deletes worktree files without committing.
func (r *TestRepo) RemoveFiles(names ...string) {
	r.t.Helper()
	for _, name := range names {
		if err := os.Remove(filepath.Join(r.Dir, filepath.FromSlash(name))); err != nil {
			r.t.Fatalf("remove %s: %v", name, err)
		}
	}
}

// Commit writes files, stages everything and commits on the current branch.
func (r *TestRepo) Commit(msg string, files map[string]string) plumbing.Hash {
	r.t.Helper()
	r.WriteFiles(files)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := r.Worktree.Add(name); err != nil {
			r.t.Fatalf("add %s: %v", name, err)
		}
	}

	sig := Signature
	sig.When = Signature.When.Add(time.Duration(r.commits) * time.Minute)
	r.commits++
	hash, err := r.Worktree.Commit(msg, &git.CommitOptions{Author: &sig, Committer: &sig, AllowEmptyCommits: true})
	if err != nil {
		r.t.Fatalf("commit: %v", err)
	}
	return hash
}

// Head returns the commit HEAD points at.
func (r *TestRepo) Head() plumbing.Hash {
	r.t.Helper()
	ref, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	return ref.Hash()
}

// Branch creates a branch at the current HEAD commit without switching to it.
func (r *TestRepo) Branch(name string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), r.Head())
	if err := r.Repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("create branch %s: %v", name, err)
	}
}

// Checkout switches the worktree to branch, creating it from HEAD when create is set.
func (r *TestRepo) Checkout(branch string, create bool) {
	r.t.Helper()
	if err := r.Worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
		Keep:   false,
	}); err != nil {
		r.t.Fatalf("checkout %s: %v", branch, err)
	}
}

// Detach points HEAD directly at the current commit.
func (r *TestRepo) Detach() {
	r.t.Helper()
	if err := r.Worktree.Checkout(&git.CheckoutOptions{Hash: r.Head()}); err != nil {
		r.t.Fatalf("detach: %v", err)
	}
}

// Tag creates a lightweight tag, or an annotated one when annotated is set.
func (r *TestRepo) Tag(name string, annotated bool) {
	r.t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		sig := Signature
		opts = &git.CreateTagOptions{Tagger: &sig, Message: "release " + name}
	}
	if _, err := r.Repo.CreateTag(name, r.Head(), opts); err != nil {
		r.t.Fatalf("tag %s: %v", name, err)
	}
}

// FileURL returns a file:// URL for the repository directory.
func (r *TestRepo) FileURL() string {
	return "file://" + filepath.ToSlash(r.Dir)
}

// SetRemote adds a remote named name pointing at url.
func (r *TestRepo) SetRemote(name, url string) {
	r.t.Helper()
	if _, err := r.Repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		r.t.Fatalf("create remote %s: %v", name, err)
	}
}

// CloneBare creates a bare clone of the repository in a new temporary directory.
func (r *TestRepo) CloneBare() string {
	r.t.Helper()
	dir := filepath.Join(r.t.TempDir(), "bare.git")
	if _, err := git.PlainClone(dir, true, &git.CloneOptions{URL: r.Dir, Tags: git.AllTags}); err != nil {
		r.t.Fatalf("bare clone: %v", err)
	}
	return dir
}
