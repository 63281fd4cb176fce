package git

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/doccatalog/internal/content"
)

// dotOrNoExtRx matches paths with a dot-prefixed segment or an
// extensionless final segment.
var dotOrNoExtRx = regexp.MustCompile(`(?:^|/)(?:\.|[^/.]+$)`)

// Ignored reports whether a repository path is skipped when reading files.
func Ignored(p string) bool {
	return dotOrNoExtRx.MatchString(p)
}

// ReadTree reads the blobs of ref's commit below startPath. Paths of the
// returned files are relative to startPath.
func ReadTree(h *Handle, ref Ref, startPath string) ([]*content.File, error) {
	startPath = cleanStartPath(startPath)
	var files []*content.File
	err := h.with(func(repo *git.Repository) error {
		commit, err := resolveCommit(repo, ref.Hash)
		if err != nil {
			return fmt.Errorf("resolve %s in %s: %w", ref.QualifiedName, h.URL, err)
		}
		root, err := commit.Tree()
		if err != nil {
			return fmt.Errorf("read tree of %s in %s: %w", ref.QualifiedName, h.URL, err)
		}
		tree := root
		if startPath != "" {
			tree, err = root.Tree(startPath)
			if err != nil {
				notDir := false
				if entry, findErr := root.FindEntry(startPath); findErr == nil && entry.Mode != filemode.Dir {
					notDir = true
				}
				return &StartPathError{StartPath: startPath, Ref: ref.Name, URL: h.URL, NotDir: notDir}
			}
		}
		mtime := commit.Committer.When
		return tree.Files().ForEach(func(f *object.File) error {
			if f.Mode == filemode.Symlink || Ignored(f.Name) {
				return nil
			}
			data, err := readBlob(f)
			if err != nil {
				return fmt.Errorf("read %s at %s: %w", f.Name, ref.Name, err)
			}
			mode, err := f.Mode.ToOSFileMode()
			if err != nil {
				mode = 0o644
			}
			files = append(files, &content.File{
				Path:     f.Name,
				Contents: data,
				Stat:     content.Stat{Mode: mode, Size: f.Size, ModTime: mtime},
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadWorktree reads the files of a non-bare repository's working directory
// below startPath, including uncommitted changes. It returns the files and
// the absolute working directory.
func ReadWorktree(h *Handle, startPath string) ([]*content.File, string, error) {
	startPath = cleanStartPath(startPath)
	var (
		files []*content.File
		root  string
	)
	err := h.with(func(repo *git.Repository) error {
		wt, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("open worktree of %s: %w", h.Dir, err)
		}
		fs := wt.Filesystem
		root = fs.Root()

		base := "."
		if startPath != "" {
			base = startPath
			fi, err := fs.Stat(startPath)
			if err != nil {
				return &StartPathError{StartPath: startPath, Ref: "HEAD", URL: h.URL}
			}
			if !fi.IsDir() {
				return &StartPathError{StartPath: startPath, Ref: "HEAD", URL: h.URL, NotDir: true}
			}
		}

		return util.Walk(fs, base, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel := relativeTo(base, p)
			if info.IsDir() {
				if rel != "" && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if info.Mode()&os.ModeSymlink != 0 || !info.Mode().IsRegular() || Ignored(rel) {
				return nil
			}
			data, err := readWorktreeFile(fs, p)
			if err != nil {
				return err
			}
			files = append(files, &content.File{
				Path:     rel,
				Contents: data,
				Stat:     content.Stat{Mode: info.Mode(), Size: info.Size(), ModTime: info.ModTime()},
			})
			return nil
		})
	})
	if err != nil {
		return nil, "", err
	}
	return files, root, nil
}

func resolveCommit(repo *git.Repository, hash plumbing.Hash) (*object.Commit, error) {
	if tag, err := repo.TagObject(hash); err == nil {
		return tag.Commit()
	} else if !stderrors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, err
	}
	return repo.CommitObject(hash)
}

func readBlob(f *object.File) ([]byte, error) {
	r, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

func readWorktreeFile(fs billy.Filesystem, p string) ([]byte, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func cleanStartPath(p string) string {
	p = path.Clean("/" + strings.Trim(p, "/"))
	return strings.TrimPrefix(p, "/")
}

func relativeTo(base, p string) string {
	p = filepath.ToSlash(p)
	if p == base || p == "." {
		return ""
	}
	if base == "." {
		return strings.TrimPrefix(p, "./")
	}
	rel := strings.TrimPrefix(p, base)
	return strings.TrimPrefix(rel, "/")
}
