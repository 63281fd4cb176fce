package git

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"

	"git.home.luguber.info/inful/doccatalog/internal/auth"
	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
	"git.home.luguber.info/inful/doccatalog/internal/logfields"
	"git.home.luguber.info/inful/doccatalog/internal/metrics"
	"git.home.luguber.info/inful/doccatalog/internal/retry"
)

// CacheRemoteName is the remote name used inside cache mirrors.
const CacheRemoteName = "origin"

// Handle is an open content repository.
type Handle struct {
	Repo *git.Repository
	// URL is the source URL without credentials.
	URL string
	// Dir is the repository directory (the git dir for bare repositories).
	Dir string
	// Remote is set for repositories mirrored into the cache.
	Remote bool
	// Bare is set when the repository has no working tree.
	Bare bool

	mu     sync.Mutex
	closed bool
}

// Close releases the repository storage. It is safe to call more than once.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if c, ok := h.Repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// with runs fn while holding the handle lock.
func (h *Handle) with(fn func(repo *git.Repository) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.Repo)
}

// Source identifies a repository to acquire.
type Source struct {
	URL  string
	Auth *config.AuthConfig
}

// Options configure a Resolver.
type Options struct {
	// CacheDir holds the content/ folder of bare mirrors.
	CacheDir string
	// Fetch updates existing mirrors from their remotes.
	Fetch bool
	// BaseDir resolves relative local source paths.
	BaseDir string
	Retry   retry.Policy
	Auth    *auth.Manager
	// Recorder receives acquisition metrics; NoopRecorder when nil.
	Recorder metrics.Recorder
}

// Resolver acquires repository handles.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver. A zero Retry policy disables retries.
func NewResolver(opts Options) *Resolver {
	if opts.Auth == nil {
		opts.Auth = auth.DefaultManager
	}
	opts.Recorder = metrics.Or(opts.Recorder)
	return &Resolver{opts: opts}
}

// FromConfig builds resolver options from the playbook.
func FromConfig(cfg *config.Config) Options {
	return Options{
		CacheDir: cfg.Runtime.CacheDir,
		Fetch:    cfg.Runtime.Fetch,
		BaseDir:  cfg.Dir,
		Retry:    retry.FromConfig(cfg.Runtime.Retry),
	}
}

// ContentCacheDir is the directory remote mirrors are cloned into.
func (r *Resolver) ContentCacheDir() string {
	return filepath.Join(r.opts.CacheDir, "content")
}

// Open returns a handle for src, cloning or fetching remote sources as
// needed. The caller must Close the handle.
func (r *Resolver) Open(ctx context.Context, src Source) (*Handle, error) {
	start := time.Now()
	if IsRemoteURL(src.URL) {
		h, mode, err := r.openRemote(ctx, src)
		if err != nil {
			mode = metrics.AcquireFailed
		}
		r.opts.Recorder.ObserveAcquireDuration(time.Since(start), mode)
		return h, err
	}
	h, err := r.openLocal(src.URL)
	mode := metrics.AcquireOpened
	if err != nil {
		mode = metrics.AcquireFailed
	}
	r.opts.Recorder.ObserveAcquireDuration(time.Since(start), mode)
	return h, err
}

func (r *Resolver) openLocal(rawPath string) (*Handle, error) {
	dir := config.ExpandHome(rawPath)
	if !filepath.IsAbs(dir) {
		base := r.opts.BaseDir
		if base == "" {
			base, _ = os.Getwd()
		}
		dir = filepath.Join(base, dir)
	}
	dir = filepath.Clean(dir)

	fi, err := os.Stat(dir)
	if err != nil {
		return nil, &NotAGitRepositoryError{Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return nil, &NotAGitRepositoryError{Path: dir}
	}

	bare := true
	if _, err := os.Stat(filepath.Join(dir, git.GitDirName)); err == nil {
		bare = false
	}
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, &NotAGitRepositoryError{Path: dir, Err: err}
	}
	slog.Debug("Opened local content repository", logfields.Path(dir), slog.Bool("bare", bare))
	return &Handle{Repo: repo, URL: dir, Dir: dir, Bare: bare}, nil
}

func (r *Resolver) openRemote(ctx context.Context, src Source) (*Handle, metrics.AcquireMode, error) {
	resolved, err := r.opts.Auth.ForSource(src.Auth, src.URL)
	if err != nil {
		if stderrors.Is(err, auth.ErrSSHAgentUnavailable) {
			return nil, metrics.AcquireFailed, classifyAccessError("clone", resolved.URL, false, err)
		}
		return nil, metrics.AcquireFailed, err
	}
	url := resolved.URL
	dir := filepath.Join(r.ContentCacheDir(), CacheFolderName(src.URL))
	logger := slog.With(logfields.URL(url), logfields.Path(dir))

	if _, statErr := os.Stat(dir); statErr == nil {
		repo, openErr := git.PlainOpen(dir)
		if openErr == nil {
			h := &Handle{Repo: repo, URL: url, Dir: dir, Remote: true, Bare: true}
			if !r.opts.Fetch {
				logger.Debug("Using cached content repository")
				return h, metrics.AcquireCached, nil
			}
			if err := r.fetch(ctx, h, resolved); err != nil {
				_ = h.Close()
				return nil, metrics.AcquireFailed, err
			}
			logger.Info("Fetched content repository")
			return h, metrics.AcquireFetched, nil
		}
		logger.Warn("Cached content repository is corrupt, cloning again", logfields.Error(openErr))
		if err := os.RemoveAll(dir); err != nil {
			return nil, metrics.AcquireFailed, errors.FileSystemError("failed to remove corrupt cache").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}

	if err := os.MkdirAll(r.ContentCacheDir(), 0o750); err != nil {
		return nil, metrics.AcquireFailed, errors.FileSystemError("failed to create cache directory").
			WithCause(err).
			WithContext("path", r.ContentCacheDir()).
			Build()
	}
	repo, err := r.clone(ctx, dir, resolved)
	if err != nil {
		return nil, metrics.AcquireFailed, err
	}
	logger.Info("Cloned content repository")
	return &Handle{Repo: repo, URL: url, Dir: dir, Remote: true, Bare: true}, metrics.AcquireCloned, nil
}

// clone creates a bare mirror. The credential-free URL is stored in the
// mirror's config; credentials travel only through the auth method.
func (r *Resolver) clone(ctx context.Context, dir string, resolved auth.Resolved) (*git.Repository, error) {
	var repo *git.Repository
	err := r.opts.Retry.Do(ctx, isPermanent, r.onRetry("clone", resolved.URL), func() error {
		var cloneErr error
		repo, cloneErr = git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{
			URL:        resolved.URL,
			Auth:       resolved.Auth,
			RemoteName: CacheRemoteName,
			Tags:       git.AllTags,
		})
		if cloneErr != nil {
			_ = os.RemoveAll(dir)
			return classifyAccessError("clone", resolved.URL, resolved.Supplied, cloneErr)
		}
		return nil
	})
	if err != nil {
		return nil, finalizeAccessError("clone", resolved.URL, resolved.Supplied, err)
	}
	return repo, nil
}

func (r *Resolver) fetch(ctx context.Context, h *Handle, resolved auth.Resolved) error {
	err := r.opts.Retry.Do(ctx, isPermanent, r.onRetry("fetch", h.URL), func() error {
		return h.with(func(repo *git.Repository) error {
			fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
				RemoteName: CacheRemoteName,
				Auth:       resolved.Auth,
				Prune:      true,
				Force:      true,
				Tags:       git.AllTags,
				RefSpecs: []gitconfig.RefSpec{
					gitconfig.RefSpec("+refs/heads/*:refs/remotes/" + CacheRemoteName + "/*"),
					"+refs/tags/*:refs/tags/*",
				},
			})
			if fetchErr == nil || stderrors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
				return nil
			}
			return classifyAccessError("fetch", h.URL, resolved.Supplied, fetchErr)
		})
	})
	return finalizeAccessError("fetch", h.URL, resolved.Supplied, err)
}

func (r *Resolver) onRetry(op, url string) func(int, error) {
	return func(attempt int, err error) {
		r.opts.Recorder.IncAcquireRetry()
		slog.Warn("Retrying git operation",
			slog.String("operation", op),
			logfields.URL(url),
			slog.Int("attempt", attempt),
			logfields.Error(err))
	}
}
