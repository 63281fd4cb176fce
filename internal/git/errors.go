package git

import (
	stderrors "errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/doccatalog/internal/auth"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// AccessErrorKind sub-classifies repository access failures.
type AccessErrorKind string

const (
	AccessNotFound            AccessErrorKind = "not_found"
	AccessAuthFailed          AccessErrorKind = "auth_failed"
	AccessSSHAgentUnavailable AccessErrorKind = "ssh_agent_unavailable"
)

// RepositoryAccessError reports that a remote content repository could not
// be cloned or fetched.
type RepositoryAccessError struct {
	Kind AccessErrorKind
	Op   string // clone|fetch
	URL  string // credential-free
	// CredentialsSupplied is set when the server rejected offered credentials.
	CredentialsSupplied bool
	Err                 error
}

func (e *RepositoryAccessError) Error() string {
	var msg string
	switch e.Kind {
	case AccessAuthFailed:
		if e.CredentialsSupplied {
			msg = "content repository not found or credentials were rejected"
		} else {
			msg = "content repository not found or requires credentials"
		}
	case AccessSSHAgentUnavailable:
		msg = "SSH agent must be running to access content repository via SSH"
	default:
		msg = "content repository not found"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (url: %s): %v", msg, e.URL, e.Err)
	}
	return fmt.Sprintf("%s (url: %s)", msg, e.URL)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

func (e *RepositoryAccessError) Category() errors.ErrorCategory {
	switch e.Kind {
	case AccessAuthFailed, AccessSSHAgentUnavailable:
		return errors.CategoryAuth
	default:
		return errors.CategoryNotFound
	}
}

// NotAGitRepositoryError reports a local source path that cannot be opened
// as a git repository.
type NotAGitRepositoryError struct {
	Path string
	Err  error
}

func (e *NotAGitRepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("local content source must be a git repository: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("local content source must be a git repository: %s", e.Path)
}

func (e *NotAGitRepositoryError) Unwrap() error { return e.Err }

func (e *NotAGitRepositoryError) Category() errors.ErrorCategory { return errors.CategoryGit }

// StartPathError reports a start path that is missing or not a directory in
// the selected ref.
type StartPathError struct {
	StartPath string
	Ref       string
	URL       string
	NotDir    bool
}

func (e *StartPathError) Error() string {
	problem := "does not exist"
	if e.NotDir {
		problem = "is not a directory"
	}
	return fmt.Sprintf("the start path '%s' %s (url: %s | ref: %s)", e.StartPath, problem, e.URL, e.Ref)
}

func (e *StartPathError) Category() errors.ErrorCategory { return errors.CategoryContent }

// classifyAccessError maps a transport failure to a RepositoryAccessError
// when it is permanent. Transient failures are returned wrapped so the
// retry loop can try again.
func classifyAccessError(op, url string, supplied bool, err error) error {
	if err == nil {
		return nil
	}
	var accessErr *RepositoryAccessError
	if stderrors.As(err, &accessErr) {
		return err
	}
	newErr := func(kind AccessErrorKind) error {
		return &RepositoryAccessError{Kind: kind, Op: op, URL: url, CredentialsSupplied: supplied, Err: err}
	}

	switch {
	case stderrors.Is(err, auth.ErrSSHAgentUnavailable):
		return newErr(AccessSSHAgentUnavailable)
	case stderrors.Is(err, transport.ErrAuthenticationRequired),
		stderrors.Is(err, transport.ErrAuthorizationFailed),
		stderrors.Is(err, transport.ErrInvalidAuthMethod):
		return newErr(AccessAuthFailed)
	case stderrors.Is(err, transport.ErrRepositoryNotFound),
		stderrors.Is(err, transport.ErrEmptyRemoteRepository):
		return newErr(AccessNotFound)
	}

	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "ssh_auth_sock") || strings.Contains(l, "ssh agent"):
		return newErr(AccessSSHAgentUnavailable)
	case strings.Contains(l, "unable to authenticate") || strings.Contains(l, "authentication") ||
		strings.Contains(l, "permission denied") || strings.Contains(l, "invalid username or password"):
		return newErr(AccessAuthFailed)
	case strings.Contains(l, "not found") || strings.Contains(l, "does not exist") ||
		strings.Contains(l, "does not appear to be a git repository") || strings.Contains(l, "unsupported protocol") ||
		strings.Contains(l, "no such host"):
		return newErr(AccessNotFound)
	}

	var nerr net.Error
	if stderrors.As(err, &nerr) && !nerr.Timeout() {
		return newErr(AccessNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, url, err)
}

// isPermanent reports whether err should stop the retry loop.
func isPermanent(err error) bool {
	var accessErr *RepositoryAccessError
	return stderrors.As(err, &accessErr)
}

// finalizeAccessError converts an error left over after retries into the
// generic not-found kind.
func finalizeAccessError(op, url string, supplied bool, err error) error {
	if err == nil || isPermanent(err) {
		return err
	}
	return &RepositoryAccessError{Kind: AccessNotFound, Op: op, URL: url, CredentialsSupplied: supplied, Err: err}
}
