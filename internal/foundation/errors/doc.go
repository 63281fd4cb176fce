// Package errors provides foundational, type-safe error primitives used across doccatalog.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, git, catalog, reference, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Retry behavior (never, backoff, user action)
//   - ClassifiedError: Structured error with category, severity, and context
//   - Categorized: Interface implemented by the typed pipeline errors so they
//     can be routed without being wrapped in a ClassifiedError
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for error presentation and exit codes
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryGit, "fetch failed").
//		WithContext("url", repoURL).
//		WithCause(originalErr).
//		Retryable().
//		Build()
package errors
