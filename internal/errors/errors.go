// internal/errors/errors.go
package errors

import "fmt"

// AuthenticationError is returned when no credential provider in the chain
// yields a usable GitHub token.
type AuthenticationError struct {
	Tried []string
}

func (e *AuthenticationError) Error() string {
	if len(e.Tried) == 0 {
		return "no usable GitHub token found"
	}
	return fmt.Sprintf("no usable GitHub token found (providers tried: %v)", e.Tried)
}

// RepositoryAccessError is returned when the token is usable but the target
// repository cannot be found or is not permitted. It carries the attempted
// 'owner/name' identifier.
type RepositoryAccessError struct {
	Repo string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("cannot access repository %q: %v", e.Repo, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

// EmptyResultError signals that a fetch succeeded but produced zero rows.
// It is a non-fatal "no data" signal, not a crash.
type EmptyResultError struct {
	Kind string // "commits" or "issues"
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no %s found", e.Kind)
}

// ErrInvalidRepoFormat is returned when a repository argument is not in
// 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}
