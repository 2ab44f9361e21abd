package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the parent of every lookup failure returned by this package.
var ErrNotFound = errors.New("not found")

var (
	ErrArticleNotFound     = fmt.Errorf("article %w", ErrNotFound)
	ErrVersionNotFound     = fmt.Errorf("version %w", ErrNotFound)
	ErrNotFoundOrPublished = fmt.Errorf("draft article %w or already published", ErrNotFound)

	ErrNotPublished       = errors.New("article is not published")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidImage       = errors.New("invalid image")
)

// ValidationError carries every message produced by the content validator.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// PersistenceError wraps a failed store or blob operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
