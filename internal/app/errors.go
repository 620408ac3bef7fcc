package app

import (
	"context"
	"errors"
	"fmt"

	"reddit-digest/internal/client"
	"reddit-digest/internal/models"
	"reddit-digest/internal/parser"
	"reddit-digest/internal/prompt"
	"reddit-digest/pkg/utils"
)

type ErrorKind string

const (
	KindInput             ErrorKind = "input"
	KindTransport         ErrorKind = "transport"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindMalformedData     ErrorKind = "malformed_data"
	KindSummarize         ErrorKind = "summarize"
	KindCancelled         ErrorKind = "cancelled"
)

// RunError is the one failure type a run can end with. Every kind is fatal.
type RunError struct {
	Kind ErrorKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Classify wraps err in a RunError, picking the kind from the sentinel it
// carries. fallback is used when no sentinel matches.
func Classify(err error, fallback ErrorKind) *RunError {
	if err == nil {
		return nil
	}

	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}

	kind := fallback
	switch {
	case errors.Is(err, context.Canceled):
		kind = KindCancelled
	case errors.Is(err, client.ErrTransport):
		kind = KindTransport
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindCancelled
	case errors.Is(err, parser.ErrMalformedResponse):
		kind = KindMalformedResponse
	case errors.Is(err, utils.ErrInvalidNumeral):
		kind = KindMalformedData
	case errors.Is(err, models.ErrInvalidQuery), errors.Is(err, prompt.ErrNoInput):
		kind = KindInput
	}

	return &RunError{Kind: kind, Err: err}
}
