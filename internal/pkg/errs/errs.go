package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark attaches markErr as a sentinel: errors.Is(result, markErr) holds
// for the standard library as well as cockroachdb/errors, while the
// result keeps err's message and stack.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(&markedError{cause: err, mark: markErr}, markErr)
}

type markedError struct {
	cause error
	mark  error
}

func (e *markedError) Error() string { return e.cause.Error() }

// Unwrap exposes both the cause and the sentinel so stdlib chain
// traversal reaches the mark.
func (e *markedError) Unwrap() []error { return []error{e.cause, e.mark} }

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
