package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

// Wrap and Wrapf return nil for a nil err so call sites can wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err with a sentinel without changing its message. A nil err yields the sentinel.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return cr.Mark(err, sentinel)
}

// Is understands both Unwrap chains and marks added with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// IsAny reports whether err matches at least one of the sentinels.
func IsAny(err error, sentinels ...error) bool {
	for _, s := range sentinels {
		if cr.Is(err, s) {
			return true
		}
	}
	return false
}

// ExtractStackLines renders the verbose form of err and keeps its first maxLines lines.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
