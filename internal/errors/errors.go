// Package errors formats command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/omayami/internal/logger"
)

var exit = os.Exit

type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }

// WithHint attaches a follow-up suggestion that Format prints under the message.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}

// Format renders err as "Error: <message>", followed by its hint line if any.
func Format(err error) string {
	if err == nil {
		return ""
	}
	out := "Error: " + err.Error()
	var h *hinted
	if stderrors.As(err, &h) && h.hint != "" {
		out += "\n  " + h.hint
	}
	return out
}

func Formatf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	exit(1)
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
