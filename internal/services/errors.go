package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks fatal input problems: bad source directory, no
	// policy selected. The run aborts before touching any file.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a file that vanished between enumeration and use.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks per-file I/O failures (read, hash, move) that are
	// recovered locally without stopping the run.
	ErrTransient = errors.New("transient failure")
	// ErrLocked marks a source tree already claimed by another run.
	ErrLocked = errors.New("already locked")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err should abort the whole run rather than be
// recovered per file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrLocked)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
