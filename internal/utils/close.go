package utils

import (
	"io"
	"log/slog"
)

// Close closes c and ignores any error. For best-effort cleanup in
// defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs any error.
func MustClose(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err)
	}
}
