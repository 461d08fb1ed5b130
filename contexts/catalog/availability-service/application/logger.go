package application

import (
	"io"
	"log/slog"
)

// ResolveLogger keeps use cases nil-safe when a caller wires no logger.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
