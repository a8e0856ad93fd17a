package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
)

// Close closes closer and logs a failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure. A nil writer is ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write response", slog.Any("error", err), slog.Int("size", len(data)))
	}
}

// Drain discards the rest of r so the underlying connection can be reused
func Drain(ctx context.Context, r io.Reader) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		logging.From(ctx).Debug("failed to drain body", slog.Any("error", err))
	}
}
