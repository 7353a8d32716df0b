package common

import (
	"fmt"
	"log/slog"

	"github.com/umbrellio/gbot/internal/apperrors"
)

// ReportFailure logs a failed run. Network failures are logged as structured
// entries, anything else as a raw error dump.
func ReportFailure(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	if netErr, ok := apperrors.AsNetwork(err); ok {
		logger.Error("network error",
			slog.Int("status", netErr.Status),
			slog.String("message", netErr.Message),
			slog.String("url", netErr.URL))
		return
	}
	logger.Error("unexpected error",
		slog.String("kind", string(apperrors.KindOf(err))),
		slog.String("error", fmt.Sprintf("%+v", err)))
}
