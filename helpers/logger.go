package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger on w with ts and caller fields, filtered at lvl
// (debug|info|warn|error, empty means info).
func NewLogger(w io.Writer, lvl string) (log.Logger, error) {
	var filter level.Option
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		filter = level.AllowDebug()
	case "", "info":
		filter = level.AllowInfo()
	case "warn":
		filter = level.AllowWarn()
	case "error":
		filter = level.AllowError()
	default:
		return nil, fmt.Errorf("log level must be debug|info|warn|error, got %q", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return level.NewFilter(logger, filter), nil
}
