package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	RFC3339ms = "2006-01-02T15:04:05.000Z07:00"
)

// SetLogRFC3339 installs the default logger: RFC3339 millisecond timestamps
// on wt, which must not be the data stream (stdout).
func SetLogRFC3339(wt io.Writer, level string) (logger *log.Logger, err error) {
	var lvl log.Level

	if lvl, err = log.ParseLevel(strings.ToLower(level)); err != nil {
		return nil, err
	}

	logger = log.NewWithOptions(wt, log.Options{
		ReportTimestamp: true,
		TimeFormat:      RFC3339ms,
		Level:           lvl,
		Prefix:          "faster",
	})
	log.SetDefault(logger)

	return logger, nil
}
