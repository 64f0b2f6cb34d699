// Package jobs holds the scheduled CRM tasks. Each job talks to the API
// through an Executor, reads time from a clock and appends plain-text lines
// to its own log.
package jobs

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Executor runs one GraphQL operation and decodes its data into out.
type Executor interface {
	Execute(ctx context.Context, query string, vars map[string]any, out any) error
}

// Sink receives finished log lines.
type Sink interface {
	Append(lines ...string) error
}

// FileSink appends to a file, creating it when missing.
type FileSink struct {
	Path string
}

func (f FileSink) Append(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	fh, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, werr := fh.WriteString(strings.Join(lines, "\n") + "\n")
	cerr := fh.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

const (
	heartbeatLayout = "02/01/2006-15:04:05"
	stampLayout     = "2006-01-02 15:04:05"
)

func bracket(t time.Time) string {
	return "[" + t.UTC().Format(stampLayout) + "]"
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

func linef(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
