package log

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
)

const loggerName = "ffgram"

var l commonlog.Logger

// Init enables logging. verbosity is passed to commonlog; higher values log
// more. An empty outputPath logs to stderr.
func Init(verbosity int, outputPath string) error {
	var path *string
	if outputPath != "" {
		f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			return fmt.Errorf("failed to open a log file: %w", err)
		}
		err = f.Close()
		if err != nil {
			return err
		}
		path = &outputPath
	}

	// Messages are written as they are logged. A buffered backend only
	// flushes from exit hooks, which the CLI does not run.
	backend := simple.NewBackend()
	backend.Buffered = false
	commonlog.SetBackend(backend)
	commonlog.Configure(verbosity, path)

	l = commonlog.GetLogger(loggerName)

	return nil
}

func Close() error {
	l = nil
	return nil
}

// Log writes a debug message. It does nothing until Init is called.
func Log(format string, opts ...any) {
	if l == nil {
		return
	}
	l.Debugf(format, opts...)
}

func Info(format string, opts ...any) {
	if l == nil {
		return
	}
	l.Infof(format, opts...)
}

func Warn(format string, opts ...any) {
	if l == nil {
		return
	}
	l.Warningf(format, opts...)
}
