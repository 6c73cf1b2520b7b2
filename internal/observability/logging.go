package observability

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log rotation limits
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)

// SetupLogging sends the standard logger to console and, when path is set,
// to a rotating log file as well. The returned closer flushes the file.
func SetupLogging(path string, console io.Writer) (io.Closer, error) {
	if console == nil {
		console = os.Stderr
	}
	if path == "" {
		log.SetOutput(console)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	output := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    LogMaxSizeMB, // megabytes
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays, // days
		LocalTime:  true,
	}
	log.SetOutput(io.MultiWriter(console, output))
	return output, nil
}
