// logger/zaplogger_logpath.go

package logger

import (
	"os"
	"path/filepath"
	"time"
)

const logFilePrefix = "jamfctl_"

// EnsureLogFilePath checks the provided path and prepares it for use with the logger.
// A directory (existing or not) gets a timestamp-based filename appended; an existing file
// is used as is. The parent directory is created when missing.
func EnsureLogFilePath(logPath string) (string, error) {
	if logPath == "" {
		logPath = "."
	}

	info, err := os.Stat(logPath)
	switch {
	case os.IsNotExist(err) || (err == nil && info.IsDir()):
		logPath = filepath.Join(logPath, timestampedLogName(time.Now()))
	case err != nil:
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return "", err
	}

	return logPath, nil
}

func timestampedLogName(t time.Time) string {
	return logFilePrefix + t.Format("20060102_150405") + ".log"
}
