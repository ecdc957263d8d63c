package lib

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v3"
)

func Logger(logFilePath string) *lecho.Logger {
	return lecho.New(
		loggerTarget(logFilePath),
		lecho.WithLevel(1), // info
		lecho.WithTimestamp(),
		lecho.WithField("service", "moneybook"),
	)
}

func loggerTarget(logFilePath string) io.Writer {
	if logFilePath == "" {
		return os.Stdout
	}
	path := logFilePath
	if filepath.Ext(path) == "" {
		path = logFilePath + time.Now().Format("-2006-01-02") + ".log"
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		panic(err)
	}
	return file
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
