package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logFileName = "skyfall.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging routes zerolog and the std logger to dir/skyfall.log when debug is set
// The terminal owns stdout, so without debug everything is discarded
// Returns the open file (nil when disabled), caller closes it
func setupLogging(dir string, debug bool, level string) (*os.File, zerolog.Logger) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	logPath := filepath.Join(dir, logFileName)
	rotateLog(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, zerolog.Nop()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	logger := zerolog.New(file).Level(lvl).With().Timestamp().Logger()
	logger.Info().Str("path", logPath).Msg("logging started")
	return file, logger
}

// rotateLog renames an oversized log to a timestamped sibling
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s.%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
