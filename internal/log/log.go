package log

import (
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var logger *slog.Logger
var loggerMutex sync.Mutex

// levelFromEnv reads PERIMETR_LOG_LEVEL ("debug", "info", "warn", "error")
// and defaults to info when unset or unrecognized.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("PERIMETR_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log returns a thread-safe singleton *slog.Logger configured for JSON
// output. The level is read once, from PERIMETR_LOG_LEVEL, on first call.
func Log() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger != nil {
		return logger
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	logger = slog.New(handler)
	return logger
}

// Fatal logs a message and then calls os.Exit(1).
func Fatal(msg string) {
	log.Fatal(msg)
}

// FatalF logs a formatted message and then calls os.Exit(1).
func FatalF(format string, args ...any) {
	log.Fatalf(format, args...)
}

// FatalLn logs a message with a trailing newline and then calls os.Exit(1).
func FatalLn(args ...any) {
	log.Fatalln(args...)
}
