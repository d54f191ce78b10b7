package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out     io.Writer
	logFile *os.File
	mu      sync.Mutex
	enabled = true
	debug   = false
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

// Init opens trek.log inside dir, rotating it to trek.log.old once it grows past 5MB
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	logPath := filepath.Join(dir, "trek.log")

	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		os.Remove(oldPath)
		os.Rename(logPath, oldPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = file
	out = file
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	out = nil
}

// SetOutput redirects log lines to w (tests use a buffer)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetDebug toggles Debug lines
func SetDebug(on bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = on
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

func Error(format string, args ...any) {
	log("ERROR", format, args...)
}

func Warn(format string, args ...any) {
	log("WARN", format, args...)
}

func Info(format string, args ...any) {
	log("INFO", format, args...)
}

// Debug logs only when debug output is on
func Debug(format string, args ...any) {
	mu.Lock()
	on := debug
	mu.Unlock()
	if on {
		log("DEBUG", format, args...)
	}
}

func log(level string, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || out == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[%s] %s: %s\n", timestamp, level, message)
}
