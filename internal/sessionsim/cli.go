package sessionsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/aimsight/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "session_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the session simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Aimsight Session Simulator
==========================

Runs the full coaching pipeline over a scripted synthetic gameplay
session and reports the detected events, behavior patterns, skill tier,
and training plan.

Usage:
  go run cmd/sessionsim/main.go [options]

Options:
  -frames int
        Number of frames to simulate (default 600)
  -width int
        Frame width in pixels (default 640)
  -height int
        Frame height in pixels (default 360)
  -seed int
        Random seed for opponent placement (default 1)
  -output string
        Output file for emitted tips (default: session_tips_TIMESTAMP.json)
  -log string
        Log file for simulator output (default: session_log_TIMESTAMP.log)
  -verbose
        Log every emitted tip as it happens
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/sessionsim/main.go

  # A longer session at capture resolution
  go run cmd/sessionsim/main.go -frames 3000 -width 1920 -height 1080

  # Reproducible run with verbose tips
  go run cmd/sessionsim/main.go -seed 42 -verbose
`)
}
