package testframes

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jatinorwot/sports-rank/pkg/logger"
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
		logFile = "test_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the test frames tool.
func ShowHelp() {
	os.Stdout.WriteString(`Frame Ranking Test Tool
=======================

A concurrent tool for exercising the frame ranking service end to end:
generates synthetic pose observations, submits them, and verifies the
resulting rankings and CSV export.

Usage:
  go run cmd/test-frames/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -frames int
        Number of frames to generate and submit (default 1000)
  -groups int
        Number of burst groups to spread frames over (default 10)
  -top int
        Number of top entries to fetch from the rankings (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated frames (default: generated_frames_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-frames/main.go

  # Test with custom parameters
  go run cmd/test-frames/main.go -frames 5000 -groups 25 -workers 16

  # Test a remote instance with verbose output
  go run cmd/test-frames/main.go -url http://localhost:8080 -verbose
`)
}
