package probe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/cosmicpos/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends log output to both stdout and a file. An empty logFile
// gets a timestamped name.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "probe_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.InitWith(io.MultiWriter(os.Stdout, file), logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Cosmic Position Probe
=====================

Concurrent smoke and load tool for the cosmic position calculator.
Every response is checked: the total velocity equals the sum of the nine
frames, displacement equals the birth total times elapsed seconds, and the
AU and light-year figures agree with the kilometre magnitude.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of calculate requests to generate (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        File for failed requests as JSON (default: none)
  -log string
        Log file for probe output (default: probe_log_TIMESTAMP.log)
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  go run ./cmd/probe -requests 10000 -workers 16
  go run ./cmd/probe -url http://localhost:9081 -output failures.json
`)
}
