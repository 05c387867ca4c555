package seedprofiles

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Kartik-0-8/buildathon/pkg/logger"
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
		logFile = "seed_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the profile seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`Buildathon Profile Seeder
=========================

A concurrent tool for seeding the matchmaking service with generated
profiles and verifying the match endpoints.

Usage:
  go run cmd/seed-profiles/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -students int
        Number of student profiles to generate (default 1000)
  -professionals int
        Number of professional profiles to generate (default 50)
  -top int
        Number of matches to request per query (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-profiles/main.go

  # Seed a larger pool against a custom address
  go run cmd/seed-profiles/main.go -students 10000 -professionals 200 -url http://localhost:8080

  # Verbose run with a custom log file
  go run cmd/seed-profiles/main.go -verbose -log my_run.log
`)
}
