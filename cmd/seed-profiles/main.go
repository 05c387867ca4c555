package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/Kartik-0-8/buildathon/internal/seedprofiles"
)

// Default configuration constants.
const (
	defaultStudents      = 1000
	defaultProfessionals = 50
	defaultTopN          = 10
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		students      = flag.Int("students", defaultStudents, "Number of student profiles to generate")
		professionals = flag.Int("professionals", defaultProfessionals, "Number of professional profiles to generate")
		topN          = flag.Int("top", defaultTopN, "Number of matches to request per query")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile    = flag.String("output", "", "Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)")
		logFile       = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedprofiles.ShowHelp()
		return
	}

	if err := seedprofiles.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedprofiles.Config{
		BaseURL:          *baseURL,
		NumStudents:      *students,
		NumProfessionals: *professionals,
		TopN:             *topN,
		Workers:          *workers,
		Timeout:          *timeout,
		OutputFile:       *outputFile,
		LogFile:          *logFile,
		Verbose:          *verbose,
	}

	if err := seedprofiles.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding run failed: " + err.Error() + "\n")
		return
	}
}
