package seedprofiles

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Kartik-0-8/buildathon/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding and verification flow.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting profile seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.NumStudents),
		logger.Int("professionals", config.NumProfessionals),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate profiles
	updates, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Submit profiles concurrently
	if err := submitProfiles(ctx, config, updates, stats); err != nil {
		return fmt.Errorf("profile submission failed: %w", err)
	}

	// Step 4: Wait for ingestion
	logger.Get().Info(ctx, "waiting for profiles to be ingested")
	time.Sleep(ProcessingWaitDelay)

	// Step 5: Retrieve teammate matches for every student
	teammates, err := retrieveTeammates(ctx, config, updates, stats)
	if err != nil {
		return fmt.Errorf("teammate retrieval failed: %w", err)
	}

	// Step 6: Retrieve candidate matches for every professional
	candidates, err := retrieveCandidates(ctx, config, updates, stats)
	if err != nil {
		return fmt.Errorf("candidate retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(teammates, candidates); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}
	displayTopMatches(teammates, config.Verbose)

	// Step 8: Save profiles to file
	if err := saveProfilesToFile(ctx, config, updates); err != nil {
		logger.Get().Warn(ctx, "failed to save profiles to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveProfilesToFile saves the generated profile updates to a JSON file.
func saveProfilesToFile(ctx context.Context, config *Config, updates []UpdateRequest) error {
	if len(updates) == 0 {
		return fmt.Errorf("no profiles to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_profiles_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(updates); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}

	logger.Get().Info(ctx, "profiles saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, profilesPerSecond float64

	if stats.ProfilesSubmitted > 0 {
		successRate = float64(stats.ProfilesSuccessful) / float64(stats.ProfilesSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		profilesPerSecond = float64(stats.ProfilesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("profilesSubmitted", stats.ProfilesSubmitted),
		logger.Int("profilesSuccessful", stats.ProfilesSuccessful),
		logger.Int("profilesDuplicate", stats.ProfilesDuplicate),
		logger.Int("profilesFailed", stats.ProfilesFailed),
		logger.Int("teammateQueries", stats.TeammateQueries),
		logger.Int("candidateQueries", stats.CandidateQueries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("profilesPerSecond", profilesPerSecond))
}
