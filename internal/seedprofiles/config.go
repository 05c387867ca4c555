package seedprofiles

import (
	"time"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
)

// Config holds configuration for the profile seeding run.
type Config struct {
	BaseURL          string        // Base URL of the service
	NumStudents      int           // Number of student profiles to generate
	NumProfessionals int           // Number of professional profiles to generate
	TopN             int           // Number of matches to request per query
	Workers          int           // Number of concurrent workers
	Timeout          time.Duration // HTTP request timeout
	OutputFile       string        // Output file for generated profiles
	LogFile          string        // Log file for run output
	Verbose          bool          // Enable verbose logging
}

// UpdateRequest mirrors the wire schema for POST /profiles.
type UpdateRequest struct {
	UpdateID string        `json:"update_id"`
	Profile  model.Profile `json:"profile"`
	TS       string        `json:"ts"`
}

// MatchEntry mirrors the read shape of the match endpoints.
type MatchEntry struct {
	Rank      int                  `json:"rank"`
	Candidate model.StudentProfile `json:"candidate"`
	Score     int                  `json:"score"`
}

// AckResponse represents the response from profile submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seeding run statistics.
type Stats struct {
	ProfilesGenerated  int
	ProfilesSubmitted  int
	ProfilesSuccessful int
	ProfilesDuplicate  int
	ProfilesFailed     int
	TeammateQueries    int
	CandidateQueries   int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
