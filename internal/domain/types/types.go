// Package types contains common types used across the application
package types

import "github.com/Kartik-0-8/buildathon/internal/domain/model"

// Match pairs a candidate student with the score computed against the
// viewer (a student looking for teammates, or a professional's hiring
// requirement).
type Match struct {
	Rank      int                  `json:"rank"`
	Candidate model.StudentProfile `json:"candidate"`
	Score     int                  `json:"score"`
}
