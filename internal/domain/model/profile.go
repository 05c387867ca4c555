// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"
	"time"
)

// Default field values applied when a profile omits them.
const (
	DefaultRating = 1000
	DefaultLevel  = 1
)

// Role tags the variant carried by a Profile envelope.
type Role string

// Known profile roles.
const (
	RoleStudent      Role = "student"
	RoleOrganizer    Role = "organizer"
	RoleProfessional Role = "professional"
)

// Validation errors for incoming profiles.
var (
	ErrMissingID      = errors.New("missing profile id")
	ErrUnknownRole    = errors.New("unknown role")
	ErrRoleMismatch   = errors.New("role section does not match role tag")
	ErrMissingSection = errors.New("missing role section")
)

// Profile is a tagged variant keyed by Role. Exactly one of the role
// sections is populated; the others stay nil.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`

	Student      *StudentProfile      `json:"student,omitempty"`
	Organizer    *OrganizerProfile    `json:"organizer,omitempty"`
	Professional *ProfessionalProfile `json:"professional,omitempty"`
}

// StudentProfile describes a student's declared skills and progression.
// Level, XP and Rating are snapshots owned by the profile layer; zero
// values mean "absent" and defaults apply at scoring time.
type StudentProfile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	XP        int      `json:"xp"`
	Level     int      `json:"level"`
	Rating    int      `json:"rating"`
	Badges    []string `json:"badges,omitempty"`
}

// OrganizerProfile describes an event organizer.
type OrganizerProfile struct {
	OrganizationName string   `json:"organization_name"`
	Location         string   `json:"location"`
	Themes           []string `json:"themes,omitempty"`
}

// ProfessionalProfile describes a recruiter. Hiring is nil when the
// professional has no active requirement; candidate matching then
// yields zero for every student.
type ProfessionalProfile struct {
	Company         string             `json:"company"`
	Position        string             `json:"position"`
	Skills          []string           `json:"skills,omitempty"`
	DomainExpertise []string           `json:"domain_expertise,omitempty"`
	Hiring          *HiringRequirement `json:"hiring,omitempty"`
}

// HiringRequirement is a professional's posted criteria used to rank
// candidate students. ExperienceNeeded is a level-equivalent threshold,
// not literal years.
type HiringRequirement struct {
	RequiredSkills   []string `json:"required_skills"`
	Domain           string   `json:"domain"`
	ExperienceNeeded int      `json:"experience_needed"`
	Duration         string   `json:"duration,omitempty"`
	HiringType       string   `json:"hiring_type,omitempty"`
}

// ProfileUpdate is the payload flowing through the ingestion queue.
type ProfileUpdate struct {
	UpdateID string // unique id for idempotency
	Profile  Profile
	TS       time.Time
}

// Validate checks the envelope invariants: non-empty id, a known role
// tag, and exactly the matching role section populated.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingID
	}
	switch p.Role {
	case RoleStudent:
		if p.Student == nil {
			return ErrMissingSection
		}
		if p.Organizer != nil || p.Professional != nil {
			return ErrRoleMismatch
		}
	case RoleOrganizer:
		if p.Organizer == nil {
			return ErrMissingSection
		}
		if p.Student != nil || p.Professional != nil {
			return ErrRoleMismatch
		}
	case RoleProfessional:
		if p.Professional == nil {
			return ErrMissingSection
		}
		if p.Student != nil || p.Organizer != nil {
			return ErrRoleMismatch
		}
	default:
		return ErrUnknownRole
	}
	return nil
}

// Normalize applies the documented defaults in place on the role
// section: level 1, rating 1000. Envelope identity is mirrored onto
// the student section so match results carry it.
func (p *Profile) Normalize() {
	if p.Student == nil {
		return
	}
	p.Student.ID = p.ID
	p.Student.Name = p.Name
	if p.Student.Level < 1 {
		p.Student.Level = DefaultLevel
	}
	if p.Student.Rating <= 0 {
		p.Student.Rating = DefaultRating
	}
	if p.Student.XP < 0 {
		p.Student.XP = 0
	}
}
