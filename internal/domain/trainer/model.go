package trainer

import (
	"errors"
	"time"
)

// MaxSpecialtyLength bounds the specialty field.
const MaxSpecialtyLength = 60

// Specialty options offered by the trainer registration form.
const (
	SpecialtyFitness     = "Fitness"
	SpecialtyYoga        = "Yoga"
	SpecialtyPilates     = "Pilates"
	SpecialtyCrossFit    = "CrossFit"
	SpecialtyKickboxing  = "Kickboxing"
	SpecialtySwimming    = "Swimming"
	SpecialtyBodybuilder = "Bodybuilding"
)

// Specialties contains the selectable specialty options.
var Specialties = []string{
	SpecialtyFitness,
	SpecialtyYoga,
	SpecialtyPilates,
	SpecialtyCrossFit,
	SpecialtyKickboxing,
	SpecialtySwimming,
	SpecialtyBodybuilder,
}

// Domain errors
var (
	ErrEmptyAccountID     = errors.New("trainer profile must reference an account")
	ErrEmptySpecialty     = errors.New("specialty cannot be empty")
	ErrSpecialtyTooLong   = errors.New("specialty cannot exceed 60 characters")
	ErrNegativeExperience = errors.New("experience years cannot be negative")
	ErrProfileExists      = errors.New("account already has a trainer profile")
)

// Profile is the one-to-one trainer record for an account holding the
// trainer role. An account whose trainer flag is set but has no profile is
// a detectable inconsistency, not a crash.
type Profile struct {
	ID              string
	AccountID       string
	ExperienceYears int
	Specialty       string
	CreatedAt       time.Time
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if p.AccountID == "" {
		return ErrEmptyAccountID
	}
	if p.ExperienceYears < 0 {
		return ErrNegativeExperience
	}
	if p.Specialty == "" {
		return ErrEmptySpecialty
	}
	if len(p.Specialty) > MaxSpecialtyLength {
		return ErrSpecialtyTooLong
	}
	return nil
}

// IsKnownSpecialty reports whether s is one of the offered options.
// Free-text specialties are still accepted by Validate; this only drives
// the form's option list.
func IsKnownSpecialty(s string) bool {
	for _, opt := range Specialties {
		if opt == s {
			return true
		}
	}
	return false
}
