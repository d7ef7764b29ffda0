package gym

import (
	"errors"
	"time"
)

// MaxNameLength bounds the gym name.
const MaxNameLength = 120

// Cities is the fixed enumeration of cities a gym can be registered in.
var Cities = []string{
	"Adana",
	"Ankara",
	"Antalya",
	"Bursa",
	"Eskisehir",
	"Gaziantep",
	"Istanbul",
	"Izmir",
	"Konya",
	"Trabzon",
}

// Domain errors
var (
	ErrEmptyName     = errors.New("gym name cannot be empty")
	ErrNameTooLong   = errors.New("gym name cannot exceed 120 characters")
	ErrInvalidCity   = errors.New("city must be one of the supported cities")
	ErrEmptyOwner    = errors.New("gym must have an owner account")
	ErrAlreadyJoined = errors.New("account has already joined this gym")
)

// Gym is owned by exactly one account, the manager that created it.
type Gym struct {
	ID             string
	Name           string
	City           string
	OwnerAccountID string
	CreatedAt      time.Time
}

// Membership is the many-to-many join between accounts and gyms.
// The (AccountID, GymID) pair is unique; an account joins a gym at most once.
type Membership struct {
	AccountID string
	GymID     string
	JoinedAt  time.Time
}

// Validate checks if the Gym has valid data.
// PRE: Gym struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Gym) Validate() error {
	if g.Name == "" {
		return ErrEmptyName
	}
	if len(g.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !IsValidCity(g.City) {
		return ErrInvalidCity
	}
	if g.OwnerAccountID == "" {
		return ErrEmptyOwner
	}
	return nil
}

// IsValidCity reports whether city is in the supported enumeration.
func IsValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}
