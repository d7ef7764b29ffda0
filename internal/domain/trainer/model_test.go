package trainer_test

import (
	"strings"
	"testing"

	"sportiva/internal/domain/trainer"
)

// TestProfile_Validate tests validation of trainer profiles.
func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile trainer.Profile
		wantErr error
	}{
		{
			name:    "valid profile",
			profile: trainer.Profile{ID: "tp1", AccountID: "a1", ExperienceYears: 3, Specialty: trainer.SpecialtyYoga},
			wantErr: nil,
		},
		{
			name:    "zero experience is allowed",
			profile: trainer.Profile{ID: "tp2", AccountID: "a1", ExperienceYears: 0, Specialty: trainer.SpecialtyFitness},
			wantErr: nil,
		},
		{
			name:    "missing account",
			profile: trainer.Profile{ID: "tp3", Specialty: trainer.SpecialtyYoga},
			wantErr: trainer.ErrEmptyAccountID,
		},
		{
			name:    "negative experience",
			profile: trainer.Profile{ID: "tp4", AccountID: "a1", ExperienceYears: -1, Specialty: trainer.SpecialtyYoga},
			wantErr: trainer.ErrNegativeExperience,
		},
		{
			name:    "empty specialty",
			profile: trainer.Profile{ID: "tp5", AccountID: "a1", ExperienceYears: 2},
			wantErr: trainer.ErrEmptySpecialty,
		},
		{
			name:    "specialty too long",
			profile: trainer.Profile{ID: "tp6", AccountID: "a1", Specialty: strings.Repeat("x", 61)},
			wantErr: trainer.ErrSpecialtyTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestIsKnownSpecialty checks the option list membership helper.
func TestIsKnownSpecialty(t *testing.T) {
	for _, s := range trainer.Specialties {
		if !trainer.IsKnownSpecialty(s) {
			t.Errorf("IsKnownSpecialty(%q) = false, want true", s)
		}
	}
	if trainer.IsKnownSpecialty("Underwater Basket Weaving") {
		t.Error("unknown specialty reported as known")
	}
}
