// Package types provides request and record types shared across the LexaLab API.
package types

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Tones accepted for a profile.
const (
	ToneFormal  = "formal"
	ToneNeutral = "neutral"
	ToneWarm    = "warm"
)

// DefaultTone is applied when an onboarding submission omits the tone.
const DefaultTone = ToneNeutral

var validate = newValidator()

// newValidator reports field names using their JSON names so errors match request bodies.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// OnboardingRequest is the body of POST /onboarding.
type OnboardingRequest struct {
	UserID          string   `json:"userId" validate:"required"`
	Industry        string   `json:"industry" validate:"required"`
	Goals           []string `json:"goals,omitempty"`
	Tone            string   `json:"tone,omitempty" validate:"omitempty,oneof=formal neutral warm"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" validate:"omitempty,oneof=junior mid senior"`
}

// Profile is a stored per-user tailoring record.
type Profile struct {
	UserID          string    `json:"userId"`
	Industry        string    `json:"industry"`
	Goals           []string  `json:"goals"`
	Tone            string    `json:"tone"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Validate validates the OnboardingRequest using the validator.
// The returned error is a validator.ValidationErrors when a field is invalid.
func (r *OnboardingRequest) Validate() error {
	return validate.Struct(r)
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Goals = append([]string{}, p.Goals...)
	return &c
}
