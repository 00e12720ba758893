// Package profiles keeps per-user tailoring profiles in process memory.
// Profiles are lost when the process exits.
package profiles

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/lexalab/internal/types"
)

// Store is a concurrency-safe in-memory profile table keyed by user id.
// Concurrent upserts for the same user are last-write-wins; each replaces the whole record.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*types.Profile
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*types.Profile),
		now:      time.Now,
	}
}

// Upsert creates or fully replaces the profile for req.UserID.
// Goals default to an empty list and tone to neutral.
func (s *Store) Upsert(req *types.OnboardingRequest) (*types.Profile, error) {
	if req == nil {
		return nil, &ErrValidation{Field: "userId", Message: "is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	profile := &types.Profile{
		UserID:          req.UserID,
		Industry:        req.Industry,
		Goals:           append([]string{}, req.Goals...),
		Tone:            req.Tone,
		ExperienceLevel: req.ExperienceLevel,
		UpdatedAt:       s.now().UTC(),
	}
	if profile.Tone == "" {
		profile.Tone = types.DefaultTone
	}

	s.mu.Lock()
	s.profiles[profile.UserID] = profile
	s.mu.Unlock()

	return profile.Clone(), nil
}

// Get returns a copy of the stored profile, or *ErrNotFound.
func (s *Store) Get(userID string) (*types.Profile, error) {
	s.mu.RLock()
	profile, ok := s.profiles[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, &ErrNotFound{UserID: userID}
	}
	return profile.Clone(), nil
}

// Len returns the number of stored profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// toValidationError reports the first failing field.
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Message: err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: fe.Field(), Message: "is required"}
	case "oneof":
		return &ErrValidation{
			Field:   fe.Field(),
			Message: "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", "),
		}
	default:
		return &ErrValidation{Field: fe.Field(), Message: "is invalid"}
	}
}
