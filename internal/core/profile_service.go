package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
)

// ErrProfileNotFound is returned when a profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ErrSignInRequired is returned by operations that need an authenticated
// identity and received none.
var ErrSignInRequired = errors.New("sign in required")

// profileService implements the ProfileService interface.
type profileService struct {
	profiles db.ProfileRepository
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(profiles db.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileService{profiles: profiles, logger: logger}
}

// EnsureProfile implements the sign-in upsert. A new profile gets the full
// field set with role derived from the privileged flag; an existing one
// gets only its last-login timestamp refreshed. Both shapes are one write.
func (s *profileService) EnsureProfile(ctx context.Context, ident *identity.Identity) (*models.Profile, bool, error) {
	if ident == nil {
		return nil, false, ErrSignInRequired
	}

	profile, err := s.profiles.GetByUID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			role := "user"
			if ident.Admin {
				role = "admin"
			}
			newProfile := &models.Profile{
				UID:         ident.UID,
				Email:       ident.Email,
				DisplayName: ident.DisplayName,
				PhotoURL:    ident.PhotoURL,
				Role:        role,
			}
			if createErr := s.profiles.Create(ctx, newProfile); createErr != nil {
				return nil, false, fmt.Errorf("failed to create profile for '%s': %w", ident.UID, createErr)
			}
			s.logger.Info("profile created", zap.String("uid", ident.UID), zap.String("role", role))
			return newProfile, true, nil
		}
		return nil, false, fmt.Errorf("failed to look up profile '%s': %w", ident.UID, err)
	}

	// Existing profile: refresh lastLogin only. A failed touch is not a
	// failed sign-in.
	if touchErr := s.profiles.Touch(ctx, ident.UID); touchErr != nil {
		s.logger.Warn("failed to update last login", zap.String("uid", ident.UID), zap.Error(touchErr))
	}
	return profile, false, nil
}

// GetByUID retrieves a profile by Firebase Auth UID.
func (s *profileService) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: uid '%s'", ErrProfileNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get profile '%s': %w", uid, err)
	}
	return profile, nil
}
