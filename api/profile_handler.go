package api

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
}

func newProfileHandler(profileRepo *database.ProfileRepo) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
	}
}

// getProfile returns the developer profile, or null before the first update
// @Router /profile [get]
func (h profileHandler) getProfile() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		profile, err := h.profileRepo.Get(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "profile", err)
		}
		return profile, nil
	}
}

// updateProfile merges the supplied fields into the profile, creating it on
// first use
// @Router /profile [put]
func (h profileHandler) updateProfile() operation {
	return func(ctx context.Context, payload []byte, _ *int64) (any, error) {
		in, err := decodeInput[models.UpdateProfileInput](payload, nil, nil)
		if err != nil {
			return nil, err
		}

		profile, err := h.profileRepo.Upsert(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("update", "profile", err)
		}
		h.logger.Info().Int64("profileID", profile.ID).Msg("Profile updated")
		return profile, nil
	}
}
