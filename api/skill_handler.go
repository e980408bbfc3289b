package api

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// @Router /skills [get]
func (h skillHandler) getSkills() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		skills, err := h.skillRepo.FindAll(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "skills", err)
		}
		return skills, nil
	}
}

// @Router /skill [post]
func (h skillHandler) createSkill() operation {
	return func(ctx context.Context, payload []byte, _ *int64) (any, error) {
		in, err := decodeInput[models.CreateSkillInput](payload, nil, nil)
		if err != nil {
			return nil, err
		}

		skill, err := h.skillRepo.Add(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("create", "skill", err)
		}
		return skill, nil
	}
}

// @Router /skill/{skillID} [put]
func (h skillHandler) updateSkill() operation {
	return func(ctx context.Context, payload []byte, pathID *int64) (any, error) {
		in, err := decodeInput(payload, pathID, func(in *models.UpdateSkillInput, id int64) { in.ID = id })
		if err != nil {
			return nil, err
		}

		skill, err := h.skillRepo.Update(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("update", "skill", err)
		}
		return skill, nil
	}
}

// deleteSkill succeeds whether or not the skill exists
// @Router /skill/{skillID} [delete]
func (h skillHandler) deleteSkill() operation {
	return func(ctx context.Context, payload []byte, pathID *int64) (any, error) {
		in, err := decodeInput(payload, pathID, setIDInput)
		if err != nil {
			return nil, err
		}

		if err := h.skillRepo.Delete(ctx, in.ID); err != nil {
			return nil, wrapDatabaseError("delete", "skill", err)
		}
		return successResponse{Success: true}, nil
	}
}

func setIDInput(in *models.IDInput, id int64) {
	in.ID = id
}
