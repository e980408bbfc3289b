package api

import (
	"context"

	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rpupo63/developer-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder          Responder
	logger             zerolog.Logger
	contactMessageRepo *database.ContactMessageRepo
	contactInfoRepo    *database.ContactInfoRepo
	notifier           services.Notifier
}

func newContactHandler(
	contactMessageRepo *database.ContactMessageRepo,
	contactInfoRepo *database.ContactInfoRepo,
	notifier services.Notifier,
) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:          NewResponder(logger),
		logger:             logger,
		contactMessageRepo: contactMessageRepo,
		contactInfoRepo:    contactInfoRepo,
		notifier:           notifier,
	}
}

// @Router /contact-messages [get]
func (h contactHandler) getContactMessages() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		messages, err := h.contactMessageRepo.FindAll(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "contact messages", err)
		}
		return messages, nil
	}
}

// createContactMessage stores the message and then notifies the owner.
// A failed notification is logged and does not fail the request.
// @Router /contact-message [post]
func (h contactHandler) createContactMessage() operation {
	return func(ctx context.Context, payload []byte, _ *int64) (any, error) {
		in, err := decodeInput[models.CreateContactMessageInput](payload, nil, nil)
		if err != nil {
			return nil, err
		}

		message, err := h.contactMessageRepo.Add(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("create", "contact message", err)
		}

		if h.notifier != nil {
			if err := h.notifier.NotifyContactMessage(ctx, *message); err != nil {
				h.logger.Warn().Err(err).Int64("messageID", message.ID).Msg("Contact notification failed")
			}
		}
		return message, nil
	}
}

// @Router /contact-message/{messageID}/read [put]
func (h contactHandler) markMessageRead() operation {
	return func(ctx context.Context, payload []byte, pathID *int64) (any, error) {
		in, err := decodeInput(payload, pathID, setIDInput)
		if err != nil {
			return nil, err
		}

		message, err := h.contactMessageRepo.MarkRead(ctx, in.ID)
		if err != nil {
			return nil, wrapDatabaseError("mark read", "contact message", err)
		}
		return message, nil
	}
}

// @Router /contact-info [get]
func (h contactHandler) getContactInfo() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		info, err := h.contactInfoRepo.Get(ctx)
		if err != nil {
			return nil, wrapDatabaseError("find", "contact info", err)
		}
		return info, nil
	}
}

// @Router /contact-info [put]
func (h contactHandler) updateContactInfo() operation {
	return func(ctx context.Context, payload []byte, _ *int64) (any, error) {
		in, err := decodeInput[models.UpdateContactInfoInput](payload, nil, nil)
		if err != nil {
			return nil, err
		}

		info, err := h.contactInfoRepo.Upsert(ctx, in)
		if err != nil {
			return nil, wrapDatabaseError("update", "contact info", err)
		}
		return info, nil
	}
}
