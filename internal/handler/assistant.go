package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
	"wedding-planner/internal/whatsapp"
)

// StillThinking is sent when a message arrives while a reply is pending
const StillThinking = "Still thinking about your last message, darling. One moment!"

// AssistantRelay forwards the owner's WhatsApp messages to the planner
// assistant and texts back its reply
type AssistantRelay struct {
	session *advice.Session
	sender  Sender
	log     zerolog.Logger
}

func NewAssistantRelay(session *advice.Session, sender Sender, log zerolog.Logger) *AssistantRelay {
	return &AssistantRelay{
		session: session,
		sender:  sender,
		log:     log.With().Str("component", "relay").Logger(),
	}
}

// HandleMessage submits the text and returns once the user turn is recorded.
// The reply is sent when it arrives. Input pending in the terminal is left alone.
func (r *AssistantRelay) HandleMessage(ctx context.Context, msg whatsapp.Incoming) error {
	err := r.session.SubmitAsync(ctx, msg.Text, "", func(reply models.ChatMessage) {
		if err := r.sender.SendMessage(ctx, msg.Phone, reply.Text); err != nil {
			r.log.Error().Err(err).Msg("Failed to relay assistant reply")
		}
	})

	switch {
	case errors.Is(err, advice.ErrBusy):
		return r.sender.SendMessage(ctx, msg.Phone, StillThinking)
	case errors.Is(err, advice.ErrNothingToSend):
		return nil
	default:
		return err
	}
}

// Route sends messages from the owner to the relay and everything else to
// the RSVP handler. A nil relay or empty owner disables relaying.
func Route(ownerPhone string, relay *AssistantRelay, rsvp *RSVPHandler) whatsapp.MessageHandler {
	return func(ctx context.Context, msg whatsapp.Incoming) error {
		if relay != nil && ownerPhone != "" && msg.Phone == ownerPhone {
			return relay.HandleMessage(ctx, msg)
		}
		return rsvp.HandleMessage(ctx, msg)
	}
}
