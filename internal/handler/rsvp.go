package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
	"wedding-planner/internal/whatsapp"
)

var ErrNoPhone = errors.New("guest has no phone number")

// Sender delivers a text message to a phone number
type Sender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// GuestBook is the part of the planner the RSVP flow works on
type GuestBook interface {
	Guest(id string) (models.Guest, error)
	FindGuestByPhone(phone string) (models.Guest, error)
	SetGuestStatus(id string, status models.GuestStatus) error
	SetGuestPhone(id, phone string) error
	WeddingDate() string
}

type RSVPHandler struct {
	sender Sender
	guests GuestBook
	config *Config
	log    zerolog.Logger
}

type Config struct {
	WeddingLocation string
	BrideName       string
	GroomName       string
	CountryCode     string
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(sender Sender, guests GuestBook, cfg *Config, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		sender: sender,
		guests: guests,
		config: cfg,
		log:    log.With().Str("component", "rsvp").Logger(),
	}
}

// HandleMessage turns a yes/no reply from a known guest into an RSVP.
// Messages from unknown numbers and unclear replies are ignored.
func (h *RSVPHandler) HandleMessage(ctx context.Context, msg whatsapp.Incoming) error {
	guest, err := h.guests.FindGuestByPhone(msg.Phone)
	if err != nil {
		return nil
	}

	status, ok := ParseReply(msg.Text)
	if !ok {
		h.log.Debug().Str("guest", guest.Name).Msg("Ignoring message that is not an RSVP")
		return nil
	}

	if err := h.guests.SetGuestStatus(guest.ID, status); err != nil {
		return fmt.Errorf("failed to update RSVP: %w", err)
	}
	h.log.Info().Str("guest", guest.Name).Str("status", string(status)).Msg("RSVP recorded")

	if err := h.sender.SendMessage(ctx, msg.Phone, h.confirmation(status)); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

// SendInvitation texts the invitation to a guest and marks them Invited
// unless they already answered.
func (h *RSVPHandler) SendInvitation(ctx context.Context, guestID string) error {
	guest, err := h.guests.Guest(guestID)
	if err != nil {
		return err
	}
	if guest.Phone == "" {
		return fmt.Errorf("%s: %w", guest.Name, ErrNoPhone)
	}

	phone := whatsapp.NormalizePhoneNumber(guest.Phone, h.config.CountryCode)
	if err := h.sender.SendMessage(ctx, phone, h.invitation(guest.Name)); err != nil {
		return fmt.Errorf("failed to send invitation: %w", err)
	}

	// store the normalized number so replies can be matched to the guest
	if phone != guest.Phone {
		if err := h.guests.SetGuestPhone(guest.ID, phone); err != nil {
			return fmt.Errorf("failed to update phone: %w", err)
		}
	}

	if guest.Status == models.GuestPending {
		if err := h.guests.SetGuestStatus(guest.ID, models.GuestInvited); err != nil {
			return fmt.Errorf("failed to mark invited: %w", err)
		}
	}
	return nil
}

func (h *RSVPHandler) invitation(name string) string {
	return fmt.Sprintf(
		"🎉 *Wedding Invitation*\n\n"+
			"Dear %s,\n\n"+
			"You are cordially invited to celebrate the wedding of\n\n"+
			"*%s* & *%s*\n\n"+
			"📅 Date: %s\n"+
			"📍 Location: %s\n\n"+
			"Reply with:\n✅ *YES* to accept\n❌ *NO* to decline",
		name, h.config.BrideName, h.config.GroomName, h.guests.WeddingDate(), h.config.WeddingLocation,
	)
}

func (h *RSVPHandler) confirmation(status models.GuestStatus) string {
	if status == models.GuestConfirmed {
		return fmt.Sprintf(
			"🎉 Wonderful! We're so excited to celebrate with you!\n\n"+
				"We've confirmed your attendance for the wedding of %s & %s on %s.\n\n"+
				"See you there! 💕",
			h.config.BrideName, h.config.GroomName, h.guests.WeddingDate(),
		)
	}
	return fmt.Sprintf(
		"Thank you for letting us know. We're sorry you won't be able to join us for the wedding of %s & %s.\n\n"+
			"We'll miss you! 💕",
		h.config.BrideName, h.config.GroomName,
	)
}

var (
	yesWords   = []string{"yes", "yep", "yeah", "sure", "accept", "accepting", "attending", "coming"}
	yesPhrases = []string{"will come", "will be there", "✅"}
	noWords    = []string{"no", "nope", "decline", "declining"}
	noPhrases  = []string{"not coming", "can't come", "cant come", "won't come", "can't make it", "cannot make it", "❌"}
)

// ParseReply reads an RSVP answer. Declines are checked first so that
// "not coming" is not taken for "coming".
func ParseReply(text string) (models.GuestStatus, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	switch {
	case containsAny(text, noPhrases...) || hasWord(words, noWords...):
		return models.GuestDeclined, true
	case containsAny(text, yesPhrases...) || hasWord(words, yesWords...):
		return models.GuestConfirmed, true
	default:
		return "", false
	}
}

// containsAny checks if the text contains any of the given keywords
func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func hasWord(words []string, keywords ...string) bool {
	for _, w := range words {
		for _, k := range keywords {
			if w == k {
				return true
			}
		}
	}
	return false
}
