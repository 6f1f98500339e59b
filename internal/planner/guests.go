package planner

import (
	"fmt"
	"strings"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

// GuestInput describes a guest to add
type GuestInput struct {
	Name    string `validate:"required"`
	PlusOne bool
	Dietary string
	Phone   string `validate:"omitempty,max=32"`
}

// GuestCounts summarises RSVP states
type GuestCounts struct {
	Total     int
	Confirmed int
	Pending   int
	Declined  int
	Invited   int
}

// Guests returns the guest list in the order guests were added
func (p *Planner) Guests() []models.Guest {
	return p.guests.Items()
}

// Guest looks up a single guest
func (p *Planner) Guest(id string) (models.Guest, error) {
	g, ok := p.guests.Find(id)
	if !ok {
		return models.Guest{}, ErrNotFound
	}
	return g, nil
}

// AddGuest appends a new guest with Pending status
func (p *Planner) AddGuest(in GuestInput) (models.Guest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(in); err != nil {
		return models.Guest{}, err
	}

	return p.guests.Add(models.Guest{
		Name:    in.Name,
		Status:  models.GuestPending,
		PlusOne: in.PlusOne,
		Dietary: strings.TrimSpace(in.Dietary),
		Phone:   in.Phone,
	}), nil
}

// SetGuestStatus records a guest's RSVP
func (p *Planner) SetGuestStatus(id string, status models.GuestStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown guest status %q", ErrInvalidInput, status)
	}
	ok := p.guests.Update(id, func(g models.Guest) models.Guest {
		g.Status = status
		return g
	})
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetGuestPhone stores the number invitations are sent to
func (p *Planner) SetGuestPhone(id, phone string) error {
	ok := p.guests.Update(id, func(g models.Guest) models.Guest {
		g.Phone = phone
		return g
	})
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteGuest removes a guest
func (p *Planner) DeleteGuest(id string) error {
	if !p.guests.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// SearchGuests matches guest names case-insensitively
func (p *Planner) SearchGuests(term string) []models.Guest {
	return p.guests.Filter(func(g models.Guest) bool { return containsFold(g.Name, term) })
}

// FindGuestByPhone returns the guest registered with phone
func (p *Planner) FindGuestByPhone(phone string) (models.Guest, error) {
	if phone == "" {
		return models.Guest{}, ErrNotFound
	}
	matches := p.guests.Filter(func(g models.Guest) bool { return g.Phone == phone })
	if len(matches) == 0 {
		return models.Guest{}, ErrNotFound
	}
	return matches[0], nil
}

// GuestCounts counts guests per RSVP status
func (p *Planner) GuestCounts() GuestCounts {
	return storage.Aggregate(p.guests, func(guests []models.Guest) GuestCounts {
		counts := GuestCounts{Total: len(guests)}
		for _, g := range guests {
			switch g.Status {
			case models.GuestConfirmed:
				counts.Confirmed++
			case models.GuestPending:
				counts.Pending++
			case models.GuestDeclined:
				counts.Declined++
			case models.GuestInvited:
				counts.Invited++
			}
		}
		return counts
	})
}
