package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/models"
)

func TestAddGuestAppends(t *testing.T) {
	p := newTestPlanner(t, nil)

	ann, err := p.AddGuest(GuestInput{Name: "Ann Lee", PlusOne: true, Dietary: "vegan"})
	require.NoError(t, err)
	bob, err := p.AddGuest(GuestInput{Name: "Bob", Phone: "972501234567"})
	require.NoError(t, err)

	assert.Equal(t, models.GuestPending, ann.Status)
	assert.True(t, ann.PlusOne)
	assert.Equal(t, []models.Guest{ann, bob}, p.Guests())

	_, err = p.AddGuest(GuestInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, p.Guests(), 2)
}

func TestGuestCountsAddUp(t *testing.T) {
	p := newTestPlanner(t, nil)

	statuses := []models.GuestStatus{
		models.GuestConfirmed, models.GuestConfirmed, models.GuestDeclined,
		models.GuestPending, models.GuestConfirmed, models.GuestDeclined,
	}
	for i, status := range statuses {
		g, err := p.AddGuest(GuestInput{Name: string(rune('A' + i))})
		require.NoError(t, err)
		require.NoError(t, p.SetGuestStatus(g.ID, status))
	}

	counts := p.GuestCounts()
	assert.Equal(t, 6, counts.Total)
	assert.Equal(t, 3, counts.Confirmed)
	assert.Equal(t, 2, counts.Declined)
	assert.Equal(t, 1, counts.Pending)
	assert.Equal(t, counts.Total, counts.Confirmed+counts.Pending+counts.Declined)
}

func TestSetGuestStatus(t *testing.T) {
	p := newTestPlanner(t, nil)
	g, err := p.AddGuest(GuestInput{Name: "Ann"})
	require.NoError(t, err)

	assert.ErrorIs(t, p.SetGuestStatus(g.ID, "Maybe"), ErrInvalidInput)
	assert.ErrorIs(t, p.SetGuestStatus("missing", models.GuestDeclined), ErrNotFound)

	require.NoError(t, p.SetGuestStatus(g.ID, models.GuestInvited))
	got, err := p.Guest(g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestInvited, got.Status)
	assert.Equal(t, 1, p.GuestCounts().Invited)
}

func TestSearchAndDeleteGuests(t *testing.T) {
	p := newTestPlanner(t, nil)
	for _, name := range []string{"Anna Smith", "Bob Jones", "Hannah Li"} {
		_, err := p.AddGuest(GuestInput{Name: name})
		require.NoError(t, err)
	}

	found := p.SearchGuests("ANN")
	require.Len(t, found, 2)
	assert.Equal(t, "Anna Smith", found[0].Name)
	assert.Equal(t, "Hannah Li", found[1].Name)
	assert.Len(t, p.SearchGuests(""), 3)

	require.NoError(t, p.DeleteGuest(found[0].ID))
	assert.Len(t, p.Guests(), 2)
	assert.ErrorIs(t, p.DeleteGuest(found[0].ID), ErrNotFound)
}

func TestFindGuestByPhone(t *testing.T) {
	p := newTestPlanner(t, nil)
	g, err := p.AddGuest(GuestInput{Name: "Ann"})
	require.NoError(t, err)

	_, err = p.FindGuestByPhone("972501234567")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.FindGuestByPhone("")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.SetGuestPhone(g.ID, "972501234567"))
	found, err := p.FindGuestByPhone("972501234567")
	require.NoError(t, err)
	assert.Equal(t, g.ID, found.ID)
}
