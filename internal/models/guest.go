package models

// Guest represents a wedding guest
type Guest struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Status  GuestStatus `json:"status"`
	PlusOne bool        `json:"plusOne"`
	Dietary string      `json:"dietary"`
	Phone   string      `json:"phone,omitempty"`
}

// GuestStatus represents the attendance confirmation status
type GuestStatus string

const (
	GuestInvited   GuestStatus = "Invited"
	GuestConfirmed GuestStatus = "Confirmed"
	GuestDeclined  GuestStatus = "Declined"
	GuestPending   GuestStatus = "Pending"
)

// GuestStatuses lists every status in display order
var GuestStatuses = []GuestStatus{GuestInvited, GuestConfirmed, GuestDeclined, GuestPending}

// Valid reports whether s is one of the known statuses
func (s GuestStatus) Valid() bool {
	for _, known := range GuestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (g Guest) RecordID() string { return g.ID }

func (g Guest) WithID(id string) Guest {
	g.ID = id
	return g
}
