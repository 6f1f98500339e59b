package models

// FinancialGift is a monetary gift
type FinancialGift struct {
	ID        string   `json:"id"`
	GiverName string   `json:"giverName"`
	Amount    float64  `json:"amount"`
	Date      string   `json:"date"`
	Type      GiftType `json:"type"`
	Notes     string   `json:"notes,omitempty"`
}

// GiftType is how a financial gift was given
type GiftType string

const (
	GiftCash     GiftType = "Cash"
	GiftCheque   GiftType = "Cheque"
	GiftOnline   GiftType = "Online"
	GiftDonation GiftType = "Donation"
)

// GiftTypes lists every financial gift type
var GiftTypes = []GiftType{GiftCash, GiftCheque, GiftOnline, GiftDonation}

// WeddingGift is a physical gift awaiting (or having received) a thank-you card
type WeddingGift struct {
	ID        string `json:"id"`
	GiverName string `json:"giverName"`
	ItemName  string `json:"itemName"`
	Date      string `json:"date"`
	Thanked   bool   `json:"thanked"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

func (g FinancialGift) RecordID() string { return g.ID }

func (g FinancialGift) WithID(id string) FinancialGift {
	g.ID = id
	return g
}

func (g WeddingGift) RecordID() string { return g.ID }

func (g WeddingGift) WithID(id string) WeddingGift {
	g.ID = id
	return g
}
