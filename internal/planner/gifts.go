package planner

import (
	"strings"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

// FinancialGiftInput describes a monetary gift
type FinancialGiftInput struct {
	GiverName string          `validate:"required"`
	Amount    float64         `validate:"gte=0"`
	Type      models.GiftType `validate:"omitempty,oneof=Cash Cheque Online Donation"`
	Notes     string
}

// WeddingGiftInput describes a physical gift
type WeddingGiftInput struct {
	GiverName string `validate:"required"`
	ItemName  string
	ImageURL  string `validate:"omitempty,datauri"`
}

// GiftSummary is the gift tracker card
type GiftSummary struct {
	FinancialTotal   float64
	FinancialCount   int
	PhysicalCount    int
	ThankedCount     int
	ThankYouProgress int
}

// FinancialGifts returns monetary gifts, most recent first
func (p *Planner) FinancialGifts() []models.FinancialGift {
	return p.financialGifts.Items()
}

// WeddingGifts returns physical gifts, most recent first
func (p *Planner) WeddingGifts() []models.WeddingGift {
	return p.weddingGifts.Items()
}

// AddFinancialGift records a monetary gift received today
func (p *Planner) AddFinancialGift(in FinancialGiftInput) (models.FinancialGift, error) {
	in.GiverName = strings.TrimSpace(in.GiverName)
	if err := validateStruct(in); err != nil {
		return models.FinancialGift{}, err
	}

	giftType := in.Type
	if giftType == "" {
		giftType = models.GiftCash
	}

	return p.financialGifts.Add(models.FinancialGift{
		GiverName: in.GiverName,
		Amount:    in.Amount,
		Date:      p.today(),
		Type:      giftType,
		Notes:     strings.TrimSpace(in.Notes),
	}), nil
}

// AddWeddingGift records a physical gift received today, not yet thanked
func (p *Planner) AddWeddingGift(in WeddingGiftInput) (models.WeddingGift, error) {
	in.GiverName = strings.TrimSpace(in.GiverName)
	if err := validateStruct(in); err != nil {
		return models.WeddingGift{}, err
	}

	return p.weddingGifts.Add(models.WeddingGift{
		GiverName: in.GiverName,
		ItemName:  strings.TrimSpace(in.ItemName),
		Date:      p.today(),
		ImageURL:  in.ImageURL,
	}), nil
}

// ToggleThanked flips whether a thank-you card has been sent
func (p *Planner) ToggleThanked(id string) error {
	ok := p.weddingGifts.Update(id, func(g models.WeddingGift) models.WeddingGift {
		g.Thanked = !g.Thanked
		return g
	})
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteFinancialGift removes a monetary gift
func (p *Planner) DeleteFinancialGift(id string) error {
	if !p.financialGifts.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// DeleteWeddingGift removes a physical gift
func (p *Planner) DeleteWeddingGift(id string) error {
	if !p.weddingGifts.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// SearchFinancialGifts matches donors by name
func (p *Planner) SearchFinancialGifts(term string) []models.FinancialGift {
	return p.financialGifts.Filter(func(g models.FinancialGift) bool {
		return containsFold(g.GiverName, term)
	})
}

// SearchWeddingGifts matches gifts by giver or item
func (p *Planner) SearchWeddingGifts(term string) []models.WeddingGift {
	return p.weddingGifts.Filter(func(g models.WeddingGift) bool {
		return containsFold(g.GiverName, term) || containsFold(g.ItemName, term)
	})
}

// GiftSummary totals money received and thank-you progress
func (p *Planner) GiftSummary() GiftSummary {
	s := storage.Aggregate(p.financialGifts, func(gifts []models.FinancialGift) GiftSummary {
		s := GiftSummary{FinancialCount: len(gifts)}
		for _, g := range gifts {
			s.FinancialTotal += g.Amount
		}
		return s
	})

	physical := storage.Aggregate(p.weddingGifts, func(gifts []models.WeddingGift) GiftSummary {
		s := GiftSummary{PhysicalCount: len(gifts)}
		for _, g := range gifts {
			if g.Thanked {
				s.ThankedCount++
			}
		}
		return s
	})

	s.PhysicalCount = physical.PhysicalCount
	s.ThankedCount = physical.ThankedCount
	s.ThankYouProgress = percent(float64(s.ThankedCount), float64(s.PhysicalCount))
	return s
}
