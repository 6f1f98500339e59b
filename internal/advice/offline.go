package advice

import (
	"context"
	"strings"
)

var offlineTips = []struct {
	keywords []string
	reply    string
}{
	{[]string{"budget", "cost", "money", "price"}, "Keep roughly ten percent of your budget aside for surprises, darling. Venue and catering usually take the largest share, so settle those first."},
	{[]string{"guest", "invite", "rsvp"}, "Send invitations six to eight weeks ahead and ask for replies four weeks before the day. It keeps the seating plan calm."},
	{[]string{"dress", "attire", "suit"}, "Start looking at attire eight to ten months out. Alterations take longer than anyone expects."},
	{[]string{"flower", "decor", "theme", "color", "colour"}, "Choose two main colours and one accent. Repeat them in flowers, stationery, and linens for a cohesive look."},
	{[]string{"venue", "location"}, "Visit venues at the same hour as your ceremony so you see the real light, and ask what is included before comparing prices."},
}

const offlineDefault = "I'm working without a connection right now, but here is a thought: pick one task from your checklist today and finish it. Small steps make a beautiful day."

const offlinePhoto = "What a lovely photo! Once I'm connected again I can give you detailed feedback on it."

// Offline answers from a small set of built-in tips without any network call
type Offline struct{}

func (Offline) Ask(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Image != nil {
		return offlinePhoto, nil
	}

	prompt := strings.ToLower(req.Prompt)
	for _, tip := range offlineTips {
		for _, kw := range tip.keywords {
			if strings.Contains(prompt, kw) {
				return tip.reply, nil
			}
		}
	}
	return offlineDefault, nil
}
