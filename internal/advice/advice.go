package advice

import (
	"context"
	"errors"
	"fmt"

	"wedding-planner/internal/models"
)

const (
	// Greeting opens every new transcript
	Greeting = "Hello, darling. How can I help you plan your beautiful day today?"
	// FallbackReply is appended whenever the service call fails
	FallbackReply = "I'm having a little trouble connecting. Let's try again!"
	// PhotoPrompt stands in for the text of an image-only turn
	PhotoPrompt = "Check out this photo!"
)

var (
	ErrBusy             = errors.New("a reply is still on its way")
	ErrNothingToSend    = errors.New("nothing to send")
	ErrVoiceUnsupported = errors.New("voice input is not supported here")
	ErrEmptyReply       = errors.New("empty reply")
)

// Service generates the planner's reply to one user turn
type Service interface {
	Ask(ctx context.Context, req Request) (string, error)
}

// ServiceFunc adapts a function to Service
type ServiceFunc func(ctx context.Context, req Request) (string, error)

func (f ServiceFunc) Ask(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Request is everything sent for one turn
type Request struct {
	Persona string
	History []Turn
	Prompt  string
	Image   *InlineImage
}

// Turn is a prior transcript entry
type Turn struct {
	Role    models.Role
	Content string
}

// ImagePicker produces an image as a data URI (camera, gallery, file)
type ImagePicker interface {
	Pick(ctx context.Context) (string, error)
}

// SpeechRecognizer produces transcription candidates, best first
type SpeechRecognizer interface {
	Listen(ctx context.Context) ([]string, error)
}

// Persona is the fixed system instruction for the planner assistant
func Persona(name string) string {
	who := "a couple's"
	if name != "" {
		who = name + "'s"
	}
	return fmt.Sprintf("You are %s personal, expert wedding planner. "+
		"Your tone is warm, elegant, and supportive. "+
		"You help with logistics, design, and emotional support. "+
		"If an image is provided, analyze it and give specific feedback based on the wedding style.", who)
}

// HistoryFrom re-expresses a transcript as role-tagged turns
func HistoryFrom(transcript []models.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(transcript))
	for _, m := range transcript {
		turns = append(turns, Turn{Role: m.Role, Content: m.Text})
	}
	return turns
}
