package advice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
)

// DefaultTimeout bounds a single service call
const DefaultTimeout = 30 * time.Second

// Session is one linear conversation with the planner assistant.
//
// At most one request is in flight. Send while a request is outstanding
// returns ErrBusy and changes nothing. Every accepted send appends exactly
// one user turn immediately and exactly one model turn when the call
// finishes, falling back to FallbackReply on any failure.
type Session struct {
	mu         sync.Mutex
	service    Service
	persona    string
	timeout    time.Duration
	transcript []models.ChatMessage
	input      string
	image      string
	sending    bool
	log        zerolog.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithTimeout bounds each service call
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPersona overrides the system instruction
func WithPersona(persona string) SessionOption {
	return func(s *Session) {
		s.persona = persona
	}
}

// NewSession starts a conversation that opens with the greeting
func NewSession(service Service, log zerolog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		service:    service,
		persona:    Persona(""),
		timeout:    DefaultTimeout,
		transcript: []models.ChatMessage{{Role: models.RoleModel, Text: Greeting}},
		log:        log.With().Str("component", "advice").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transcript returns a copy of all turns so far
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]models.ChatMessage, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}

// Sending reports whether a request is in flight
func (s *Session) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sending
}

// SetInput replaces the pending text
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = text
}

// Input returns the pending text
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.input
}

// AttachImage sets the pending image, replacing any previous one
func (s *Session) AttachImage(dataURI string) error {
	if _, err := ParseDataURI(dataURI); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = dataURI
	return nil
}

// RemoveImage drops the pending image
func (s *Session) RemoveImage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = ""
}

// Image returns the pending image data URI, if any
func (s *Session) Image() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.image
}

// Attach asks picker for an image and makes it the pending attachment
func (s *Session) Attach(ctx context.Context, picker ImagePicker) error {
	uri, err := picker.Pick(ctx)
	if err != nil {
		return err
	}
	return s.AttachImage(uri)
}

// Listen replaces the pending text with the recognizer's first candidate.
// ErrVoiceUnsupported is returned as is so the caller can alert once.
func (s *Session) Listen(ctx context.Context, recognizer SpeechRecognizer) error {
	candidates, err := recognizer.Listen(ctx)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}
	s.SetInput(candidates[0])
	return nil
}

// Send submits the pending text and image and waits for the reply turn.
// Service failures are not returned: they produce the fallback turn.
func (s *Session) Send(ctx context.Context) (models.ChatMessage, error) {
	req, image, err := s.begin()
	if err != nil {
		return models.ChatMessage{}, err
	}
	return s.complete(ctx, req, image), nil
}

// SendAsync appends the user turn and returns at once; the reply turn is
// appended in the background and then passed to done (which may be nil).
func (s *Session) SendAsync(ctx context.Context, done func(models.ChatMessage)) error {
	req, image, err := s.begin()
	if err != nil {
		return err
	}

	go s.finish(ctx, req, image, done)
	return nil
}

// Submit is Send for a caller that owns its own text and image. The
// session's pending input and attachment are neither read nor cleared.
func (s *Session) Submit(ctx context.Context, text, imageURI string) (models.ChatMessage, error) {
	req, image, err := s.beginWith(text, imageURI)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return s.complete(ctx, req, image), nil
}

// SubmitAsync is SendAsync for a caller that owns its own text and image
func (s *Session) SubmitAsync(ctx context.Context, text, imageURI string, done func(models.ChatMessage)) error {
	req, image, err := s.beginWith(text, imageURI)
	if err != nil {
		return err
	}

	go s.finish(ctx, req, image, done)
	return nil
}

// begin performs the optimistic half of a send from the pending input
func (s *Session) begin() (Request, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, image, err := s.start(s.input, s.image)
	if err != nil {
		return Request{}, "", err
	}
	s.input = ""
	s.image = ""
	return req, image, nil
}

func (s *Session) beginWith(text, imageURI string) (Request, string, error) {
	if imageURI != "" {
		if _, err := ParseDataURI(imageURI); err != nil {
			return Request{}, "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.start(text, imageURI)
}

// start records the user turn and marks the session busy; s.mu must be held
func (s *Session) start(input, image string) (Request, string, error) {
	if s.sending {
		return Request{}, "", ErrBusy
	}

	text := strings.TrimSpace(input)
	if text == "" && image == "" {
		return Request{}, "", ErrNothingToSend
	}
	if text == "" {
		text = PhotoPrompt
	}

	req := Request{
		Persona: s.persona,
		History: HistoryFrom(s.transcript),
		Prompt:  text,
	}

	s.transcript = append(s.transcript, models.ChatMessage{Role: models.RoleUser, Text: text})
	s.sending = true

	return req, image, nil
}

func (s *Session) finish(ctx context.Context, req Request, image string, done func(models.ChatMessage)) {
	reply := s.complete(ctx, req, image)
	if done != nil {
		done(reply)
	}
}

// complete calls the service and appends the single reply turn
func (s *Session) complete(ctx context.Context, req Request, image string) models.ChatMessage {
	text, err := s.ask(ctx, req, image)
	if err != nil {
		s.log.Warn().Err(err).Int("history", len(req.History)).Msg("Advice request failed, using fallback reply")
		text = FallbackReply
	}

	reply := models.ChatMessage{Role: models.RoleModel, Text: text}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, reply)
	s.sending = false
	return reply
}

func (s *Session) ask(ctx context.Context, req Request, image string) (string, error) {
	if image != "" {
		img, err := ParseDataURI(image)
		if err != nil {
			return "", err
		}
		req.Image = img
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.service.Ask(ctx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
