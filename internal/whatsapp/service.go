package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

var ErrNotOnWhatsApp = errors.New("number is not registered on WhatsApp")

// Incoming is a text message received from another account
type Incoming struct {
	Phone string
	Text  string
}

// MessageHandler is called for every incoming text message
type MessageHandler func(ctx context.Context, msg Incoming) error

type Config struct {
	DataDir     string
	CountryCode string
	// QROut receives the pairing QR code; nothing is printed when nil
	QROut io.Writer
}

type Service struct {
	client *whatsmeow.Client
	cfg    *Config
	log    zerolog.Logger

	mu             sync.RWMutex
	messageHandler MessageHandler
}

// NewService opens the device store and prepares a client
func NewService(ctx context.Context, cfg *Config, log zerolog.Logger) (*Service, error) {
	logger := log.With().Str("component", "WhatsApp").Logger()

	// Use nil logger - sqlstore will use a no-op logger by default
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.DataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)

	service := &Service{
		client: client,
		cfg:    cfg,
		log:    logger,
	}

	client.AddEventHandler(service.eventHandler)

	return service, nil
}

// NormalizePhoneNumber reduces a phone number to international digits.
// Local numbers with a leading 0 get countryCode in place of the 0, and a
// stray 0 right after the country code is dropped.
func NormalizePhoneNumber(phoneNumber, countryCode string) string {
	phoneNumber = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phoneNumber)

	if strings.HasPrefix(phoneNumber, "00") {
		phoneNumber = phoneNumber[2:]
	}

	if countryCode == "" {
		return phoneNumber
	}

	if strings.HasPrefix(phoneNumber, "0") && len(phoneNumber) == 10 {
		phoneNumber = countryCode + phoneNumber[1:]
	}

	if strings.HasPrefix(phoneNumber, countryCode+"0") {
		phoneNumber = countryCode + phoneNumber[len(countryCode)+1:]
	}

	return phoneNumber
}

// Normalize applies NormalizePhoneNumber with the configured country code
func (s *Service) Normalize(phoneNumber string) string {
	return NormalizePhoneNumber(phoneNumber, s.cfg.CountryCode)
}

// Connect connects to WhatsApp, pairing by QR code on first use
func (s *Service) Connect(ctx context.Context) error {
	if s.client.Store.ID != nil {
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	for evt := range qrChan {
		if evt.Event != "code" {
			s.log.Info().Str("event", evt.Event).Msg("Login event")
			continue
		}
		s.printQR(evt.Code)
	}
	return nil
}

func (s *Service) printQR(code string) {
	if s.cfg.QROut == nil {
		s.log.Info().Str("code", code).Msg("Scan this pairing code with WhatsApp")
		return
	}

	q, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		fmt.Fprintf(s.cfg.QROut, "QR Code: %s\n", code)
		fmt.Fprintln(s.cfg.QROut, "Please scan this QR code with WhatsApp to connect.")
		return
	}

	fmt.Fprintln(s.cfg.QROut, "\n"+q.ToSmallString(false))
	fmt.Fprintln(s.cfg.QROut, "📱 Please scan the QR code above with WhatsApp:")
	fmt.Fprintln(s.cfg.QROut, "   1. Open WhatsApp on your phone")
	fmt.Fprintln(s.cfg.QROut, "   2. Go to Settings > Linked Devices")
	fmt.Fprintln(s.cfg.QROut, "   3. Tap 'Link a Device'")
	fmt.Fprintln(s.cfg.QROut, "   4. Scan the QR code shown above")
}

// Disconnect disconnects from WhatsApp
func (s *Service) Disconnect() {
	s.client.Disconnect()
}

// SendMessage sends a text message to a phone number
func (s *Service) SendMessage(ctx context.Context, phoneNumber, message string) error {
	phoneNumber = s.Normalize(phoneNumber)

	jid, err := s.resolve(ctx, phoneNumber)
	if err != nil {
		return err
	}

	s.log.Debug().Str("jid", jid.String()).Str("phone", phoneNumber).Msg("Attempting to send message")

	sent, err := s.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: &message,
	})
	if err != nil {
		if strings.Contains(err.Error(), "unknown server") || strings.Contains(err.Error(), "can't send message") {
			return fmt.Errorf("failed to send message to %s (JID: %s): %w. The recipient must be in your WhatsApp contacts", phoneNumber, jid.String(), err)
		}
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.log.Info().Str("id", sent.ID).Str("phone", phoneNumber).Msg("Message sent")
	return nil
}

// resolve verifies the number is on WhatsApp and returns its JID
func (s *Service) resolve(ctx context.Context, phoneNumber string) (types.JID, error) {
	resp, err := s.client.IsOnWhatsApp(ctx, []string{phoneNumber})
	if err != nil {
		return types.JID{}, fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return types.JID{}, fmt.Errorf("%s: %w", phoneNumber, ErrNotOnWhatsApp)
	}
	return resp[0].JID, nil
}

// eventHandler handles incoming WhatsApp events
func (s *Service) eventHandler(evt interface{}) {
	switch evt := evt.(type) {
	case *events.Message:
		s.handleMessage(evt)
	case *events.Connected:
		s.log.Info().Msg("Connected to WhatsApp")
	case *events.Disconnected:
		s.log.Info().Msg("Disconnected from WhatsApp")
	case *events.LoggedOut:
		s.log.Info().Msg("Logged out from WhatsApp")
	}
}

// handleMessage processes incoming messages
func (s *Service) handleMessage(msg *events.Message) {
	if msg.Info.IsFromMe || msg.Message == nil {
		return
	}

	in := Incoming{
		Phone: s.Normalize(msg.Info.Sender.User),
		Text:  MessageText(msg.Message),
	}
	if in.Text == "" {
		return
	}

	s.mu.RLock()
	handler := s.messageHandler
	s.mu.RUnlock()

	if handler == nil {
		s.log.Info().Str("sender", in.Phone).Str("message", in.Text).Msg("Received message")
		return
	}

	if err := handler(context.Background(), in); err != nil {
		s.log.Error().Err(err).Str("sender", in.Phone).Msg("Error handling message")
	}
}

// MessageText extracts the plain text of a message, if any
func MessageText(msg *waE2E.Message) string {
	if text := msg.GetConversation(); text != "" {
		return text
	}
	return msg.GetExtendedTextMessage().GetText()
}

// SetMessageHandler sets a custom handler for incoming messages
func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageHandler = handler
}
