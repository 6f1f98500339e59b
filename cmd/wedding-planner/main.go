package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/config"
	"wedding-planner/internal/handler"
	"wedding-planner/internal/logger"
	"wedding-planner/internal/planner"
	"wedding-planner/internal/storage"
	"wedding-planner/internal/whatsapp"
)

func main() {
	fmt.Println("💍 Wedding Planner")
	fmt.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Error initializing storage")
	}
	defer closeStore()

	p := planner.New(kv, log)

	service, breaker, closeService, err := newAdviceService(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Advice.Provider).Msg("Error initializing planner assistant")
	}
	defer closeService()

	session := advice.NewSession(service, log,
		advice.WithTimeout(cfg.Advice.Timeout),
		advice.WithPersona(advice.Persona(cfg.Wedding.PlannerName)),
	)

	app := &cli{
		planner: p,
		session: session,
		breaker: breaker,
	}
	app.voice = app.recognizer(cfg.VoiceInput)

	if cfg.WhatsApp.Enabled {
		wa, err := startWhatsApp(ctx, cfg, p, session, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Error starting WhatsApp")
		}
		defer wa.service.Disconnect()
		app.rsvp = wa.rsvp
	}

	done := make(chan struct{})
	go func() {
		app.run(ctx)
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}

	fmt.Println("\n\nShutting down...")
	fmt.Println("Goodbye! 👋")
}

// openStore opens the key-value backend named in the configuration
func openStore(cfg *config.Config, log zerolog.Logger) (storage.KeyValue, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "memory":
		log.Warn().Msg("Using in-memory store, nothing will be saved")
		return storage.NewMemoryKV(), noop, nil
	case "file":
		kv, err := storage.NewFileKV(cfg.StorePath(), log)
		return kv, noop, err
	default:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, noop, fmt.Errorf("failed to create data directory: %w", err)
		}
		kv, err := storage.NewSQLiteKV(cfg.StorePath(), log)
		if err != nil {
			return nil, noop, err
		}
		if keys, err := kv.Keys(); err == nil {
			log.Info().Str("path", cfg.StorePath()).Strs("keys", keys).Msg("Opened planner store")
		}
		return kv, func() {
			if err := kv.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing store")
			}
		}, nil
	}
}

type whatsAppApp struct {
	service *whatsapp.Service
	rsvp    *handler.RSVPHandler
}

func startWhatsApp(ctx context.Context, cfg *config.Config, p *planner.Planner, session *advice.Session, log zerolog.Logger) (*whatsAppApp, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	service, err := whatsapp.NewService(ctx, &whatsapp.Config{
		DataDir:     cfg.DataDir,
		CountryCode: cfg.WhatsApp.CountryCode,
		QROut:       os.Stdout,
	}, log)
	if err != nil {
		return nil, err
	}

	rsvp := handler.NewRSVPHandler(service, p, &handler.Config{
		WeddingLocation: cfg.Wedding.Location,
		BrideName:       cfg.Wedding.BrideName,
		GroomName:       cfg.Wedding.GroomName,
		CountryCode:     cfg.WhatsApp.CountryCode,
	}, log)

	var relay *handler.AssistantRelay
	owner := service.Normalize(cfg.WhatsApp.OwnerPhone)
	if owner != "" {
		relay = handler.NewAssistantRelay(session, service, log)
	}
	service.SetMessageHandler(handler.Route(owner, relay, rsvp))

	fmt.Println("Connecting to WhatsApp...")
	if err := service.Connect(ctx); err != nil {
		return nil, err
	}
	fmt.Println("✅ Connected to WhatsApp! Listening for RSVP replies.")

	return &whatsAppApp{service: service, rsvp: rsvp}, nil
}
