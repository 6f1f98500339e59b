package main

import (
	"context"

	"github.com/rs/zerolog"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/advice/claude"
	"wedding-planner/internal/advice/gemini"
	"wedding-planner/internal/advice/gigachat"
	"wedding-planner/internal/config"
)

// newAdviceService builds the configured provider behind a circuit breaker.
// The offline provider has no breaker.
func newAdviceService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (advice.Service, *advice.Breaker, func(), error) {
	ac := cfg.Advice
	closer := func() {}

	var (
		service advice.Service
		err     error
	)

	switch ac.Provider {
	case "offline":
		return advice.Offline{}, nil, closer, nil
	case "anthropic":
		service, err = claude.New(ac.AnthropicAPIKey, ac.AnthropicModel)
	case "gigachat":
		var client *gigachat.Client
		client, err = gigachat.New(ctx, gigachat.Config{
			APIKey:             ac.GigaChatAPIKey,
			Scope:              ac.GigaChatScope,
			InsecureSkipVerify: ac.GigaChatInsecureSkipVerify,
		}, advice.Persona(cfg.Wedding.PlannerName), log)
		if err == nil {
			service, closer = client, client.Close
		}
	default:
		service, err = gemini.New(ctx, ac.GeminiAPIKey, ac.GeminiModel)
	}
	if err != nil {
		return nil, nil, closer, err
	}

	log.Info().Str("provider", ac.Provider).Msg("Planner assistant ready")
	breaker := advice.NewBreaker(ac.Provider, service, ac.BreakerFailures, ac.BreakerCooldown, log)
	return breaker, breaker, closer, nil
}
