package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir      string `env:"DATA_DIR"      env-default:"data"`
	StoreBackend string `env:"STORE_BACKEND" env-default:"sqlite"`
	// VoiceInput is "none" or "line" (a dictation tool typing into the terminal)
	VoiceInput string `env:"VOICE_INPUT" env-default:"none"`

	Log      LogConfig
	Advice   AdviceConfig
	WhatsApp WhatsAppConfig
	Wedding  WeddingConfig
}

// LogConfig controls the zerolog output
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"console"`
}

// AdviceConfig selects and configures the planner assistant backend
type AdviceConfig struct {
	Provider        string        `env:"ADVICE_PROVIDER"         env-default:"gemini"`
	Timeout         time.Duration `env:"ADVICE_TIMEOUT"          env-default:"30s"`
	BreakerFailures uint32        `env:"ADVICE_BREAKER_FAILURES" env-default:"3"`
	BreakerCooldown time.Duration `env:"ADVICE_BREAKER_COOLDOWN" env-default:"1m"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash-lite"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" env-default:"claude-haiku-4-5"`

	GigaChatAPIKey             string `env:"GIGACHAT_API_KEY"`
	GigaChatScope              string `env:"GIGACHAT_SCOPE"                env-default:"GIGACHAT_API_PERS"`
	GigaChatInsecureSkipVerify bool   `env:"GIGACHAT_INSECURE_SKIP_VERIFY" env-default:"false"`
}

// WhatsAppConfig enables invitations and the assistant relay over WhatsApp
type WhatsAppConfig struct {
	Enabled     bool   `env:"WHATSAPP_ENABLED"      env-default:"false"`
	OwnerPhone  string `env:"WHATSAPP_OWNER_PHONE"`
	CountryCode string `env:"WHATSAPP_COUNTRY_CODE" env-default:"972"`
}

// WeddingConfig holds the details quoted in invitations
type WeddingConfig struct {
	PlannerName string `env:"PLANNER_NAME"     env-default:"Marianne"`
	Location    string `env:"WEDDING_LOCATION" env-default:"Venue TBD"`
	BrideName   string `env:"BRIDE_NAME"       env-default:"Bride"`
	GroomName   string `env:"GROOM_NAME"       env-default:"Groom"`
}

var (
	storeBackends   = []string{"sqlite", "file", "memory"}
	adviceProviders = []string{"gemini", "anthropic", "gigachat", "offline"}
	voiceInputs     = []string{"none", "line"}
)

// LoadConfig loads configuration from a .env file (if any) and environment variables
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	if !contains(storeBackends, c.StoreBackend) {
		return fmt.Errorf("unknown STORE_BACKEND %q (want one of %v)", c.StoreBackend, storeBackends)
	}
	if !contains(adviceProviders, c.Advice.Provider) {
		return fmt.Errorf("unknown ADVICE_PROVIDER %q (want one of %v)", c.Advice.Provider, adviceProviders)
	}
	if !contains(voiceInputs, c.VoiceInput) {
		return fmt.Errorf("unknown VOICE_INPUT %q (want one of %v)", c.VoiceInput, voiceInputs)
	}
	if c.Advice.Timeout <= 0 {
		return fmt.Errorf("ADVICE_TIMEOUT must be positive, got %s", c.Advice.Timeout)
	}
	if c.WhatsApp.Enabled && c.StoreBackend == "memory" {
		return errors.New("WHATSAPP_ENABLED needs a persistent STORE_BACKEND")
	}
	return nil
}

// StorePath returns the file used by the selected store backend
func (c *Config) StorePath() string {
	switch c.StoreBackend {
	case "file":
		return filepath.Join(c.DataDir, "planner.json")
	case "sqlite":
		return filepath.Join(c.DataDir, "planner.db")
	default:
		return ""
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
