package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the API process.
// All values must come from env (or env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App     AppConfig
	CRM     CRMConfig
	VoiceAI VoiceAIConfig
	Calls   CallsConfig
}

type AppConfig struct {
	Env  string
	Port int

	// StaticDir is where the click-to-call page lives.
	StaticDir string
}

type CRMConfig struct {
	BaseURL string
	APIKey  string

	// ObjectType is the CRM record type segment used in /record/{type}/{id}.
	ObjectType string
}

type VoiceAIConfig struct {
	BaseURL       string
	APIKey        string
	AssistantID   string
	PhoneNumberID string

	// WebhookSecret is compared against the x-vapi-secret header, but only
	// when WebhookVerify is set. The secret may be configured ahead of
	// enforcement being switched on.
	WebhookSecret string
	WebhookVerify bool
}

type CallsConfig struct {
	// ClientTimeout bounds every outbound HTTP request to the CRM and the
	// voice-AI platform. Upstreams give no guarantees; never run unbounded.
	ClientTimeout time.Duration

	// RecordTTL is how long an ended call record is kept before the sweeper
	// drops it. SweepInterval is how often the sweeper runs.
	RecordTTL     time.Duration
	SweepInterval time.Duration
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.StaticDir = strings.TrimSpace(os.Getenv("STATIC_DIR"))

	c.CRM.BaseURL = strings.TrimSpace(os.Getenv("CRM_BASE_URL"))
	c.CRM.APIKey = os.Getenv("CRM_API_KEY")
	c.CRM.ObjectType = strings.TrimSpace(os.Getenv("CRM_OBJECT_TYPE"))

	c.VoiceAI.BaseURL = strings.TrimSpace(os.Getenv("VAPI_BASE_URL"))
	c.VoiceAI.APIKey = os.Getenv("VAPI_API_KEY")
	c.VoiceAI.AssistantID = strings.TrimSpace(os.Getenv("VAPI_ASSISTANT_ID"))
	c.VoiceAI.PhoneNumberID = strings.TrimSpace(os.Getenv("VAPI_PHONE_NUMBER_ID"))
	c.VoiceAI.WebhookSecret = os.Getenv("VAPI_WEBHOOK_SECRET")
	c.VoiceAI.WebhookVerify = boolEnv("VAPI_WEBHOOK_VERIFY")

	c.Calls.ClientTimeout = mustDuration("HTTP_CLIENT_TIMEOUT")
	c.Calls.RecordTTL = mustDuration("CALL_RECORD_TTL")
	c.Calls.SweepInterval = mustDuration("CALL_SWEEP_INTERVAL")

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if c.App.StaticDir == "" {
		c.App.StaticDir = "web"
	}

	if c.CRM.BaseURL == "" {
		errs = append(errs, errors.New("CRM_BASE_URL is required"))
	}
	if c.CRM.ObjectType == "" {
		c.CRM.ObjectType = "Leads"
	}

	if c.VoiceAI.BaseURL == "" {
		errs = append(errs, errors.New("VAPI_BASE_URL is required"))
	}
	if c.VoiceAI.AssistantID == "" {
		errs = append(errs, errors.New("VAPI_ASSISTANT_ID is required"))
	}
	if c.VoiceAI.PhoneNumberID == "" {
		errs = append(errs, errors.New("VAPI_PHONE_NUMBER_ID is required"))
	}
	if c.IsProduction() {
		if c.CRM.APIKey == "" {
			errs = append(errs, errors.New("CRM_API_KEY is required in production"))
		}
		if c.VoiceAI.APIKey == "" {
			errs = append(errs, errors.New("VAPI_API_KEY is required in production"))
		}
	}
	if c.VoiceAI.WebhookVerify && c.VoiceAI.WebhookSecret == "" {
		errs = append(errs, errors.New("VAPI_WEBHOOK_SECRET is required when VAPI_WEBHOOK_VERIFY is set"))
	}

	if c.Calls.ClientTimeout <= 0 {
		c.Calls.ClientTimeout = 15 * time.Second
	}
	if c.Calls.RecordTTL <= 0 {
		c.Calls.RecordTTL = 24 * time.Hour
	}
	if c.Calls.SweepInterval <= 0 {
		c.Calls.SweepInterval = time.Hour
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func isValidEnv(env string) bool {
	switch env {
	case "local", "dev", "staging", "production":
		return true
	}
	return false
}

func mustInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func mustDuration(key string) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func boolEnv(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return b
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		return 0, append(errs, err)
	}
	return n, errs
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}
