package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Env   string
	Debug bool

	AppName string
	Build   string

	// APIBaseURL is the Eleve.ia REST API root, e.g. "http://localhost:8000/api".
	APIBaseURL string
	// GatewayBaseURL is the WhatsApp gateway host, e.g. "https://eleve.uazapi.com".
	GatewayBaseURL string

	RequestTimeout    time.Duration
	GatewayPollDelta  time.Duration
	FlashDismissDelta time.Duration

	// CredentialsPath is the file holding the auth token and the cached profile.
	CredentialsPath string

	RedisURL     string
	RollbarToken string
}

// NewConfig loads configuration from defaults, an optional .env file and
// environment variables prefixed with the current ENV.
func NewConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Eleve")
	conf.SetDefault("build", "dev")
	conf.SetDefault("apiBaseUrl", "http://localhost:8000/api")
	conf.SetDefault("gatewayBaseUrl", "https://eleve.uazapi.com")
	conf.SetDefault("requestTimeout", 30*time.Second)
	conf.SetDefault("gatewayPollDelta", 5*time.Second)
	conf.SetDefault("flashDismissDelta", 5*time.Second)
	conf.SetDefault("credentialsPath", defaultCredentialsPath())
	conf.SetDefault("redisUrl", "")
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:               env,
		Debug:             conf.GetBool("debug"),
		AppName:           conf.GetString("appName"),
		Build:             conf.GetString("build"),
		APIBaseURL:        conf.GetString("apiBaseUrl"),
		GatewayBaseURL:    conf.GetString("gatewayBaseUrl"),
		RequestTimeout:    conf.GetDuration("requestTimeout"),
		GatewayPollDelta:  conf.GetDuration("gatewayPollDelta"),
		FlashDismissDelta: conf.GetDuration("flashDismissDelta"),
		CredentialsPath:   conf.GetString("credentialsPath"),
		RedisURL:          conf.GetString("redisUrl"),
		RollbarToken:      conf.GetString("rollbarToken"),
	}, nil
}

func (c *Config) IsTest() bool {
	return c.Env == "TEST"
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "eleve", "credentials.json")
}
