package configs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"invite.link/configs/configslog"

	"github.com/joho/godotenv"
)

// AppConfig holds the settings shared by the guest web app, the API server and the CLI.
type AppConfig struct {
	Env string

	WebHost string
	WebPort string
	APIHost string
	APIPort string

	// APIBaseURL is where the guest web app reaches the RSVP API (including the /api prefix).
	APIBaseURL string
	// PublicBaseURL is the guest-facing origin used when printing invitation links.
	PublicBaseURL string

	CoupleNames      string
	ShowIntro        bool
	CORSAllowOrigins string
}

var validEnvs = []string{"development", "staging", "production", "test"}

// LoadEnv reads .env if present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debugw(".env not loaded, using process environment", "reason", err.Error())
	}
}

// LoadConfig loads .env and reads the application settings with their local-development defaults.
func LoadConfig() *AppConfig {
	LoadEnv()
	return &AppConfig{
		Env:              GetEnvWithDefault("APP_ENV", "development"),
		WebHost:          GetEnvWithDefault("WEB_HOST", "0.0.0.0"),
		WebPort:          GetEnvWithDefault("WEB_PORT", "5173"),
		APIHost:          GetEnvWithDefault("API_HOST", "0.0.0.0"),
		APIPort:          GetEnvWithDefault("API_PORT", "8000"),
		APIBaseURL:       strings.TrimRight(GetEnvWithDefault("API_BASE_URL", "http://localhost:8000/api"), "/"),
		PublicBaseURL:    strings.TrimRight(GetEnvWithDefault("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		CoupleNames:      GetEnvWithDefault("COUPLE_NAMES", "Ummay & Norildeen"),
		ShowIntro:        GetEnvBool("SHOW_INTRO", true),
		CORSAllowOrigins: GetEnvWithDefault("CORS_ALLOW_ORIGINS", "*"),
	}
}

// Validate checks the loaded configuration and reports every problem at once.
func (c *AppConfig) Validate() error {
	var errs []error

	envOK := false
	for _, e := range validEnvs {
		if c.Env == e {
			envOK = true
			break
		}
	}
	if !envOK {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of %s, got %q", strings.Join(validEnvs, ", "), c.Env))
	}
	if c.WebPort == "" {
		errs = append(errs, errors.New("WEB_PORT is required"))
	}
	if c.APIPort == "" {
		errs = append(errs, errors.New("API_PORT is required"))
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL))
	}

	return errors.Join(errs...)
}

// WebAddr is the listen address of the guest web app.
func (c *AppConfig) WebAddr() string { return c.WebHost + ":" + c.WebPort }

// APIAddr is the listen address of the RSVP API server.
func (c *AppConfig) APIAddr() string { return c.APIHost + ":" + c.APIPort }

// InvitationURL is the link printed for a group.
func (c *AppConfig) InvitationURL(token string) string {
	return c.PublicBaseURL + "/" + token
}

// IsDevelopment reports whether APP_ENV is development.
func (c *AppConfig) IsDevelopment() bool { return c.Env == "development" }

// GetEnvWithDefault returns the variable or the default when it is unset or empty.
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool parses a boolean variable, falling back to the default on absence or garbage.
func GetEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		configslog.SLog.Warnf("%s=%q is not a boolean, using %t", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
