package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBaseConfig() *AppConfig {
	return &AppConfig{
		Env:           "development",
		WebHost:       "0.0.0.0",
		WebPort:       "5173",
		APIHost:       "0.0.0.0",
		APIPort:       "8000",
		APIBaseURL:    "http://localhost:8000/api",
		PublicBaseURL: "http://localhost:5173",
	}
}

func TestAppConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validBaseConfig().Validate())
}

func TestAppConfig_Validate_InvalidEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Env = "qa"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
}

func TestAppConfig_Validate_MissingPorts(t *testing.T) {
	cfg := validBaseConfig()
	cfg.WebPort = ""
	cfg.APIPort = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEB_PORT")
	assert.Contains(t, err.Error(), "API_PORT")
}

func TestAppConfig_Validate_BadAPIBaseURL(t *testing.T) {
	for _, raw := range []string{"localhost:8000/api", "ftp://example.com/api", "http://"} {
		cfg := validBaseConfig()
		cfg.APIBaseURL = raw

		err := cfg.Validate()
		require.Error(t, err, raw)
		assert.Contains(t, err.Error(), "API_BASE_URL", raw)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "WEB_PORT", "API_PORT", "API_BASE_URL", "PUBLIC_BASE_URL", "SHOW_INTRO", "COUPLE_NAMES"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, "0.0.0.0:5173", cfg.WebAddr())
	assert.Equal(t, "0.0.0.0:8000", cfg.APIAddr())
	assert.True(t, cfg.ShowIntro)
	assert.Equal(t, "Ummay & Norildeen", cfg.CoupleNames)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_TrimsTrailingSlashes(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://rsvp.example.com/api/")
	t.Setenv("PUBLIC_BASE_URL", "https://invite.example.com/")

	cfg := LoadConfig()

	assert.Equal(t, "https://rsvp.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "https://invite.example.com/abc123", cfg.InvitationURL("abc123"))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SHOW_INTRO", "false")
	assert.False(t, GetEnvBool("SHOW_INTRO", true))

	t.Setenv("SHOW_INTRO", "nope")
	assert.True(t, GetEnvBool("SHOW_INTRO", true))
}

func TestCombinedTime(t *testing.T) {
	assert.Equal(t, "3pm - 9pm", CombinedTime())
	assert.Equal(t, "5pm", EventInfo{Time: "5pm"}.EndTime())
}
