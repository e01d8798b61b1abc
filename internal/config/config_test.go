package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "abc"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "abc", cfg.Telegram.Token)
	require.Equal(t, 60, cfg.Telegram.PollTimeout)
	require.Equal(t, "LEI", cfg.Shop.Currency)
	require.Equal(t, "Gata Făcut", cfg.Shop.ReadyOption)
	require.Equal(t, 3*time.Second, cfg.Gallery.SlideshowInterval)
	require.Equal(t, 4*time.Second, cfg.Reviews.Display)
	require.Equal(t, 24*time.Hour, cfg.Sessions.IdleTTL)
}

func TestLoadReadsSections(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "t"
  admin_chat_id: 42
http:
  addr: ":9090"
metrics:
  enabled: true
shop:
  whatsapp_phone: "40700000000"
gallery:
  slideshow_interval: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.App.Env)
	require.EqualValues(t, 42, cfg.Telegram.AdminChatID)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "40700000000", cfg.Shop.WhatsAppPhone)
	require.Equal(t, 5*time.Second, cfg.Gallery.SlideshowInterval)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "from-file"
`)
	t.Setenv("APP_SHOP_CURRENCY", "RON")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "RON", cfg.Shop.Currency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
