package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestProvideApplicationConfigFailsClosedWithoutStripeKey(t *testing.T) {
	writeConfig(t, `
stripe:
  currency: eur
postgres:
  url: postgres://localhost/booking
`)

	cfg, err := ProvideApplicationConfig()
	assert.ErrorIs(t, err, ErrMissingStripeKey)
	assert.Nil(t, cfg)
}

func TestProvideApplicationConfigDefaults(t *testing.T) {
	writeConfig(t, `
stripe:
  secret_key: sk_test_123
postgres:
  url: postgres://localhost/booking
redis:
  addr: localhost:6379
`)

	cfg, err := ProvideApplicationConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, DefaultCurrency, cfg.Stripe.Currency)
	assert.Equal(t, DefaultLocale, cfg.Stripe.Locale)
	assert.Equal(t, DefaultCaptureMethod, cfg.Stripe.CaptureMethod)
	assert.Equal(t, ServerStartPort, cfg.Server.Addr)
}

func TestProvideApplicationConfigKeepsExplicitValues(t *testing.T) {
	writeConfig(t, `
server:
  addr: ":9090"
stripe:
  secret_key: sk_test_123
  currency: usd
  locale: en
  capture_method: manual
`)

	cfg, err := ProvideApplicationConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, "en", cfg.Stripe.Locale)
	assert.Equal(t, "manual", cfg.Stripe.CaptureMethod)
}
