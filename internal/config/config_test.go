package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
[analysis]
symbols = SPY, QQQ, TQQQ
sma_period = 150
max_data_age_days = 3

[thresholds]
qqq_danger = 45
qqq_warning = 35
spy_buy = 5
spy_sell = -4

[api]
provider = alphavantage
api_key = demo
timeout_seconds = 15

[email]
smtp_host = smtp.example.com
smtp_port = 2525
username = mailer
password = secret
use_tls = false
from_name = Sentry
from_address = sentry@example.com
to_addresses = a@example.com, b@example.com

[database]
sqlite_path = data/history.db

[logging]
level = debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleINI))
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "QQQ", "TQQQ"}, cfg.Analysis.Symbols)
	assert.Equal(t, 150, cfg.Analysis.SMAPeriod)
	assert.Equal(t, 3, cfg.Analysis.MaxDataAgeDays)

	assert.Equal(t, 45.0, cfg.Thresholds.QQQDanger)
	assert.Equal(t, 35.0, cfg.Thresholds.QQQWarning)
	assert.Equal(t, 5.0, cfg.Thresholds.SPYBuy)
	assert.Equal(t, -4.0, cfg.Thresholds.SPYSell)

	assert.Equal(t, "alphavantage", cfg.API.Provider)
	assert.Equal(t, "demo", cfg.API.APIKey)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)

	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPHost)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
	assert.False(t, cfg.Email.UseTLS)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.ToAddresses)

	assert.Equal(t, "data/history.db", cfg.Database.SQLitePath)
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateEmail())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.ini"))
	require.NoError(t, err)

	assert.Equal(t, []string{"SPY", "QQQ", "TQQQ"}, cfg.Analysis.Symbols)
	assert.Equal(t, 200, cfg.Analysis.SMAPeriod)
	assert.Equal(t, "yahoo", cfg.API.Provider)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 40.0, cfg.Thresholds.QQQDanger)
	assert.Equal(t, 30.0, cfg.Thresholds.QQQWarning)
	assert.Equal(t, 4.0, cfg.Thresholds.SPYBuy)
	assert.Equal(t, -3.0, cfg.Thresholds.SPYSell)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Empty(t, cfg.Database.SQLitePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOCK_SYMBOLS", "TQQQ")
	t.Setenv("SMA_PERIOD", "50")
	t.Setenv("SMTP_PASSWORD", "from-env")
	t.Setenv("DATA_PROVIDER", "yahoo")

	cfg, err := Load(writeConfig(t, sampleINI))
	require.NoError(t, err)

	assert.Equal(t, []string{"TQQQ"}, cfg.Analysis.Symbols)
	assert.Equal(t, 50, cfg.Analysis.SMAPeriod)
	assert.Equal(t, "from-env", cfg.Email.Password)
	assert.Equal(t, "yahoo", cfg.API.Provider)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.ini"))
	require.NoError(t, err)

	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Analysis.Symbols = nil
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Analysis.SMAPeriod = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.API.Provider = "bloomberg"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.API.Provider = "alphavantage"
	bad.API.APIKey = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Thresholds.QQQWarning = 50
	assert.Error(t, bad.Validate(), "warning above danger must fail")

	bad = *cfg
	bad.Thresholds.SPYSell = 5
	assert.Error(t, bad.Validate(), "sell above buy must fail")
}

func TestValidateEmail(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.ini"))
	require.NoError(t, err)

	// Defaults carry no SMTP host or recipients.
	assert.Error(t, cfg.ValidateEmail())

	cfg.Email.SMTPHost = "smtp.example.com"
	cfg.Email.FromAddress = "sentry@example.com"
	cfg.Email.ToAddresses = []string{"a@example.com"}
	assert.NoError(t, cfg.ValidateEmail())

	cfg.Email.SMTPPort = 0
	assert.Error(t, cfg.ValidateEmail())
}
