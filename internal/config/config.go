package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Config holds all application configuration.
type Config struct {
	Analysis struct {
		Symbols        []string
		SMAPeriod      int
		MaxDataAgeDays int
	}
	Thresholds struct {
		QQQDanger  float64
		QQQWarning float64
		SPYBuy     float64
		SPYSell    float64
	}
	API struct {
		Provider string // "yahoo" or "alphavantage"
		APIKey   string
		BaseURL  string
		Timeout  time.Duration
	}
	Email struct {
		SMTPHost    string
		SMTPPort    int
		Username    string
		Password    string
		UseTLS      bool
		FromName    string
		FromAddress string
		ToAddresses []string
	}
	Database struct {
		SQLitePath string // empty disables the history recorder
	}
	Logging struct {
		Level string
	}
}

// Load reads config from an INI file, then applies environment variable
// overrides and defaults. A missing file is not an error: env vars and
// defaults alone can form a working configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	loadOpts := ini.LoadOptions{Loose: true, Insensitive: true}
	file, err := ini.LoadSources(loadOpts, path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	sec := func(name, key, fallback string) string {
		return file.Section(name).Key(key).MustString(fallback)
	}

	cfg.Analysis.Symbols = splitList(sec("analysis", "symbols", "SPY,QQQ,TQQQ"))
	cfg.Analysis.SMAPeriod = file.Section("analysis").Key("sma_period").MustInt(200)
	cfg.Analysis.MaxDataAgeDays = file.Section("analysis").Key("max_data_age_days").MustInt(5)

	cfg.Thresholds.QQQDanger = file.Section("thresholds").Key("qqq_danger").MustFloat64(40)
	cfg.Thresholds.QQQWarning = file.Section("thresholds").Key("qqq_warning").MustFloat64(30)
	cfg.Thresholds.SPYBuy = file.Section("thresholds").Key("spy_buy").MustFloat64(4)
	cfg.Thresholds.SPYSell = file.Section("thresholds").Key("spy_sell").MustFloat64(-3)

	cfg.API.Provider = sec("api", "provider", "yahoo")
	cfg.API.APIKey = sec("api", "api_key", "")
	cfg.API.BaseURL = sec("api", "base_url", "")
	cfg.API.Timeout = time.Duration(file.Section("api").Key("timeout_seconds").MustInt(10)) * time.Second

	cfg.Email.SMTPHost = sec("email", "smtp_host", "")
	cfg.Email.SMTPPort = file.Section("email").Key("smtp_port").MustInt(587)
	cfg.Email.Username = sec("email", "username", "")
	cfg.Email.Password = sec("email", "password", "")
	cfg.Email.UseTLS = file.Section("email").Key("use_tls").MustBool(true)
	cfg.Email.FromName = sec("email", "from_name", "StockSentry")
	cfg.Email.FromAddress = sec("email", "from_address", "")
	cfg.Email.ToAddresses = splitList(sec("email", "to_addresses", ""))

	cfg.Database.SQLitePath = sec("database", "sqlite_path", "")
	cfg.Logging.Level = sec("logging", "level", "info")

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the INI file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCK_SYMBOLS"); v != "" {
		cfg.Analysis.Symbols = splitList(v)
	}
	if v := os.Getenv("SMA_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.SMAPeriod = n
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.API.Provider = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = n
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Email.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.FromAddress = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Email.ToAddresses = splitList(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the settings every run needs, email excluded: a dry run
// never dials SMTP, so email settings are checked separately.
func (c *Config) Validate() error {
	if len(c.Analysis.Symbols) == 0 {
		return fmt.Errorf("analysis.symbols is required")
	}
	if c.Analysis.SMAPeriod <= 0 {
		return fmt.Errorf("analysis.sma_period must be positive")
	}
	if c.API.Provider != "yahoo" && c.API.Provider != "alphavantage" {
		return fmt.Errorf("api.provider must be yahoo or alphavantage, got %q", c.API.Provider)
	}
	if c.API.Provider == "alphavantage" && c.API.APIKey == "" {
		return fmt.Errorf("api.api_key is required for the alphavantage provider")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	if c.Thresholds.QQQWarning >= c.Thresholds.QQQDanger {
		return fmt.Errorf("thresholds.qqq_warning (%.1f) must be below thresholds.qqq_danger (%.1f)",
			c.Thresholds.QQQWarning, c.Thresholds.QQQDanger)
	}
	if c.Thresholds.SPYSell >= c.Thresholds.SPYBuy {
		return fmt.Errorf("thresholds.spy_sell (%.1f) must be below thresholds.spy_buy (%.1f)",
			c.Thresholds.SPYSell, c.Thresholds.SPYBuy)
	}
	return nil
}

// ValidateEmail checks the settings needed to actually deliver mail.
func (c *Config) ValidateEmail() error {
	if c.Email.SMTPHost == "" {
		return fmt.Errorf("email.smtp_host is required")
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("email.smtp_port %d is out of range", c.Email.SMTPPort)
	}
	if c.Email.FromAddress == "" {
		return fmt.Errorf("email.from_address is required")
	}
	if len(c.Email.ToAddresses) == 0 {
		return fmt.Errorf("email.to_addresses is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
