package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"stock-tracker/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Inventory holds the upstream availability API configuration.
	Inventory InventoryConfig `mapstructure:",squash"`

	// Poller holds the interactive poller defaults.
	Poller PollerConfig `mapstructure:",squash"`

	// Mail holds the SMTP credentials used for stock alerts.
	Mail MailConfig `mapstructure:",squash"`

	// Checker holds the unattended checker options.
	Checker CheckerConfig `mapstructure:",squash"`

	// Redis holds the Redis connection used by the worker and run reports.
	Redis RedisConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy for upstream requests.
	Proxy proxy.Settings `mapstructure:",squash"`
}

// InventoryConfig describes what to track and where to ask for it.
type InventoryConfig struct {
	// APIURL is the availability endpoint without query string.
	APIURL string `mapstructure:"BESTBUY_API_URL" default:"https://www.bestbuy.ca/ecomm-api/availability/products" required:"true"`
	// SKUs is a comma separated list of tracked product identifiers.
	SKUs string `mapstructure:"INVENTORY_SKUS" default:"18391208,18391209,18391210,18391211"`
	// PostalCode is used upstream to resolve nearby stores.
	PostalCode string `mapstructure:"POSTAL_CODE" default:"V3M0B2" required:"true"`
	// Locations is a pipe separated list of store location ids.
	Locations string `mapstructure:"STORE_LOCATIONS" default:"600|134|973|961|152|994|941|147|388|899|900|952|958|705|701|318|328|450|451|501|763|796|915|13|929|133|992"`
	// CORSProxyPrefix is prepended to the encoded upstream URL by the browser fetcher.
	CORSProxyPrefix string `mapstructure:"CORS_PROXY_PREFIX" default:"https://corsproxy.io/?"`
	// ProductURLBase is the storefront product page prefix.
	ProductURLBase string `mapstructure:"PRODUCT_URL_BASE" default:"https://www.bestbuy.ca/en-ca/product/"`
	// UserAgent is sent by the direct HTTP fetcher.
	UserAgent string `mapstructure:"UPSTREAM_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
	// Timeout bounds a single upstream request. Zero leaves the transport default.
	Timeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT" default:"0s"`
}

// PollerConfig holds the interactive poller defaults.
type PollerConfig struct {
	// RefreshInterval is the countdown length in seconds.
	RefreshInterval int `mapstructure:"POLL_INTERVAL_SECONDS" default:"30"`
	// AutoRefresh enables the countdown at startup.
	AutoRefresh bool `mapstructure:"POLL_AUTO_REFRESH" default:"true"`
	// Fetcher selects the poller transport: "http" or "browser".
	Fetcher string `mapstructure:"POLL_FETCHER" default:"http"`
}

// MailConfig holds the SMTP settings for stock alerts.
type MailConfig struct {
	// Username is the SMTP login and the sender address.
	Username string `mapstructure:"EMAIL_USER"`
	// Password is the SMTP credential (an app password for Gmail).
	Password string `mapstructure:"EMAIL_PASS"`
	// To overrides the recipient. Defaults to Username.
	To string `mapstructure:"EMAIL_TO"`
	// FromName is the display name of the sender.
	FromName string `mapstructure:"EMAIL_FROM_NAME" default:"BestBuy Tracker"`
	// Host is the SMTP server.
	Host string `mapstructure:"SMTP_HOST" default:"smtp.gmail.com"`
	// Port is the SMTP submission port.
	Port int `mapstructure:"SMTP_PORT" default:"587"`
}

// HasCredentials reports whether both username and password are set.
func (m MailConfig) HasCredentials() bool {
	return m.Username != "" && m.Password != ""
}

// Recipient returns the override recipient or the sender address.
func (m MailConfig) Recipient() string {
	if m.To != "" {
		return m.To
	}
	return m.Username
}

// CheckerConfig holds the unattended checker options.
type CheckerConfig struct {
	// Secret is compared against the "secret" query parameter of the HTTP trigger.
	Secret string `mapstructure:"CHECK_SECRET"`
	// TestMode injects a synthetic available record to exercise the mail path.
	TestMode bool `mapstructure:"TEST_MODE"`
	// Cron is the asynq scheduler spec used by "worker schedule".
	Cron string `mapstructure:"CHECK_CRON" default:"*/5 * * * *"`
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	// URL has the format redis://[:password@]host[:port][/database]. Empty disables run reports.
	URL string `mapstructure:"REDIS_URL"`
	// ReportTTL is how long the last run report is kept.
	ReportTTL time.Duration `mapstructure:"REPORT_TTL" default:"24h"`
}

// SKUList returns the tracked SKUs trimmed and de-duplicated, preserving order.
func (c InventoryConfig) SKUList() []string {
	return SplitList(c.SKUs, ",")
}

// LocationList returns the store location ids.
func (c InventoryConfig) LocationList() []string {
	return SplitList(c.Locations, "|")
}

// SplitList splits s on sep, trims entries, drops empties and duplicates.
func SplitList(s, sep string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
