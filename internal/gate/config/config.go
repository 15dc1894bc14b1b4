package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the local port the HTTP API binds to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// DBPath is the bbolt database file holding the persisted rule lists.
	DBPath string `koanf:"db_path" validate:"required"`

	// RulesPath and WhitelistPath are optional plain-text rule list files
	// used to seed or reload the store. Empty disables file loading.
	RulesPath     string `koanf:"rules_path"`
	WhitelistPath string `koanf:"whitelist_path"`

	// CacheSize bounds the per-URL match cache. Zero disables caching.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// RedirectURL is where blocked pages are sent in redirect mode.
	// Non-http(s) values fall back to a safe default at evaluation time.
	RedirectURL string `koanf:"redirect_url"`

	// RedirectDelay is the countdown in seconds before navigating away.
	// Zero means immediate.
	RedirectDelay int `koanf:"redirect_delay" validate:"gte=0"`

	// WorkHoursEnabled turns the weekly enforcement window on.
	WorkHoursEnabled bool `koanf:"workhours_enabled"`

	// WorkStart and WorkEnd bound the same-day enforcement window.
	WorkStart string `koanf:"work_start" validate:"required,clocktime"`
	WorkEnd   string `koanf:"work_end" validate:"required,clocktime"`

	// WorkDays lists enforced weekdays, 0=Sunday..6=Saturday.
	WorkDays []int `koanf:"work_days" validate:"dive,gte=0,lte=6"`

	// WorkMinutes and RestMinutes set the Pomodoro interval lengths.
	WorkMinutes int `koanf:"work_minutes" validate:"required,gte=1"`
	RestMinutes int `koanf:"rest_minutes" validate:"required,gte=1"`
}

// DEFAULT_APP_CONFIG defines the default configuration for the gate daemon.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:              "prod",
	LogLevel:         "info",
	Port:             7814,
	DBPath:           "/var/lib/pagegate/rules.db",
	CacheSize:        1000,
	RedirectURL:      "",
	RedirectDelay:    0,
	WorkHoursEnabled: false,
	WorkStart:        "09:00",
	WorkEnd:          "17:00",
	WorkDays:         []int{1, 2, 3, 4, 5},
	WorkMinutes:      25,
	RestMinutes:      5,
}

var clockTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// validClockTime validates an "HH:MM" time-of-day string.
func validClockTime(fl validator.FieldLevel) bool {
	return clockTimeRe.MatchString(fl.Field().String())
}

// envLoader loads environment variables with the prefix "GATE_", lowering
// keys and splitting space/comma separated values into slices.
// Replaceable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "GATE_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "GATE_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads default values via the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation wires the custom "clocktime" validation.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("clocktime", validClockTime)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
