package config

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %q", cfg.LogLevel)
	}
	if cfg.Port != 7814 {
		t.Errorf("expected Port=7814, got %d", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/pagegate/rules.db" {
		t.Errorf("expected default DBPath, got %q", cfg.DBPath)
	}
	if cfg.CacheSize != 1000 {
		t.Errorf("expected CacheSize=1000, got %d", cfg.CacheSize)
	}
	if cfg.WorkHoursEnabled {
		t.Error("expected WorkHoursEnabled=false by default")
	}
	if cfg.WorkStart != "09:00" || cfg.WorkEnd != "17:00" {
		t.Errorf("expected default window 09:00-17:00, got %s-%s", cfg.WorkStart, cfg.WorkEnd)
	}
	wantDays := []int{1, 2, 3, 4, 5}
	if len(cfg.WorkDays) != len(wantDays) {
		t.Errorf("expected WorkDays length %d, got %d", len(wantDays), len(cfg.WorkDays))
	}
	if cfg.WorkMinutes != 25 || cfg.RestMinutes != 5 {
		t.Errorf("expected 25/5 pomodoro defaults, got %d/%d", cfg.WorkMinutes, cfg.RestMinutes)
	}
}

func TestLoad_ValidOverrides(t *testing.T) {
	t.Setenv("GATE_ENV", "dev")
	t.Setenv("GATE_LOG_LEVEL", "debug")
	t.Setenv("GATE_PORT", "9000")
	t.Setenv("GATE_DB_PATH", "/tmp/rules.db")
	t.Setenv("GATE_WORK_DAYS", "0,6")
	t.Setenv("GATE_WORK_START", "08:30")
	t.Setenv("GATE_WORK_END", "16:30")
	t.Setenv("GATE_REDIRECT_URL", "https://example.org/blocked")
	t.Setenv("GATE_REDIRECT_DELAY", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "dev" || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/rules.db" {
		t.Errorf("expected DBPath override, got %q", cfg.DBPath)
	}
	if len(cfg.WorkDays) != 2 || cfg.WorkDays[0] != 0 || cfg.WorkDays[1] != 6 {
		t.Errorf("expected WorkDays [0 6], got %v", cfg.WorkDays)
	}
	if cfg.WorkStart != "08:30" || cfg.WorkEnd != "16:30" {
		t.Errorf("expected window 08:30-16:30, got %s-%s", cfg.WorkStart, cfg.WorkEnd)
	}
	if cfg.RedirectURL != "https://example.org/blocked" || cfg.RedirectDelay != 5 {
		t.Errorf("redirect overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "GATE_ENV", "staging"},
		{"bad log level", "GATE_LOG_LEVEL", "verbose"},
		{"bad port", "GATE_PORT", "99999"},
		{"bad work start", "GATE_WORK_START", "9am"},
		{"bad work end", "GATE_WORK_END", "24:00"},
		{"bad work day", "GATE_WORK_DAYS", "8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_EnvLoaderError(t *testing.T) {
	orig := envLoader
	defer func() { envLoader = orig }()
	envLoader = func(k *koanf.Koanf) error { return errors.New("boom") }

	if _, err := Load(); err == nil {
		t.Error("expected error when env loading fails")
	}
}

func TestLoad_RegisterValidationError(t *testing.T) {
	orig := registerValidation
	defer func() { registerValidation = orig }()
	registerValidation = func(v *validator.Validate) error { return errors.New("boom") }

	if _, err := Load(); err == nil {
		t.Error("expected error when validation registration fails")
	}
}

func TestValidClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"09:00", true},
		{"9:05", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"noon", false},
	}
	for _, tc := range cases {
		if got := clockTimeRe.MatchString(tc.in); got != tc.want {
			t.Errorf("clocktime %q = %v, want %v", tc.in, got, tc.want)
		}
	}
}
