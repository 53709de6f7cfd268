package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/portfolio.yaml"

// Environment variables that override the file.
const (
	EnvLogLevel    = "PORTFOLIO_LOG_LEVEL"
	EnvMetricsAddr = "PORTFOLIO_METRICS_ADDR"
)

// Prefs holds viewer preferences. The console's "save" command writes the overlay toggles back
// through Update; fields missing from the file keep their defaults.
type Prefs struct {
	Fullscreen      bool          `yaml:"fullscreen"`
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	TargetFPS       int           `yaml:"target_fps"`
	ShowFPS         bool          `yaml:"show_fps"`
	ShowMemAlloc    bool          `yaml:"show_mem"`
	FloorVisible    bool          `yaml:"floor_visible"`
	MoveSpeed       float32       `yaml:"move_speed"`
	LookSensitivity float32       `yaml:"look_sensitivity"`
	ParticleCount   int           `yaml:"particle_count"`
	MarkerRadius    float32       `yaml:"marker_radius"`
	LoadingDelay    time.Duration `yaml:"loading_delay"`
	HelpDuration    time.Duration `yaml:"help_duration"`
	LogLevel        string        `yaml:"log_level"`
	MetricsAddr     string        `yaml:"metrics_addr,omitempty"`
	Font            string        `yaml:"font,omitempty"`
}

// Default returns default preferences: windowed 1280x720 at 60 FPS, overlays off, floor on.
func Default() Prefs {
	return Prefs{
		Fullscreen:      false,
		Width:           1280,
		Height:          720,
		TargetFPS:       60,
		ShowFPS:         false,
		ShowMemAlloc:    false,
		FloorVisible:    true,
		MoveSpeed:       0.3,
		LookSensitivity: 0.002,
		ParticleCount:   1000,
		MarkerRadius:    15,
		LoadingDelay:    2 * time.Second,
		HelpDuration:    5 * time.Second,
		LogLevel:        "info",
	}
}

// Load reads preferences from path. A missing file returns Default() and no error. A malformed
// file returns Default() together with the parse error so the caller can warn and continue.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p.normalized(), nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Update loads path, applies fn and saves the result. Only what is in the file (or the defaults)
// is rewritten, so environment and flag overrides of this run are not persisted. A malformed
// file is left untouched and its error returned.
func Update(path string, fn func(*Prefs)) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	fn(&p)
	return Save(path, p)
}

// ApplyEnv overrides fields from the environment using lookup (os.LookupEnv in production).
func (p Prefs) ApplyEnv(lookup func(string) (string, bool)) Prefs {
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		p.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		p.MetricsAddr = strings.TrimSpace(v)
	}
	return p
}

// normalized replaces out-of-range values with defaults.
func (p Prefs) normalized() Prefs {
	d := Default()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.MoveSpeed <= 0 {
		p.MoveSpeed = d.MoveSpeed
	}
	if p.LookSensitivity <= 0 {
		p.LookSensitivity = d.LookSensitivity
	}
	if p.ParticleCount < 0 {
		p.ParticleCount = d.ParticleCount
	}
	if p.MarkerRadius <= 0 {
		p.MarkerRadius = d.MarkerRadius
	}
	if p.LoadingDelay <= 0 {
		p.LoadingDelay = d.LoadingDelay
	}
	if p.HelpDuration <= 0 {
		p.HelpDuration = d.HelpDuration
	}
	if strings.TrimSpace(p.LogLevel) == "" {
		p.LogLevel = d.LogLevel
	}
	return p
}
