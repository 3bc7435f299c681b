// Package config loads site settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/cyber-portfolio/internal/effects"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Admin   AdminConfig   `yaml:"admin"`
	Effects EffectsConfig `yaml:"effects"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	TemplateGlob string `yaml:"templateGlob"`
	StaticDir    string `yaml:"staticDir"`
	ImagesDir    string `yaml:"imagesDir"`
	ContentPath  string `yaml:"contentPath"`
	DatabasePath string `yaml:"databasePath"`
}

// SMTPConfig is the contact form transport
type SMTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	To   string `yaml:"to"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// EffectsConfig holds the animation tunables. The rain reset chance and the pulse
// duration varied between page variants, so both live here rather than in code.
type EffectsConfig struct {
	Phrases       []string      `yaml:"phrases"`
	TypeSpeed     time.Duration `yaml:"typeSpeed"`
	DeleteSpeed   time.Duration `yaml:"deleteSpeed"`
	HoldDelay     time.Duration `yaml:"holdDelay"`
	RainInterval  time.Duration `yaml:"rainInterval"`
	GlyphSize     int           `yaml:"glyphSize"`
	FadeAlpha     float64       `yaml:"fadeAlpha"`
	ResetChance   float64       `yaml:"resetChance"`
	Alphabet      string        `yaml:"alphabet"`
	PulseDuration time.Duration `yaml:"pulseDuration"`
}

// Default returns development defaults
func Default() *Config {
	rain := effects.DefaultRainConfig()
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			TemplateGlob: "templates/*",
			StaticDir:    "./static",
			ImagesDir:    "./images",
			ContentPath:  "data/portfolio-data.json",
			DatabasePath: "portfolio.db",
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Effects: EffectsConfig{
			TypeSpeed:     120 * time.Millisecond,
			HoldDelay:     2500 * time.Millisecond,
			RainInterval:  rain.Interval,
			GlyphSize:     rain.GlyphSize,
			FadeAlpha:     rain.FadeAlpha,
			ResetChance:   rain.ResetChance,
			Alphabet:      rain.Alphabet,
			PulseDuration: effects.DefaultPulseDuration,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (optional),
// then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.ContentPath, "CONTENT_PATH")
	setString(&c.Server.DatabasePath, "DATABASE_PATH")
	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Pass, "SMTP_PASS")
	setString(&c.SMTP.To, "TO_EMAIL")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")

	if v := os.Getenv("RAIN_RESET_CHANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RAIN_RESET_CHANCE %q: %w", v, err)
		}
		c.Effects.ResetChance = f
	}
	if v := os.Getenv("PULSE_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PULSE_DURATION %q: %w", v, err)
		}
		c.Effects.PulseDuration = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects settings the effects engine cannot run with
func (c *Config) Validate() error {
	e := c.Effects
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if e.TypeSpeed <= 0 {
		errs = append(errs, fmt.Errorf("effects.typeSpeed must be positive, got %v", e.TypeSpeed))
	}
	if e.DeleteSpeed < 0 {
		errs = append(errs, fmt.Errorf("effects.deleteSpeed must not be negative, got %v", e.DeleteSpeed))
	}
	if e.HoldDelay <= 0 {
		errs = append(errs, fmt.Errorf("effects.holdDelay must be positive, got %v", e.HoldDelay))
	}
	if e.RainInterval <= 0 {
		errs = append(errs, fmt.Errorf("effects.rainInterval must be positive, got %v", e.RainInterval))
	}
	if e.GlyphSize <= 0 {
		errs = append(errs, fmt.Errorf("effects.glyphSize must be positive, got %d", e.GlyphSize))
	}
	if e.FadeAlpha < 0 || e.FadeAlpha > 1 {
		errs = append(errs, fmt.Errorf("effects.fadeAlpha must be within [0,1], got %v", e.FadeAlpha))
	}
	if e.ResetChance < 0 || e.ResetChance > 1 {
		errs = append(errs, fmt.Errorf("effects.resetChance must be within [0,1], got %v", e.ResetChance))
	}
	if e.PulseDuration <= 0 {
		errs = append(errs, fmt.Errorf("effects.pulseDuration must be positive, got %v", e.PulseDuration))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// CyclerOptions maps the typewriter settings onto the effects engine
func (e EffectsConfig) CyclerOptions() effects.CyclerOptions {
	return effects.CyclerOptions{
		Speed:       e.TypeSpeed,
		Delay:       e.HoldDelay,
		DeleteSpeed: e.DeleteSpeed,
	}
}

// RainConfig maps the rain settings onto the effects engine
func (e EffectsConfig) RainConfig() effects.RainConfig {
	return effects.RainConfig{
		GlyphSize:   e.GlyphSize,
		Alphabet:    e.Alphabet,
		FadeAlpha:   e.FadeAlpha,
		ResetChance: e.ResetChance,
		Interval:    e.RainInterval,
	}
}
