// Package config loads devsalary settings from defaults, an optional config
// file, a .env file and the environment, using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fr4nk3nst1ner/devsalary/internal/scraper"
)

// ErrMissingCredentials is returned when SuperJob is enabled without a secret key
var ErrMissingCredentials = errors.New("missing SuperJob credentials")

// DefaultLanguages is the language list the report covers unless overridden
var DefaultLanguages = []string{
	"JavaScript", "Java", "Python",
	"Ruby", "PHP", "C++", "C#",
	"C", "Go", "Shell",
}

// Config captures every setting the run needs
type Config struct {
	Languages  []string         `mapstructure:"languages"`
	Sources    []string         `mapstructure:"sources"`
	Debug      bool             `mapstructure:"debug"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	HeadHunter HeadHunterConfig `mapstructure:"headhunter"`
	SuperJob   SuperJobConfig   `mapstructure:"superjob"`
}

// HTTPConfig configures the shared HTTP client
type HTTPConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	Proxy           string        `mapstructure:"proxy"`
	RequestInterval time.Duration `mapstructure:"request_interval"`
}

// HeadHunterConfig holds api.hh.ru settings
type HeadHunterConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	UserAgent        string `mapstructure:"user_agent"`
	Area             string `mapstructure:"area"`
	ProfessionalRole string `mapstructure:"professional_role"`
	Period           int    `mapstructure:"period"`
	PerPage          int    `mapstructure:"per_page"`
	Title            string `mapstructure:"title"`
}

// SuperJobConfig holds api.superjob.ru settings and credentials
type SuperJobConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	SecretKey   string `mapstructure:"secret_key"`
	AccessToken string `mapstructure:"access_token"`
	Town        string `mapstructure:"town"`
	Catalogues  string `mapstructure:"catalogues"`
	Period      int    `mapstructure:"period"`
	Count       int    `mapstructure:"count"`
	PageCap     int    `mapstructure:"page_cap"`
	Title       string `mapstructure:"title"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("languages", DefaultLanguages)
	v.SetDefault("sources", scraper.SourceNames)
	v.SetDefault("debug", false)

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.proxy", "")
	v.SetDefault("http.request_interval", "0s")

	v.SetDefault("headhunter.base_url", "https://api.hh.ru/vacancies")
	v.SetDefault("headhunter.user_agent", "devsalary/1.0 (+https://github.com/fr4nk3nst1ner/devsalary)")
	v.SetDefault("headhunter.area", "1")
	v.SetDefault("headhunter.professional_role", "96")
	v.SetDefault("headhunter.period", 30)
	v.SetDefault("headhunter.per_page", 100)
	v.SetDefault("headhunter.title", "HeadHunter Moscow")

	v.SetDefault("superjob.base_url", "https://api.superjob.ru/2.0/vacancies/")
	v.SetDefault("superjob.secret_key", "")
	v.SetDefault("superjob.access_token", "")
	v.SetDefault("superjob.town", "4")
	v.SetDefault("superjob.catalogues", "48")
	v.SetDefault("superjob.period", 30)
	v.SetDefault("superjob.count", 20)
	v.SetDefault("superjob.page_cap", scraper.DefaultSuperJobPageCap)
	v.SetDefault("superjob.title", "SuperJob Moscow")
}

// NewViper returns a Viper instance with defaults, env bindings and, when
// configFile is set, that file. Without configFile it looks for
// devsalary.yaml in the working directory and $HOME/.devsalary.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("DEVSALARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare SECRET_KEY / ACCESS_TOKEN are accepted for existing .env files.
	if err := v.BindEnv("superjob.secret_key", "DEVSALARY_SUPERJOB_SECRET_KEY", "SECRET_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("superjob.access_token", "DEVSALARY_SUPERJOB_ACCESS_TOKEN", "ACCESS_TOKEN"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("devsalary")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.devsalary")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the Config from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail mid-run
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	for _, s := range c.Sources {
		if !scraper.IsValidSource(s) {
			return fmt.Errorf("invalid source %q, must be one of: %s", s, strings.Join(scraper.SourceNames, ", "))
		}
	}
	if c.HasSource(scraper.SourceSuperJob) && c.SuperJob.SecretKey == "" {
		return fmt.Errorf("%w: set SECRET_KEY or superjob.secret_key", ErrMissingCredentials)
	}
	if c.SuperJob.PageCap < 0 {
		return fmt.Errorf("superjob.page_cap must not be negative, got %d", c.SuperJob.PageCap)
	}
	return nil
}

// HasSource reports whether name is among the enabled sources
func (c *Config) HasSource(name string) bool {
	for _, s := range c.Sources {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// HeadHunterSource converts the section into scraper settings
func (c *Config) HeadHunterSource() scraper.HeadHunterConfig {
	return scraper.HeadHunterConfig{
		BaseURL:          c.HeadHunter.BaseURL,
		UserAgent:        c.HeadHunter.UserAgent,
		Area:             c.HeadHunter.Area,
		ProfessionalRole: c.HeadHunter.ProfessionalRole,
		PeriodDays:       c.HeadHunter.Period,
		PerPage:          c.HeadHunter.PerPage,
	}
}

// SuperJobSource converts the section into scraper settings
func (c *Config) SuperJobSource() scraper.SuperJobConfig {
	return scraper.SuperJobConfig{
		BaseURL:     c.SuperJob.BaseURL,
		SecretKey:   c.SuperJob.SecretKey,
		AccessToken: c.SuperJob.AccessToken,
		Town:        c.SuperJob.Town,
		Catalogues:  c.SuperJob.Catalogues,
		PeriodDays:  c.SuperJob.Period,
		Count:       c.SuperJob.Count,
		PageCap:     c.SuperJob.PageCap,
	}
}
