package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone    = "UTC"
	configPathEnv      = "ARTICLE_ALLOCATOR_CONFIG"
	databaseDSNEnv     = "DATABASE_DSN"
	submissionURLEnv   = "SUBMISSION_WEBHOOK_URL"
	submissionTokenEnv = "SUBMISSION_TOKEN"
	emailTokenEnv      = "EMAIL_WEBHOOK_TOKEN"
	allocationMethEnv  = "ALLOCATION_METHOD"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Submission SubmissionConfig `yaml:"submission"`
	Allocation AllocationConfig `yaml:"allocation"`
	Email      EmailConfig      `yaml:"email"`
	Portal     PortalConfig     `yaml:"portal"`
	Logging    LoggingConfig    `yaml:"logging"`
	Sources    []SourceConfig   `yaml:"sources"`
}

// DatabaseConfig describes Postgres connection details for the
// handled-articles store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SubmissionConfig wires the webhook the allocation table is posted to.
type SubmissionConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
	Token      string `yaml:"token"`
}

// AllocationConfig carries the default form state for a run.
type AllocationConfig struct {
	Method   string             `yaml:"method"`
	Timezone string             `yaml:"timezone"`
	Team     []TeamMemberConfig `yaml:"team"`
	location *time.Location     `yaml:"-"`
}

// Location resolves the allocation timezone string to a time.Location.
func (a AllocationConfig) Location() *time.Location {
	if a.location != nil {
		return a.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// TeamMemberConfig is one person's default requested article count.
type TeamMemberConfig struct {
	Name     string `yaml:"name"`
	Articles int    `yaml:"articles"`
}

// EmailConfig wires the mail webhook credentials.
type EmailConfig struct {
	Token string `yaml:"token"`
}

// PortalConfig describes how to isolate article text on portal pages.
type PortalConfig struct {
	ContentSelector string `yaml:"contentSelector"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes a single raw-text source with its fetcher strategy.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Fetcher string            `yaml:"fetcher"`
	URL     string            `yaml:"url"`
	Role    string            `yaml:"role"`
	Options map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(submissionURLEnv); v != "" {
		c.Submission.WebhookURL = v
	}

	if v := os.Getenv(submissionTokenEnv); v != "" {
		c.Submission.Token = v
	}

	if v := os.Getenv(emailTokenEnv); v != "" {
		c.Email.Token = v
	}

	if v := os.Getenv(allocationMethEnv); v != "" {
		c.Allocation.Method = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Allocation.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Allocation.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Submission.WebhookURL != "" {
		base.Submission.WebhookURL = override.Submission.WebhookURL
	}
	if override.Submission.Token != "" {
		base.Submission.Token = override.Submission.Token
	}

	if override.Allocation.Method != "" {
		base.Allocation.Method = override.Allocation.Method
	}
	if override.Allocation.Timezone != "" {
		base.Allocation.Timezone = override.Allocation.Timezone
	}
	if len(override.Allocation.Team) > 0 {
		base.Allocation.Team = override.Allocation.Team
	}

	if override.Email.Token != "" {
		base.Email = override.Email
	}

	if override.Portal.ContentSelector != "" {
		base.Portal = override.Portal
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Database:   DatabaseConfig{DSN: ""},
		Submission: SubmissionConfig{WebhookURL: "", Token: ""},
		Allocation: AllocationConfig{
			Method:   "allocate by priority",
			Timezone: defaultTimezone,
			location: tz,
		},
		Portal:  PortalConfig{ContentSelector: "#content"},
		Logging: LoggingConfig{Level: "info"},
		Sources: []SourceConfig{
			{
				Name:    "portal-main",
				Fetcher: "portal",
				URL:     "https://portal.example.org/articles/today",
				Role:    "candidates",
			},
		},
	}
}
