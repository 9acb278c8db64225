package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./guidelint.db"
	} `yaml:"database"`

	Scan struct {
		Sources           []string `yaml:"sources"`            // ["./docs"]
		RulePacks         []string `yaml:"rule_packs"`         // extra YAML rule packs
		SeverityThreshold string   `yaml:"severity_threshold"` // LOW|MEDIUM|HIGH
		DisabledRules     []string `yaml:"disabled_rules"`
	} `yaml:"scan"`

	Commit struct {
		SubjectLimit int `yaml:"subject_limit"` // 50
		WrapColumn   int `yaml:"wrap_column"`   // 72
	} `yaml:"commit"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Server struct {
		Addr            string   `yaml:"addr"` // ":8080"
		AllowedOrigins  []string `yaml:"allowed_origins"`
		SessionDuration string   `yaml:"session_duration"` // "12h"
	} `yaml:"server"`

	Logging Logging `yaml:"logging"`
}

// Logging selects the slog handler for the process.
type Logging struct {
	Format string `yaml:"format"` // "json"|"text"
	Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./guidelint.db"
	c.Scan.SeverityThreshold = "LOW"
	c.Commit.SubjectLimit = 50
	c.Commit.WrapColumn = 72
	c.Reporting.OutDir = "./reports"
	c.Server.Addr = ":8080"
	c.Server.SessionDuration = "12h"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("GUIDELINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("GUIDELINT_SEVERITY"); v != "" {
		c.Scan.SeverityThreshold = v
	}
	if v := os.Getenv("GUIDELINT_SUBJECT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Commit.SubjectLimit = n
		}
	}
	if v := os.Getenv("GUIDELINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("GUIDELINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GUIDELINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("GUIDELINT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return c, nil
}
