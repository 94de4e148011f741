package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Host              string
	Port              int
	AllowOrigins      []string
	LogLevel          string
	LogFile           string
	MinUploadMB       float64
	MaxUploadMB       float64
	TargetMinUploadMB float64 // target file holds one row per plant or area
	TargetMaxUploadMB float64
	MaxConcurrent     int
	AcquireTimeout    time.Duration
	// Aliases replaces the alias list of a role (key = role name, e.g. "quantity").
	Aliases map[string][]string
}

// fileConfig mirrors the optional TOML file pointed to by REPORT_CONFIG.
type fileConfig struct {
	Server struct {
		Host         string   `toml:"host"`
		Port         int      `toml:"port"`
		AllowOrigins []string `toml:"allow_origins"`
	} `toml:"server"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
	Upload struct {
		MinMB          *float64 `toml:"min_mb"`
		MaxMB          *float64 `toml:"max_mb"`
		TargetMinMB    *float64 `toml:"target_min_mb"`
		TargetMaxMB    *float64 `toml:"target_max_mb"`
		MaxConcurrent  int      `toml:"max_concurrent"`
		AcquireTimeout string   `toml:"acquire_timeout"`
	} `toml:"upload"`
	Aliases map[string][]string `toml:"aliases"`
}

func Default() Config {
	return Config{
		Host:              "127.0.0.1",
		Port:              8082,
		AllowOrigins:      []string{"*"},
		LogLevel:          "info",
		LogFile:           "logs/delivery-report.log",
		MinUploadMB:       0.5,
		MaxUploadMB:       50,
		TargetMinUploadMB: 0,
		TargetMaxUploadMB: 50,
		MaxConcurrent:     4,
		AcquireTimeout:    2 * time.Second,
	}
}

// Load builds the config: defaults, then REPORT_CONFIG file, then env vars.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("REPORT_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Server.Host != "" {
		c.Host = fc.Server.Host
	}
	if fc.Server.Port > 0 {
		c.Port = fc.Server.Port
	}
	if len(fc.Server.AllowOrigins) > 0 {
		c.AllowOrigins = fc.Server.AllowOrigins
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.File != "" {
		c.LogFile = fc.Log.File
	}
	// min bounds may be 0; max bounds must be positive
	if v := fc.Upload.MinMB; v != nil && *v >= 0 {
		c.MinUploadMB = *v
	}
	if v := fc.Upload.MaxMB; v != nil && *v > 0 {
		c.MaxUploadMB = *v
	}
	if v := fc.Upload.TargetMinMB; v != nil && *v >= 0 {
		c.TargetMinUploadMB = *v
	}
	if v := fc.Upload.TargetMaxMB; v != nil && *v > 0 {
		c.TargetMaxUploadMB = *v
	}
	if fc.Upload.MaxConcurrent > 0 {
		c.MaxConcurrent = fc.Upload.MaxConcurrent
	}
	if fc.Upload.AcquireTimeout != "" {
		d, err := time.ParseDuration(fc.Upload.AcquireTimeout)
		if err != nil {
			return fmt.Errorf("parse config %s: upload.acquire_timeout: %w", path, err)
		}
		c.AcquireTimeout = d
	}
	if len(fc.Aliases) > 0 {
		c.Aliases = fc.Aliases
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.Host = getenv("HOST", c.Host)
	c.Port = getint("PORT", c.Port)
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.AllowOrigins = strings.Split(v, ",")
	}
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getenv("LOG_FILE", c.LogFile)
	c.MinUploadMB = getfloat("MIN_UPLOAD_MB", c.MinUploadMB)
	c.MaxUploadMB = getfloat("MAX_UPLOAD_MB", c.MaxUploadMB)
	c.TargetMinUploadMB = getfloat("TARGET_MIN_UPLOAD_MB", c.TargetMinUploadMB)
	c.TargetMaxUploadMB = getfloat("TARGET_MAX_UPLOAD_MB", c.TargetMaxUploadMB)
	c.MaxConcurrent = getint("MAX_CONCURRENT_REPORTS", c.MaxConcurrent)
	if v := os.Getenv("ACQUIRE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.AcquireTimeout = d
		}
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MinUploadBytes and MaxUploadBytes convert the MB bounds of the upload size gate.
func (c Config) MinUploadBytes() int64 { return int64(c.MinUploadMB * 1024 * 1024) }
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB * 1024 * 1024) }

func (c Config) TargetMinUploadBytes() int64 { return int64(c.TargetMinUploadMB * 1024 * 1024) }
func (c Config) TargetMaxUploadBytes() int64 { return int64(c.TargetMaxUploadMB * 1024 * 1024) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return i
}

func getfloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return f
}
