package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Config is the main configuration struct, populated from a YAML file and
// then overridden by THREADB_* environment variables and command-line flags.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Board   BoardConfig   `yaml:"board"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds http and storage settings.
type ServerConfig struct {
	Address string    `yaml:"address"`
	Port    int       `yaml:"port"`
	DBPath  string    `yaml:"db_path"`
	TLS     TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate configuration.
type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// BoardConfig holds board behavior and filesystem layout.
type BoardConfig struct {
	PageSize     int    `yaml:"page_size"`
	UploadsDir   string `yaml:"uploads_dir"`
	ThumbsDir    string `yaml:"thumbs_dir"`
	StaticDir    string `yaml:"static_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	// MaxUploadSize accepts humanized byte sizes, e.g. "5MB".
	MaxUploadSize string `yaml:"max_upload_size"`
}

// LimitsConfig holds the per-client rate limit applied to post endpoints.
// RPS <= 0 disables limiting.
type LimitsConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// PageSize returns the configured page size or the default of 10.
func (c *Config) PageSize() int {
	if c.Board.PageSize > 0 {
		return c.Board.PageSize
	}
	return 10
}

// MaxUploadBytes parses the configured upload cap, defaulting to 5MB.
func (c *Config) MaxUploadBytes() int64 {
	s := strings.TrimSpace(c.Board.MaxUploadSize)
	if s == "" {
		return 5 << 20
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 5 << 20
	}
	return int64(n)
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Board.UploadsDir == "" {
		c.Board.UploadsDir = "./uploads"
	}
	if c.Board.ThumbsDir == "" {
		c.Board.ThumbsDir = "./thumbs"
	}
	if c.Board.StaticDir == "" {
		c.Board.StaticDir = "./static"
	}
	if c.Board.TemplatesDir == "" {
		c.Board.TemplatesDir = "./templates"
	}
}

// Flags holds parsed command-line flag values and which were set.
type Flags struct {
	Addr   string
	DB     string
	Config string
	Set    map[string]bool
}

// ParseFlags defines and parses command-line flags and records which were
// explicitly set so they can win over env and config file values.
func ParseFlags() Flags {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return Flags{Addr: *addrPtr, DB: *dbPtr, Config: *cfgPtr, Set: set}
}

// ApplyEnvOverrides applies THREADB_* environment variables onto cfg and
// reports whether any were used.
func ApplyEnvOverrides(cfg *Config) bool {
	used := false
	if v := os.Getenv("THREADB_ADDR"); v != "" {
		used = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("THREADB_DB_PATH"); v != "" {
		used = true
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("THREADB_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			used = true
			cfg.Board.PageSize = n
		}
	}
	if v := os.Getenv("THREADB_UPLOADS_DIR"); v != "" {
		used = true
		cfg.Board.UploadsDir = v
	}
	if v := os.Getenv("THREADB_MAX_UPLOAD_SIZE"); v != "" {
		used = true
		cfg.Board.MaxUploadSize = v
	}
	if v := os.Getenv("THREADB_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			used = true
			cfg.Limits.RPS = f
		}
	}
	if v := os.Getenv("THREADB_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			used = true
			cfg.Limits.Burst = n
		}
	}
	return used
}

// LoadEffective merges the config file (when present), env overrides and
// defaults. A missing config file is not an error; a malformed one is.
func LoadEffective(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &Config{}
			cfg.applyDefaults()
		} else {
			return nil, false, err
		}
	}
	envUsed := ApplyEnvOverrides(cfg)
	return cfg, envUsed, nil
}
