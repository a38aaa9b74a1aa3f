// Package config loads the simulator configuration from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "draft-sim.toml"

// ArchetypeDistribution selects archetypes from the weighted distribution
// instead of a single code.
const ArchetypeDistribution = "distribution"

// Catalog sources.
const (
	SourceScryfall = "scryfall"
	SourceFile     = "file"
)

// Environment overrides.
const (
	EnvSetCode  = "DRAFT_SIM_SET_CODE"
	EnvDBPath   = "DRAFT_SIM_DB_PATH"
	EnvSeed     = "DRAFT_SIM_SEED"
	EnvLogLevel = "DRAFT_SIM_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	Catalog    CatalogConfig    `toml:"catalog"`
	Simulation SimulationConfig `toml:"simulation"`
	Storage    StorageConfig    `toml:"storage"`
	Report     ReportConfig     `toml:"report"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`

	// Archetypes override or extend the built-in archetype profiles.
	Archetypes []draft.Profile `toml:"archetypes,omitempty"`
}

// CatalogConfig controls where card data comes from.
type CatalogConfig struct {
	SetCode   string `toml:"set_code"`
	Source    string `toml:"source"`    // scryfall or file
	FilePath  string `toml:"file_path"` // JSON card list for the file source
	CacheTTL  string `toml:"cache_ttl"` // e.g. "24h"; "0s" disables the cache
	RateLimit string `toml:"rate_limit"`
	UserAgent string `toml:"user_agent"`
}

// SimulationConfig controls a batch.
type SimulationConfig struct {
	Runs      int    `toml:"runs"`
	Archetype string `toml:"archetype"` // a code, "auto" or "distribution"
	Seed      uint64 `toml:"seed"`      // 0 picks one from the clock
	Workers   int    `toml:"workers"`   // 0 or 1 runs sequentially

	Distribution map[string]float64 `toml:"distribution,omitempty"`
}

// StorageConfig controls the SQLite store.
type StorageConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ReportConfig controls output files.
type ReportConfig struct {
	OutputDir  string `toml:"output_dir"`
	PrettyJSON bool   `toml:"pretty_json"`
	Charts     bool   `toml:"charts"`
	Overwrite  bool   `toml:"overwrite"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			SetCode:   "tdm",
			Source:    SourceScryfall,
			CacheTTL:  "24h",
			RateLimit: "100ms",
			UserAgent: "Limited-Draft-Analysis/1.0",
		},
		Simulation: SimulationConfig{
			Runs:      100,
			Archetype: draft.ArchetypeAuto,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    filepath.Join("data", "draft-sim.db"),
		},
		Report: ReportConfig{
			OutputDir:  ".",
			PrettyJSON: true,
			Charts:     true,
			Overwrite:  true,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadEnv loads .env files (missing ones are skipped) and applies the
// DRAFT_SIM_* overrides. Variables already set in the process win over .env.
func (c *Config) LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	if v := os.Getenv(EnvSetCode); v != "" {
		c.Catalog.SetCode = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		c.Simulation.Seed = seed
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.SetCode) == "" {
		return fmt.Errorf("set code cannot be empty")
	}

	switch c.Catalog.Source {
	case SourceScryfall:
	case SourceFile:
		if c.Catalog.FilePath == "" {
			return fmt.Errorf("file catalog source requires file_path")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if _, err := c.GetCacheTTL(); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Catalog.CacheTTL, err)
	}
	if d, err := c.GetRateLimit(); err != nil || d <= 0 {
		return fmt.Errorf("invalid rate limit %q", c.Catalog.RateLimit)
	}

	if c.Simulation.Runs <= 0 {
		return fmt.Errorf("runs must be positive: %d", c.Simulation.Runs)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", c.Simulation.Workers)
	}
	for code, weight := range c.Simulation.Distribution {
		if weight <= 0 {
			return fmt.Errorf("distribution: weight for %s must be positive, got %v", code, weight)
		}
	}

	for _, p := range c.Archetypes {
		if draft.CodeColors(p.Code) == nil {
			return fmt.Errorf("archetypes: invalid code %q", p.Code)
		}
		if p.CreatureWeight <= 0 || p.NoncreatureWeight <= 0 {
			return fmt.Errorf("archetypes: %s creature and noncreature weights must be positive", p.Code)
		}
		if p.MinCreatures < 0 || p.MinCreatures > draft.SpellTarget {
			return fmt.Errorf("archetypes: %s min_creatures must be between 0 and %d", p.Code, draft.SpellTarget)
		}
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage path cannot be empty when storage is enabled")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// knownArchetype reports whether code names a color combination, auto or
// the distribution. Other codes are built as auto.
func knownArchetype(code string) bool {
	return code == draft.ArchetypeAuto || code == ArchetypeDistribution || draft.CodeColors(code) != nil
}

// GetCacheTTL returns the catalog cache TTL as a duration.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.CacheTTL)
}

// GetRateLimit returns the minimum delay between Scryfall requests.
func (c *Config) GetRateLimit() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.RateLimit)
}

// ArchetypeTable returns the built-in archetypes with configured overrides applied.
func (c *Config) ArchetypeTable() *draft.ArchetypeTable {
	return draft.DefaultArchetypes().With(c.Archetypes...)
}

// Selector returns the archetype selector for a batch. The distribution
// falls back to the built-in weights when none are configured.
func (c *Config) Selector(logger *slog.Logger) (draft.Selector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if c.Simulation.Archetype != ArchetypeDistribution {
		if !knownArchetype(c.Simulation.Archetype) {
			logger.Warn("unrecognized archetype, building as auto", "archetype", c.Simulation.Archetype)
		}
		return draft.Fixed(c.Simulation.Archetype), nil
	}

	weights := c.Simulation.Distribution
	if len(weights) == 0 {
		weights = draft.DefaultDistributionWeights()
	}
	for _, code := range slices.Sorted(maps.Keys(weights)) {
		if code == ArchetypeDistribution || !knownArchetype(code) {
			logger.Warn("unrecognized archetype in distribution, building as auto", "archetype", code)
		}
	}
	return draft.NewDistribution(weights, logger)
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}
