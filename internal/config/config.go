// Package config loads the screenwalk configuration from YAML or JSON files
// and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Drivers understood by the CLI.
const (
	DriverSim = "sim"
	DriverWDA = "wda"
)

// Config is the full harness configuration.
type Config struct {
	Driver       string        `mapstructure:"driver"`
	Device       string        `mapstructure:"device"`
	LogLevel     string        `mapstructure:"log_level"`
	Tests        []string      `mapstructure:"tests"`
	CaseTimeout  time.Duration `mapstructure:"case_timeout"`
	TestPageBase string        `mapstructure:"test_page_base"`

	// ReportsDir stores reports as JSON files when Redis is not configured.
	ReportsDir string `mapstructure:"reports_dir"`
	// Redact lists regular expressions masked in stored case errors and logs.
	Redact []string `mapstructure:"redact"`

	Wait  WaitConfig  `mapstructure:"wait"`
	WDA   WDAConfig   `mapstructure:"wda"`
	Redis RedisConfig `mapstructure:"redis"`
	Serve ServeConfig `mapstructure:"serve"`
}

// WaitConfig bounds every poll for an element or a value.
type WaitConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

// WDAConfig points at a WebDriverAgent server.
type WDAConfig struct {
	URL      string `mapstructure:"url"`
	BundleID string `mapstructure:"bundle_id"`
}

// RedisConfig enables the Redis report store and device lock when Addr is set.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	Prefix    string        `mapstructure:"prefix"`
	ReportTTL time.Duration `mapstructure:"report_ttl"`
}

// ServeConfig configures the HTTP and MCP surfaces.
type ServeConfig struct {
	Addr    string `mapstructure:"addr"`
	MCPPort int    `mapstructure:"mcp_port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Driver:      DriverSim,
		Device:      "phone",
		LogLevel:    "info",
		CaseTimeout: 2 * time.Minute,
		Wait: WaitConfig{
			Timeout:  10 * time.Second,
			Interval: 100 * time.Millisecond,
		},
		WDA: WDAConfig{
			URL:      "http://localhost:8100",
			BundleID: "org.mozilla.ios.Fennec",
		},
		Redis: RedisConfig{
			Prefix: "screenwalk:",
		},
		Serve: ServeConfig{
			Addr:    ":8080",
			MCPPort: 8081,
		},
	}
}

// WaitOptions converts the wait section for the navigator.
func (c Config) WaitOptions() wait.Options {
	return wait.Options{Timeout: c.Wait.Timeout, Interval: c.Wait.Interval}
}

// Validate checks the values the CLI depends on.
func (c Config) Validate() error {
	var errs []error
	switch c.Driver {
	case DriverSim:
		if c.Device != "phone" && c.Device != "tablet" {
			errs = append(errs, fmt.Errorf("device must be phone or tablet, got %q", c.Device))
		}
	case DriverWDA:
		if c.WDA.URL == "" {
			errs = append(errs, errors.New("wda.url is required for the wda driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	if c.Wait.Timeout <= 0 || c.Wait.Interval <= 0 {
		errs = append(errs, errors.New("wait.timeout and wait.interval must be positive"))
	}
	if c.CaseTimeout <= 0 {
		errs = append(errs, errors.New("case_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads path (YAML, or JSON by extension) over the defaults, then applies
// overrides. Override keys use dots for nesting, e.g. "wait.timeout".
// An empty path skips the file.
func Load(path string, overrides map[string]any) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	for key, v := range overrides {
		set(raw, strings.Split(key, "."), v)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func set(m map[string]any, path []string, v any) {
	if len(path) == 1 {
		m[path[0]] = v
		return
	}
	child, ok := m[path[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[path[0]] = child
	}
	set(child, path[1:], v)
}
