// Package config reads the optional loom.yaml an embedder ships next to
// its binary: window geometry, scroll tuning, the style sheet location,
// and an engine version pin.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/layout"
)

// Version is the engine's own release version, matched against the
// engine.min_version pin.
const Version = "v0.3.0"

// FileName is the configuration file looked up in the project root.
const FileName = "loom.yaml"

// Config mirrors loom.yaml. Zero values mean "use the default".
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
	Window WindowConfig `yaml:"window"`
	Scroll ScrollConfig `yaml:"scroll"`
	Style  StyleConfig  `yaml:"style"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	ID   string `yaml:"id,omitempty"`
}

// EngineConfig pins engine versions.
type EngineConfig struct {
	// Version records the engine version the app was developed against.
	Version string `yaml:"version,omitempty"`

	// MinVersion refuses to start under an older engine.
	MinVersion string `yaml:"min_version,omitempty"`
}

// WindowConfig sets the initial surface geometry.
type WindowConfig struct {
	Width            float64 `yaml:"width,omitempty"`
	Height           float64 `yaml:"height,omitempty"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio,omitempty"`
}

// ScrollConfig tunes viewport caching.
type ScrollConfig struct {
	// CacheExtent is how far past the visible region slivers stay laid
	// out; interpreted per CacheExtentStyle.
	CacheExtent float64 `yaml:"cache_extent,omitempty"`

	// CacheExtentStyle is "pixel" (default) or "viewport".
	CacheExtentStyle string `yaml:"cache_extent_style,omitempty"`
}

// StyleConfig points at the style sheet.
type StyleConfig struct {
	File string `yaml:"file,omitempty"`
}

// Resolved is a Config with defaults filled in and values validated.
type Resolved struct {
	Root             string
	AppName          string
	AppID            string
	WindowWidth      float64
	WindowHeight     float64
	DevicePixelRatio float64
	CacheExtent      float64
	CacheExtentStyle layout.CacheExtentStyle
	StyleFile        string
}

// LoadOptional reads loom.yaml from dir if present; a missing file is an
// empty configuration, not an error.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrap("config.LoadOptional", errors.KindConfig, err)
	}
	return Parse(data)
}

// Parse decodes a loom.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap("config.Parse", errors.KindConfig,
			fmt.Errorf("parse %s: %w", FileName, err))
	}
	return &cfg, nil
}

// Resolve loads loom.yaml from dir (if present), applies defaults, and
// validates the result.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	resolved.Root = dir
	return resolved, nil
}

// Resolve applies defaults and validates.
func (c *Config) Resolve() (*Resolved, error) {
	if err := c.checkEngineVersion(); err != nil {
		return nil, err
	}

	r := &Resolved{
		AppName:          strings.TrimSpace(c.App.Name),
		AppID:            strings.TrimSpace(c.App.ID),
		WindowWidth:      c.Window.Width,
		WindowHeight:     c.Window.Height,
		DevicePixelRatio: c.Window.DevicePixelRatio,
		CacheExtent:      c.Scroll.CacheExtent,
		StyleFile:        strings.TrimSpace(c.Style.File),
	}
	if r.AppName == "" {
		r.AppName = "loom_app"
	}
	if r.WindowWidth <= 0 {
		r.WindowWidth = 800
	}
	if r.WindowHeight <= 0 {
		r.WindowHeight = 600
	}
	if r.DevicePixelRatio <= 0 {
		r.DevicePixelRatio = 1
	}
	if r.CacheExtent < 0 {
		return nil, configErr("scroll.cache_extent must not be negative (got %v)", c.Scroll.CacheExtent)
	}

	switch strings.TrimSpace(c.Scroll.CacheExtentStyle) {
	case "", "pixel":
		r.CacheExtentStyle = layout.CacheExtentStylePixel
	case "viewport":
		r.CacheExtentStyle = layout.CacheExtentStyleViewport
	default:
		return nil, configErr("scroll.cache_extent_style must be \"pixel\" or \"viewport\" (got %q)",
			c.Scroll.CacheExtentStyle)
	}

	if r.AppID != "" {
		if err := validateAppID(r.AppID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *Config) checkEngineVersion() error {
	if v := strings.TrimSpace(c.Engine.Version); v != "" && !semver.IsValid(v) {
		return configErr("engine.version %q is not a valid semantic version", v)
	}
	min := strings.TrimSpace(c.Engine.MinVersion)
	if min == "" {
		return nil
	}
	if !semver.IsValid(min) {
		return configErr("engine.min_version %q is not a valid semantic version", min)
	}
	if semver.Compare(Version, min) < 0 {
		return configErr("engine %s is older than required min_version %s", Version, min)
	}
	return nil
}

func validateAppID(appID string) error {
	if !strings.Contains(appID, ".") {
		return configErr("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range strings.Split(appID, ".") {
		if segment == "" {
			return configErr("app.id contains an empty segment (%q)", appID)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return configErr("app.id segments cannot start with a digit (%q)", appID)
		}
	}
	// Reuse the import-path character rules for the segment contents.
	if err := module.CheckImportPath(strings.ReplaceAll(appID, ".", "/")); err != nil {
		return configErr("app.id %q is not a valid identifier: %v", appID, err)
	}
	return nil
}

func configErr(format string, args ...any) error {
	return errors.Wrap("config.Resolve", errors.KindConfig, fmt.Errorf(format, args...))
}
