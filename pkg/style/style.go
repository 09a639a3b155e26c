// Package style loads named widget styles from YAML sheets. A style is a
// bag of visual attributes an application resolves by name at build time;
// colors accept SVG 1.1 names and hex notation.
package style

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/layout"
)

// Style is a resolved set of visual attributes. Zero values mean "unset";
// widgets fall back to their own defaults.
type Style struct {
	Color      graphics.Color
	Background graphics.Color
	Insets     layout.EdgeInsets
	Spacing    float64
	Width      float64
	Height     float64
	Flex       int
	Axis       layout.Axis
}

// Sheet is a named collection of styles.
type Sheet struct {
	styles map[string]Style
}

// Get returns the named style; the zero Style when absent.
func (s *Sheet) Get(name string) (Style, bool) {
	style, ok := s.styles[name]
	return style, ok
}

// Names returns how many styles the sheet holds.
func (s *Sheet) Len() int { return len(s.styles) }

// Load reads a style sheet from disk.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap("style.Load", errors.KindConfig, err)
	}
	return Parse(data)
}

// Parse decodes a style sheet document:
//
//	styles:
//	  card:
//	    background: slategray
//	    insets: 8
//	    width: 240
//	  row:
//	    axis: horizontal
//	    spacing: 4
func Parse(data []byte) (*Sheet, error) {
	var doc struct {
		Styles map[string]styleEntry `yaml:"styles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap("style.Parse", errors.KindConfig, err)
	}

	sheet := &Sheet{styles: make(map[string]Style, len(doc.Styles))}
	for name, entry := range doc.Styles {
		style, err := entry.resolve()
		if err != nil {
			return nil, errors.Wrap("style.Parse", errors.KindConfig,
				fmt.Errorf("style %q: %w", name, err))
		}
		sheet.styles[name] = style
	}
	return sheet, nil
}

type styleEntry struct {
	Color      string      `yaml:"color,omitempty"`
	Background string      `yaml:"background,omitempty"`
	Insets     insetsEntry `yaml:"insets,omitempty"`
	Spacing    float64     `yaml:"spacing,omitempty"`
	Width      float64     `yaml:"width,omitempty"`
	Height     float64     `yaml:"height,omitempty"`
	Flex       int         `yaml:"flex,omitempty"`
	Axis       string      `yaml:"axis,omitempty"`
}

func (e styleEntry) resolve() (Style, error) {
	style := Style{
		Insets:  e.Insets.insets,
		Spacing: e.Spacing,
		Width:   e.Width,
		Height:  e.Height,
		Flex:    e.Flex,
	}
	var err error
	if e.Color != "" {
		if style.Color, err = ParseColor(e.Color); err != nil {
			return Style{}, err
		}
	}
	if e.Background != "" {
		if style.Background, err = ParseColor(e.Background); err != nil {
			return Style{}, err
		}
	}
	switch e.Axis {
	case "", "vertical":
		style.Axis = layout.AxisVertical
	case "horizontal":
		style.Axis = layout.AxisHorizontal
	default:
		return Style{}, fmt.Errorf("axis must be \"horizontal\" or \"vertical\" (got %q)", e.Axis)
	}
	return style, nil
}

// insetsEntry accepts either a single number (uniform insets) or a
// left/top/right/bottom mapping.
type insetsEntry struct {
	insets layout.EdgeInsets
}

func (e *insetsEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		uniform, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("insets: %w", err)
		}
		e.insets = layout.EdgeInsetsAll(uniform)
		return nil
	}
	var sides struct {
		Left   float64 `yaml:"left"`
		Top    float64 `yaml:"top"`
		Right  float64 `yaml:"right"`
		Bottom float64 `yaml:"bottom"`
	}
	if err := value.Decode(&sides); err != nil {
		return fmt.Errorf("insets: %w", err)
	}
	e.insets = layout.EdgeInsets{
		Left: sides.Left, Top: sides.Top, Right: sides.Right, Bottom: sides.Bottom,
	}
	return nil
}

// ParseColor resolves an SVG 1.1 color name ("slategray"), a #RRGGBB hex
// triple, or a #AARRGGBB hex quad.
func ParseColor(name string) (graphics.Color, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if hex, ok := strings.CutPrefix(name, "#"); ok {
		value, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", name, err)
		}
		switch len(hex) {
		case 6:
			return graphics.Color(0xFF000000 | uint32(value)), nil
		case 8:
			return graphics.Color(uint32(value)), nil
		default:
			return 0, fmt.Errorf("color %q: want 6 or 8 hex digits", name)
		}
	}
	if rgba, ok := colornames.Map[name]; ok {
		return graphics.RGBA8(rgba.R, rgba.G, rgba.B, rgba.A), nil
	}
	return 0, fmt.Errorf("unknown color %q", name)
}
