// Package formats provides pluggable level and pattern file parsers.
// Each parser decodes into the same document types; turning documents into
// board values is the level package's job.
package formats

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of a level file.
type Document struct {
	ID        string            `yaml:"id" toml:"id"`
	Name      string            `yaml:"name" toml:"name"`
	Size      Size              `yaml:"size" toml:"size"`
	Rule      string            `yaml:"rule,omitempty" toml:"rule"`
	Patterns  []PatternDoc      `yaml:"patterns,omitempty" toml:"patterns"`
	Setup     []PlacementDoc    `yaml:"setup,omitempty" toml:"setup"`
	Target    *TargetDoc        `yaml:"target,omitempty" toml:"target"`
	Editable  *RectDoc          `yaml:"editable,omitempty" toml:"editable"`
	Detectors []DetectorDoc     `yaml:"detectors,omitempty" toml:"detectors"`
	Metadata  map[string]string `yaml:"metadata,omitempty" toml:"metadata"`
}

// Size represents board dimensions.
type Size struct {
	W int `yaml:"w" toml:"w"`
	H int `yaml:"h" toml:"h"`
}

// PatternFile is the on-disk shape of a brush library.
type PatternFile struct {
	Patterns []PatternDoc `yaml:"patterns" toml:"patterns"`
}

// PatternDoc is a brush drawn as rows of '#' (live) and '.' (dead).
type PatternDoc struct {
	Name  string    `yaml:"name" toml:"name"`
	Rows  []string  `yaml:"rows" toml:"rows"`
	Lines []LineDoc `yaml:"lines,omitempty" toml:"lines"`
}

// LineDoc is a guidance line relative to the brush anchor.
type LineDoc struct {
	Dir    string      `yaml:"dir" toml:"dir"`
	Start  PointDoc    `yaml:"start" toml:"start"`
	Length LengthToken `yaml:"length" toml:"length"`
	Speed  int         `yaml:"speed" toml:"speed"`
}

// PointDoc is an x/y pair.
type PointDoc struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

// PlacementDoc is one setup entry.
type PlacementDoc struct {
	X        int    `yaml:"x" toml:"x"`
	Y        int    `yaml:"y" toml:"y"`
	Pattern  string `yaml:"pattern" toml:"pattern"`
	Rotation int    `yaml:"rotation,omitempty" toml:"rotation"`
}

// TargetDoc is the shape the player has to build, drawn like a brush and
// anchored at x/y.
type TargetDoc struct {
	X    int      `yaml:"x" toml:"x"`
	Y    int      `yaml:"y" toml:"y"`
	Rows []string `yaml:"rows" toml:"rows"`
}

// RectDoc is a rectangle in cells.
type RectDoc struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
	W int `yaml:"w" toml:"w"`
	H int `yaml:"h" toml:"h"`
}

// DetectorDoc is a detector's cells and initial display value.
type DetectorDoc struct {
	Label string     `yaml:"label,omitempty" toml:"label"`
	Cells []PointDoc `yaml:"cells" toml:"cells"`
	Value int        `yaml:"value,omitempty" toml:"value"`
}

// LengthToken is a line length as written: a number or an open-ended
// sentinel such as "inf". Both formats may write it bare or quoted.
type LengthToken string

// UnmarshalYAML accepts any scalar.
func (l *LengthToken) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: length must be a scalar", node.Line)
	}
	*l = LengthToken(node.Value)
	return nil
}

// UnmarshalTOML accepts integers and strings.
func (l *LengthToken) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case int64:
		*l = LengthToken(strconv.FormatInt(val, 10))
	case string:
		*l = LengthToken(val)
	default:
		return fmt.Errorf("length must be an integer or a string, got %T", v)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Decode routes level data to the parser for ext.
func Decode(data []byte, ext string) (Document, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Document{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// DecodePatterns routes brush library data to the parser for ext.
func DecodePatterns(data []byte, ext string) (PatternFile, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParsePatternsYAML(data)
	case ".toml":
		return ParsePatternsTOML(data)
	default:
		return PatternFile{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
