package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file.
func ParseTOML(data []byte) (Document, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Document{}, fmt.Errorf("toml decode: %w", err)
	}
	return doc, nil
}

// ParsePatternsTOML parses a TOML brush library.
func ParsePatternsTOML(data []byte) (PatternFile, error) {
	var pf PatternFile
	if _, err := toml.Decode(string(data), &pf); err != nil {
		return PatternFile{}, fmt.Errorf("toml decode: %w", err)
	}
	return pf, nil
}
