package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromConfig compiles a raw Config into an immutable Lexicon.
func FromConfig(cfg Config) (*Lexicon, error) {
	return build(cfg)
}

// LoadFile reads a JSON lexicon config from path and compiles it. Fields left
// empty in the file fall back to the built-in defaults, so a deployment can
// override just the keyword lists without restating every pattern.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}

	lex, err := build(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile lexicon from %s: %w", path, err)
	}
	return lex, nil
}
