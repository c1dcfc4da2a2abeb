package registry

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Source describes one remote feed endpoint. The catalog is immutable for
// the lifetime of the process.
type Source struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	Category string `yaml:"category"`
}

type catalogFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadFile reads a source catalog from a YAML file. Used to override the
// built-in catalog without a code change.
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if err := validate(catalog.Sources); err != nil {
		return nil, err
	}

	return normalize(catalog.Sources), nil
}

func validate(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("source catalog is empty")
	}

	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if src.URL == "" {
			return fmt.Errorf("source at index %d: url is required", i)
		}
		if src.Name == "" {
			return fmt.Errorf("source at index %d: name is required", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[src.Name] = true
	}

	return nil
}

// normalize canonicalizes language hints (e.g. "KO", "en-US" -> "ko", "en").
// Unknown hints are passed through unchanged.
func normalize(sources []Source) []Source {
	out := make([]Source, len(sources))
	for i, src := range sources {
		if src.Language != "" {
			if tag, err := language.Parse(src.Language); err == nil {
				if base, conf := tag.Base(); conf != language.No {
					src.Language = base.String()
				}
			}
		}
		out[i] = src
	}
	return out
}
