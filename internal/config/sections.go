package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is a display group of products (hair care, laundry care, ...).
type Section struct {
	Slug  string `yaml:"slug"`
	Label string `yaml:"label"`
}

// Sections is the configured section catalog. An empty catalog accepts
// any non-empty slug.
type Sections struct {
	Items []Section `yaml:"sections"`
}

// LoadSections reads the YAML section catalog at path. A missing file
// yields an empty (open) catalog.
func LoadSections(path string) (Sections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Sections{}, nil
		}
		return Sections{}, err
	}

	var s Sections
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Sections{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Sections{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return s, nil
}

func (s Sections) Validate() error {
	seen := make(map[string]bool, len(s.Items))
	for i, it := range s.Items {
		slug := strings.TrimSpace(it.Slug)
		if slug == "" {
			return fmt.Errorf("sections[%d]: slug is required", i)
		}
		if seen[slug] {
			return fmt.Errorf("sections[%d]: duplicate slug %q", i, slug)
		}
		seen[slug] = true
	}
	return nil
}

// Lookup resolves slug to a section. With an empty catalog every
// non-empty slug resolves to itself.
func (s Sections) Lookup(slug string) (Section, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Section{}, false
	}
	if len(s.Items) == 0 {
		return Section{Slug: slug, Label: slug}, true
	}
	for _, it := range s.Items {
		if it.Slug == slug {
			if it.Label == "" {
				it.Label = it.Slug
			}
			return it, true
		}
	}
	return Section{}, false
}
