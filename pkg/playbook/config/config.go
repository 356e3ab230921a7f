package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/playbook/pkg/playbook/internalerr"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the seed lists and niche tables used by field synthesis
// and variant expansion.
type Catalog struct {
	Version         int                        `yaml:"version"`
	DefaultPlatform string                     `yaml:"default_platform" validate:"required"`
	BestPractices   []string                   `yaml:"best_practices" validate:"max=5"`
	CommonMistakes  []string                   `yaml:"common_mistakes" validate:"max=5"`
	Platforms       map[string]PlatformProfile `yaml:"platforms" validate:"required,dive"`
}

// PlatformProfile is the per-platform slice of the catalog.
type PlatformProfile struct {
	Tips          []string `yaml:"tips" validate:"max=5"`
	DefaultNiches []string `yaml:"default_niches"`
	Niches        []Niche  `yaml:"niches" validate:"dive"`
}

// Niche describes how a task is adapted for one niche.
type Niche struct {
	Name    string `yaml:"name" validate:"required"`
	Label   string `yaml:"label" validate:"required"`
	Example string `yaml:"example" validate:"required"`
}

// Platform returns the profile for name; the zero profile when absent.
func (c *Catalog) Platform(name string) PlatformProfile {
	return c.Platforms[name]
}

// Niche looks up a niche in the platform's lookup table.
func (p PlatformProfile) Niche(name string) (Niche, bool) {
	for _, n := range p.Niches {
		if n.Name == name {
			return n, true
		}
	}
	return Niche{}, false
}

// Validate checks the catalog structure.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if _, ok := c.Platforms[c.DefaultPlatform]; !ok {
		return fmt.Errorf("%w: default platform %q has no profile", internalerr.ErrInvalidConfig, c.DefaultPlatform)
	}
	return nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// LoadCatalog loads a catalog from a YAML file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. Callers must not modify it.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := ParseCatalog(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("built-in catalog: %v", err))
		}
		defaultCat = cat
	})
	return defaultCat
}
