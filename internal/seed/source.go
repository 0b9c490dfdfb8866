package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/seed.yaml
var embeddedSource []byte

// Category groups a product category with its ordered subcategories.
type Category struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories"`
}

// Credential is a fixed (name, password) account pair. The password is
// only ever persisted through a one-way salted hash.
type Credential struct {
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// Source holds the ordered literal lists the seeders draw from. The
// lists are opaque finite sequences; their lengths are asymmetric by
// design and round-robin wiring tolerates the mismatch.
type Source struct {
	Countries       []string     `yaml:"countries"`
	Suppliers       []string     `yaml:"suppliers"`
	Clients         []string     `yaml:"clients"`
	Emails          []string     `yaml:"emails"`
	Categories      []Category   `yaml:"categories"`
	Products        []string     `yaml:"products"`
	Addresses       []string     `yaml:"addresses"`
	Managers        []Credential `yaml:"managers"`
	Admin           Credential   `yaml:"admin"`
	DefaultPassword string       `yaml:"default_password"`
}

// LoadSource reads the seed lists from path, falling back to the
// embedded defaults when path is empty.
func LoadSource(path string) (*Source, error) {
	data := embeddedSource
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed source: %w", err)
		}
		data = b
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse seed source: %w", err)
	}
	return &src, nil
}
