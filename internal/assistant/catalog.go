package assistant

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CatalogEntry struct {
	Intent      string `yaml:"intent"`
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
}

// Catalog is the FAQ set the openai backend classifies against.
type Catalog struct {
	Intents []CatalogEntry `yaml:"intents"`
}

func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Intents) == 0 {
		return nil, fmt.Errorf("parse catalog: no intents")
	}
	for i, e := range c.Intents {
		if e.Intent == "" {
			return nil, fmt.Errorf("parse catalog: entry %d has no intent", i)
		}
	}
	return &c, nil
}

func (c *Catalog) Lookup(intent string) (CatalogEntry, bool) {
	for _, e := range c.Intents {
		if e.Intent == intent {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
