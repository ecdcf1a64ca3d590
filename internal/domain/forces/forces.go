// Package forces exposes the static catalog of forces and motions acting on
// a person, from surface gravity to the CMB dipole.
package forces

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Item kinds. They also name the JSON list each category renders.
const (
	KindForces  = "forces"
	KindMotions = "motions"
	KindEffects = "effects"
)

// Item is one force, motion or effect. Empty fields are omitted.
type Item struct {
	Name        string `yaml:"name" json:"name"`
	Velocity    string `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	Magnitude   string `yaml:"magnitude,omitempty" json:"magnitude,omitempty"`
	Period      string `yaml:"period,omitempty" json:"period,omitempty"`
	Description string `yaml:"description" json:"description"`
}

// Category groups items under a key such as "galactic_motions".
type Category struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
	Items       []Item `yaml:"items"`
}

// Catalog is the ordered list of categories.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

var (
	loadOnce sync.Once
	loaded   Catalog
	loadErr  error
)

// Load returns a copy of the embedded catalog. The YAML is parsed once.
func Load() (Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		return Catalog{}, loadErr
	}
	return loaded.clone(), nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Key == "" {
			return Catalog{}, fmt.Errorf("%w: category without key", ErrInvalidCatalog)
		}
		if seen[cat.Key] {
			return Catalog{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.Key)
		}
		seen[cat.Key] = true
		switch cat.Kind {
		case KindForces, KindMotions, KindEffects:
		default:
			return Catalog{}, fmt.Errorf("%w: category %q has unknown kind %q", ErrInvalidCatalog, cat.Key, cat.Kind)
		}
		for _, it := range cat.Items {
			if it.Name == "" {
				return Catalog{}, fmt.Errorf("%w: unnamed item in %q", ErrInvalidCatalog, cat.Key)
			}
		}
	}
	return c, nil
}

func (c Catalog) clone() Catalog {
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		cat.Items = append([]Item(nil), cat.Items...)
		out.Categories[i] = cat
	}
	return out
}

// MarshalJSON renders categories as an object in catalog order, each with its
// description and an item list named after its kind.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Key)
		if err != nil {
			return nil, err
		}
		items := cat.Items
		if items == nil {
			items = []Item{}
		}
		body, err := json.Marshal(map[string]any{
			"description": cat.Description,
			cat.Kind:      items,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
