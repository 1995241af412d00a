// Package hero holds the static hero catalog used to validate every
// inbound identifier.
package hero

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrUnknownHero = errors.New("unknown hero")

type Hero struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog is an immutable code-to-hero lookup. Safe for concurrent
// readers.
type Catalog struct {
	byCode map[string]Hero
	codes  []string
}

func NewCatalog(heroes []Hero) *Catalog {
	c := &Catalog{byCode: make(map[string]Hero, len(heroes))}
	for _, h := range heroes {
		if _, dup := c.byCode[h.Code]; dup {
			continue
		}
		c.byCode[h.Code] = h
		c.codes = append(c.codes, h.Code)
	}
	sort.Strings(c.codes)
	return c
}

// LoadCatalog reads the hero code mapping file (a JSON array of
// {code, name} objects).
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hero catalog: %w", err)
	}
	var heroes []Hero
	if err := json.Unmarshal(data, &heroes); err != nil {
		return nil, fmt.Errorf("parsing hero catalog: %w", err)
	}
	return NewCatalog(heroes), nil
}

func (c *Catalog) Len() int { return len(c.codes) }

func (c *Catalog) Valid(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

func (c *Catalog) Name(code string) (string, bool) {
	h, ok := c.byCode[code]
	return h.Name, ok
}

// Codes returns all hero codes in ascending order. Callers must not
// mutate the returned slice.
func (c *Catalog) Codes() []string { return c.codes }

// All returns the full hero list, ordered by code.
func (c *Catalog) All() []Hero {
	out := make([]Hero, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}
