package phrases

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/lexalab/internal/schemas"
	schemadocs "github.com/jonathan/lexalab/schemas"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

var (
	phraseCatalogSchema = sync.OnceValues(func() (*schemas.Schema, error) {
		return schemas.Compile("phrase_catalog", schemadocs.PhraseCatalog)
	})

	defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
		return LoadCatalog(defaultCatalogJSON)
	})
)

// Catalog is an immutable, ordered set of rules.
type Catalog struct {
	rules []Rule
	byID  map[string]int
}

type catalogDocument struct {
	Rules []Rule `json:"rules"`
}

// DefaultCatalog returns the built-in catalog. It panics if the embedded catalog is invalid.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("built-in phrase catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalogFile reads and validates a catalog document from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase catalog %s: %w", path, err)
	}
	c, err := LoadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("phrase catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadCatalog validates a catalog document against the catalog schema and compiles its patterns.
func LoadCatalog(data []byte) (*Catalog, error) {
	s, err := phraseCatalogSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(data); err != nil {
		return nil, fmt.Errorf("invalid phrase catalog: %w", err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse phrase catalog: %w", err)
	}

	c := &Catalog{
		rules: make([]Rule, 0, len(doc.Rules)),
		byID:  make(map[string]int, len(doc.Rules)),
	}
	for _, rule := range doc.Rules {
		if _, dup := c.byID[rule.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		for i := range rule.Patterns {
			if err := rule.Patterns[i].compile(); err != nil {
				return nil, fmt.Errorf("rule %q pattern %d: %w", rule.ID, i, err)
			}
		}
		c.byID[rule.ID] = len(c.rules)
		c.rules = append(c.rules, rule)
	}

	return c, nil
}

// Rules returns the rules in catalog order. The returned slice is a copy.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.clone()
	}
	return out
}

// Rule looks up a rule by id.
func (c *Catalog) Rule(id string) (Rule, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i].clone(), true
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}
