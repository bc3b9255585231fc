// Package catalog holds the product catalog and extracts product mentions
// from free text by keyword.
package catalog

import (
	_ "embed"
	"os"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Product is one catalog entry. Keywords are matched case-insensitively as
// substrings of a record's text.
type Product struct {
	ID       string   `yaml:"id" json:"id"`
	Group    string   `yaml:"group,omitempty" json:"group,omitempty"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Catalog is an immutable, ordered set of products.
type Catalog struct {
	products []Product
	keywords [][]string     // folded keywords, parallel to products
	byKey    map[string]int // folded id -> position
}

// New validates products and builds a Catalog. Product order is preserved
// and defines the order of extracted product lists.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		keywords: make([][]string, 0, len(products)),
		byKey:    make(map[string]int, len(products)),
	}

	for i, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, eris.Errorf("catalog: product %d has no id", i)
		}
		key := foldID(id)
		if _, dup := c.byKey[key]; dup {
			return nil, eris.Errorf("catalog: duplicate product id %q", id)
		}

		var kws []string
		for _, kw := range p.Keywords {
			if strings.TrimSpace(kw) == "" {
				continue
			}
			kws = append(kws, foldText(kw))
		}
		if len(kws) == 0 {
			return nil, eris.Errorf("catalog: product %q has no keywords", id)
		}

		c.byKey[key] = len(c.products)
		c.products = append(c.products, Product{ID: id, Group: p.Group, Keywords: p.Keywords})
		c.keywords = append(c.keywords, kws)
	}

	return c, nil
}

// Parse builds a Catalog from YAML of the form:
//
//	products:
//	  - id: Kakao Peru
//	    keywords: ["peru", "kakao peru"]
func Parse(data []byte) (*Catalog, error) {
	var file struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}
	if len(file.Products) == 0 {
		return nil, eris.New("catalog: no products defined")
	}
	return New(file.Products)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load %s", path)
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(eris.Wrap(err, "catalog: embedded default is invalid"))
	}
	return c
}

// Extract returns the ids of all products whose keywords occur in text, in
// catalog order. No match yields an empty slice.
func (c *Catalog) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	// Pad so keywords anchored with spaces (" rus ") match at the edges.
	haystack := " " + foldText(text) + " "

	found := []string{}
	for i, kws := range c.keywords {
		for _, kw := range kws {
			if strings.Contains(haystack, kw) {
				found = append(found, c.products[i].ID)
				break
			}
		}
	}
	return found
}

// Lookup resolves a product name to its catalog entry by case-insensitive
// exact match on the id.
func (c *Catalog) Lookup(name string) (Product, bool) {
	i, ok := c.byKey[foldID(name)]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Position returns the catalog order of id, or -1 if id is not in the catalog.
func (c *Catalog) Position(id string) int {
	if i, ok := c.byKey[foldID(id)]; ok {
		return i
	}
	return -1
}

// Products returns a copy of the catalog entries.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// IDs returns product ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.products))
	for i, p := range c.products {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// foldText lowercases, NFC-normalizes, and turns any whitespace run into a
// single space. Keyword padding spaces survive because only runs collapse.
func foldText(s string) string {
	s = norm.NFC.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func foldID(s string) string {
	return strings.TrimSpace(foldText(s))
}
