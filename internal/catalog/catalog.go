// Package catalog holds the static name-to-price lookups for airlines and
// hotels, plus the closed list of destinations the wizard offers.
// A Catalog is read-only once built and is injected wherever prices are needed,
// so tests can supply their own pricing.
package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// reservedDestinationChars cannot appear in a destination: booked trips are
// stored one per line with "|" between fields, unescaped.
const reservedDestinationChars = "|\r\n"

// Kind selects which price table a lookup reads.
type Kind string

const (
	KindAirline Kind = "airline"
	KindHotel   Kind = "hotel"
)

// Catalog is an immutable set of destinations and price tables.
type Catalog struct {
	destinations []string
	airlines     map[string]decimal.Decimal
	hotels       map[string]decimal.Decimal
}

// Entry is one priced catalog item, as listed for the presentation layer.
type Entry struct {
	Name  string
	Price decimal.Decimal
}

// New builds a Catalog. Names must be non-empty and prices non-negative.
// The maps are copied; later changes by the caller are not observed.
func New(destinations []string, airlines, hotels map[string]decimal.Decimal) (*Catalog, error) {
	c := &Catalog{
		airlines: make(map[string]decimal.Decimal, len(airlines)),
		hotels:   make(map[string]decimal.Decimal, len(hotels)),
	}

	seen := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		if strings.TrimSpace(d) == "" {
			return nil, fmt.Errorf("catalog.New: %w: destination name is empty", domain.ErrValidation)
		}
		if strings.ContainsAny(d, reservedDestinationChars) {
			return nil, fmt.Errorf("catalog.New: %w: destination %q contains a field or line separator", domain.ErrValidation, d)
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("catalog.New: %w: duplicate destination %q", domain.ErrValidation, d)
		}
		seen[d] = struct{}{}
		c.destinations = append(c.destinations, d)
	}

	if err := copyPrices(c.airlines, airlines, KindAirline); err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}
	if err := copyPrices(c.hotels, hotels, KindHotel); err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}
	return c, nil
}

func copyPrices(dst, src map[string]decimal.Decimal, kind Kind) error {
	for name, price := range src {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: %s name is empty", domain.ErrValidation, kind)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: %s %q has negative price %s", domain.ErrValidation, kind, name, price)
		}
		dst[name] = price
	}
	return nil
}

// Default returns the catalog the application ships with.
func Default() *Catalog {
	c, err := New(
		[]string{"Paris", "Rome", "London"},
		map[string]decimal.Decimal{
			"LOT": decimal.NewFromInt(800),
		},
		map[string]decimal.Decimal{
			"Hotel A": decimal.NewFromInt(600),
			"Hotel B": decimal.NewFromInt(600),
			"Hotel C": decimal.NewFromInt(600),
		},
	)
	if err != nil {
		panic("catalog.Default: " + err.Error())
	}
	return c
}

// fileFormat is the YAML shape accepted by Load.
//
//	destinations: [Paris, Rome]
//	airlines:
//	  LOT: "800"
//	hotels:
//	  Hotel A: "600.50"
type fileFormat struct {
	Destinations []string          `yaml:"destinations"`
	Airlines     map[string]string `yaml:"airlines"`
	Hotels       map[string]string `yaml:"hotels"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog.Load: parse %s: %w", path, err)
	}

	airlines, err := parsePrices(f.Airlines)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: airlines: %w", err)
	}
	hotels, err := parsePrices(f.Hotels)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: hotels: %w", err)
	}

	return New(f.Destinations, airlines, hotels)
}

func parsePrices(raw map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for name, s := range raw {
		p, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: price of %q: %v", domain.ErrValidation, name, err)
		}
		out[name] = p
	}
	return out, nil
}

// PriceOf looks up name in the table for kind.
// Returns domain.ErrNotFound for unknown names.
func (c *Catalog) PriceOf(kind Kind, name string) (decimal.Decimal, error) {
	var table map[string]decimal.Decimal
	switch kind {
	case KindAirline:
		table = c.airlines
	case KindHotel:
		table = c.hotels
	default:
		return decimal.Zero, fmt.Errorf("catalog.PriceOf: unknown kind %q: %w", kind, domain.ErrNotFound)
	}

	price, ok := table[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("catalog.PriceOf: %s %q: %w", kind, name, domain.ErrNotFound)
	}
	return price, nil
}

// HasDestination reports whether name is an offered destination.
func (c *Catalog) HasDestination(name string) bool {
	return slices.Contains(c.destinations, name)
}

// Destinations returns the offered destinations in catalog order.
func (c *Catalog) Destinations() []string {
	return slices.Clone(c.destinations)
}

// Airlines returns every airline with its price, sorted by name.
func (c *Catalog) Airlines() []Entry {
	return entries(c.airlines)
}

// Hotels returns every hotel with its price, sorted by name.
func (c *Catalog) Hotels() []Entry {
	return entries(c.hotels)
}

func entries(table map[string]decimal.Decimal) []Entry {
	out := make([]Entry, 0, len(table))
	for name, price := range table {
		out = append(out, Entry{Name: name, Price: price})
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}
