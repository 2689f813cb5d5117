package invoice

import (
	"sort"
	"strings"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// VariantPrice is one priced variant of a product model.
type VariantPrice struct {
	Model string
	Name  string
	Price decimal.Decimal
}

// ColorPrice is the additive price of one colour option.
type ColorPrice struct {
	Name  string
	Price decimal.Decimal
}

// PriceCatalog resolves model variants and colours to prices.
// It is read-only once constructed and safe for concurrent use.
type PriceCatalog struct {
	variants map[string]map[string]decimal.Decimal
	colors   map[string]decimal.Decimal
}

// NewPriceCatalog indexes the given price lists. Blank names, negative
// prices and duplicate entries are rejected.
func NewPriceCatalog(variants []VariantPrice, colors []ColorPrice) (*PriceCatalog, error) {
	c := &PriceCatalog{
		variants: make(map[string]map[string]decimal.Decimal),
		colors:   make(map[string]decimal.Decimal, len(colors)),
	}
	for _, v := range variants {
		model, name := strings.TrimSpace(v.Model), strings.TrimSpace(v.Name)
		if model == "" || name == "" {
			return nil, ierr.NewError("catalog variant without model or name").
				WithHintf("Catalog entry %q/%q needs both a model and a variant name", v.Model, v.Name).
				Mark(ierr.ErrValidation)
		}
		if v.Price.IsNegative() {
			return nil, ierr.NewErrorf("negative price for %s/%s", model, name).
				WithHint("Catalog prices must not be negative").
				Mark(ierr.ErrValidation)
		}
		byName, ok := c.variants[model]
		if !ok {
			byName = make(map[string]decimal.Decimal)
			c.variants[model] = byName
		}
		if _, dup := byName[name]; dup {
			return nil, ierr.NewErrorf("duplicate variant %s/%s", model, name).
				WithHint("Each variant may appear only once in the catalog").
				Mark(ierr.ErrValidation)
		}
		byName[name] = v.Price
	}
	for _, col := range colors {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return nil, ierr.NewError("catalog colour without name").
				WithHint("Every colour in the catalog needs a name").
				Mark(ierr.ErrValidation)
		}
		if col.Price.IsNegative() {
			return nil, ierr.NewErrorf("negative price for colour %s", name).
				WithHint("Catalog prices must not be negative").
				Mark(ierr.ErrValidation)
		}
		if _, dup := c.colors[name]; dup {
			return nil, ierr.NewErrorf("duplicate colour %s", name).
				WithHint("Each colour may appear only once in the catalog").
				Mark(ierr.ErrValidation)
		}
		c.colors[name] = col.Price
	}
	return c, nil
}

// VariantPrice returns the price of variant within model.
func (c *PriceCatalog) VariantPrice(model, variant string) (decimal.Decimal, error) {
	byName, ok := c.variants[strings.TrimSpace(model)]
	if !ok {
		return decimal.Zero, ierr.NewErrorf("unknown model %q", model).
			WithHintf("Model %q is not in the price catalog", model).
			Mark(ierr.ErrNotFound)
	}
	price, ok := byName[strings.TrimSpace(variant)]
	if !ok {
		return decimal.Zero, ierr.NewErrorf("unknown variant %q of model %q", variant, model).
			WithHintf("Variant %q is not offered for model %q", variant, model).
			Mark(ierr.ErrNotFound)
	}
	return price, nil
}

// ColorPrice returns the price of a colour option.
func (c *PriceCatalog) ColorPrice(name string) (decimal.Decimal, error) {
	price, ok := c.colors[strings.TrimSpace(name)]
	if !ok {
		return decimal.Zero, ierr.NewErrorf("unknown colour %q", name).
			WithHintf("Colour %q is not in the price catalog", name).
			Mark(ierr.ErrNotFound)
	}
	return price, nil
}

// Models lists the catalog's model names in order.
func (c *PriceCatalog) Models() []string {
	models := lo.Keys(c.variants)
	sort.Strings(models)
	return models
}

// Variants lists the variant names of model in order.
func (c *PriceCatalog) Variants(model string) []string {
	names := lo.Keys(c.variants[strings.TrimSpace(model)])
	sort.Strings(names)
	return names
}

// Colors lists the colour names in order.
func (c *PriceCatalog) Colors() []string {
	names := lo.Keys(c.colors)
	sort.Strings(names)
	return names
}
