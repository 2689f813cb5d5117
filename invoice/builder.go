package invoice

import (
	"fmt"
	"strings"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Settings are the invoice defaults and company identity applied to every
// document the builder produces.
type Settings struct {
	Company         Header
	Title           string
	PaymentModes    []string
	CurrencySign    string
	DecimalPoint    string
	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	DeliveryCost    decimal.Decimal
	// Rate converts base-currency amounts to the display currency.
	// Zero means 1.
	Rate decimal.Decimal
	// ColorSurcharge is added once per selected colour.
	ColorSurcharge decimal.Decimal
	Terms          Terms
	Signature      Signature
}

// ItemRequest is one order line as collected from the order form.
type ItemRequest struct {
	Model   string   `json:"model" validate:"required"`
	Variant string   `json:"variant" validate:"required"`
	Colors  []string `json:"colors"`
	Qty     int      `json:"qty" validate:"gt=0"`
}

// Request is an order ready to be priced.
type Request struct {
	Reference  string        `json:"reference"`
	IssuedOn   string        `json:"issuedOn"`
	ValidUntil string        `json:"validUntil"`
	Client     BillTo        `json:"client"`
	Items      []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Builder prices order requests against a catalog and assembles documents.
type Builder struct {
	catalog  *PriceCatalog
	settings Settings
}

// NewBuilder returns a builder bound to catalog and settings.
func NewBuilder(catalog *PriceCatalog, settings Settings) *Builder {
	return &Builder{catalog: catalog, settings: settings}
}

// PriceItem prices one line in the base currency:
// unitPrice = variant + mean(colours) + colours*surcharge, total = unitPrice*qty.
func (b *Builder) PriceItem(req ItemRequest) (LineItem, error) {
	if b.catalog == nil {
		return LineItem{}, ierr.NewError("builder has no price catalog").
			WithHint("A price catalog is required to price items").
			Mark(ierr.ErrSystem)
	}
	colors := lo.Compact(lo.Map(req.Colors, func(c string, _ int) string { return strings.TrimSpace(c) }))
	if len(colors) > MaxColors {
		return LineItem{}, ierr.NewErrorf("%d colours selected", len(colors)).
			WithHintf("At most %d colours can be selected per item", MaxColors).
			WithReportableDetails(map[string]any{"model": req.Model, "colors": colors}).
			Mark(ierr.ErrValidation)
	}
	if req.Qty <= 0 {
		return LineItem{}, ierr.NewErrorf("quantity %d", req.Qty).
			WithHint("Quantity must be a positive number").
			Mark(ierr.ErrValidation)
	}

	variantPrice, err := b.catalog.VariantPrice(req.Model, req.Variant)
	if err != nil {
		return LineItem{}, err
	}

	colorPrices := make([]decimal.Decimal, 0, len(colors))
	for _, name := range colors {
		p, err := b.catalog.ColorPrice(name)
		if err != nil {
			return LineItem{}, err
		}
		colorPrices = append(colorPrices, p)
	}

	unit := variantPrice.
		Add(mean(colorPrices)).
		Add(b.settings.ColorSurcharge.Mul(decimal.NewFromInt(int64(len(colors)))))

	return LineItem{
		Model:     strings.TrimSpace(req.Model),
		Variant:   strings.TrimSpace(req.Variant),
		Colors:    colors,
		Qty:       req.Qty,
		UnitPrice: unit,
		Total:     unit.Mul(decimal.NewFromInt(int64(req.Qty))),
	}, nil
}

// Build prices the request, computes the totals, converts every amount to
// the display currency and returns a validated document.
func (b *Builder) Build(req Request) (*Document, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(req.Items))
	for i, r := range req.Items {
		item, err := b.PriceItem(r)
		if err != nil {
			return nil, ierr.WithError(err).
				WithMessage(fmt.Sprintf("item %d", i+1)).
				Error()
		}
		items = append(items, item)
	}

	s := b.settings
	subTotal := lo.Reduce(items, func(acc decimal.Decimal, it LineItem, _ int) decimal.Decimal {
		return acc.Add(it.Total)
	}, decimal.Zero)
	discount := subTotal.Mul(s.DiscountPercent).Div(hundred)
	tax := subTotal.Mul(s.TaxPercent).Div(hundred)

	rate := s.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	conv := func(v decimal.Decimal) decimal.Decimal { return v.Mul(rate) }

	for i := range items {
		items[i].UnitPrice = conv(items[i].UnitPrice)
		items[i].Total = conv(items[i].Total)
	}
	totals := Totals{
		DeliveryCost:    conv(s.DeliveryCost),
		SubTotal:        conv(subTotal),
		DiscountPercent: s.DiscountPercent,
		DiscountAmount:  conv(discount),
		TaxPercent:      s.TaxPercent,
		TaxAmount:       conv(tax),
		TotalTTC:        conv(subTotal.Add(tax)),
		GrandTotal:      conv(GrandTotal(subTotal, tax, s.DeliveryCost, discount)),
		CurrencySign:    s.CurrencySign,
		DecimalPoint:    s.DecimalPoint,
	}

	doc := &Document{
		Header: s.Company,
		InvoiceDetails: InvoiceDetails{
			InvoiceTitle: s.Title,
			AccountNo:    req.Reference,
			InvoiceDate:  req.IssuedOn,
			IssueDate:    req.ValidUntil,
		},
		BillTo:         req.Client,
		Items:          items,
		PaymentMethods: append([]string(nil), s.PaymentModes...),
		Totals:         totals,
		Terms:          s.Terms,
		Signature:      s.Signature,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// mean is the arithmetic mean of prices; zero for an empty list.
func mean(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := lo.Reduce(prices, func(acc decimal.Decimal, p decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(p)
	}, decimal.Zero)
	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}
