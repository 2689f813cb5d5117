package invoice

import (
	"testing"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog(t *testing.T) *PriceCatalog {
	t.Helper()
	c, err := NewPriceCatalog(
		[]VariantPrice{
			{Model: "Square", Name: "X", Price: d("80")},
			{Model: "Square", Name: "Carre 40x40", Price: d("120")},
			{Model: "Hexagonal", Name: "Hexa 20", Price: d("95.50")},
		},
		[]ColorPrice{
			{Name: "Red", Price: d("10")},
			{Name: "Blue", Price: d("30")},
			{Name: "Green", Price: d("20")},
			{Name: "Black", Price: d("40")},
			{Name: "White", Price: d("0")},
			{Name: "Grey", Price: d("5")},
		},
	)
	require.NoError(t, err)
	return c
}

func testSettings() Settings {
	return Settings{
		Company:         Header{CompanyName: "Acme"},
		Title:           "Proforma",
		PaymentModes:    []string{"cheque", "virement"},
		CurrencySign:    "DA",
		DecimalPoint:    ",",
		TaxPercent:      d("19"),
		DiscountPercent: d("10"),
	}
}

func TestPriceItemFormula(t *testing.T) {
	tests := []struct {
		name      string
		surcharge string
		req       ItemRequest
		wantUnit  string
		wantTotal string
	}{
		{
			name:      "two colours",
			req:       ItemRequest{Model: "Square", Variant: "X", Colors: []string{"Red", "Blue"}, Qty: 2},
			wantUnit:  "100",
			wantTotal: "200",
		},
		{
			name:      "surcharge per colour",
			surcharge: "5",
			req:       ItemRequest{Model: "Square", Variant: "X", Colors: []string{"Red", "Blue"}, Qty: 1},
			wantUnit:  "110",
			wantTotal: "110",
		},
		{
			name:      "zero colours has zero mean",
			surcharge: "5",
			req:       ItemRequest{Model: "Hexagonal", Variant: "Hexa 20", Qty: 3},
			wantUnit:  "95.5",
			wantTotal: "286.5",
		},
		{
			name:      "blank selections are ignored",
			req:       ItemRequest{Model: "Square", Variant: "X", Colors: []string{"", "Red", " "}, Qty: 1},
			wantUnit:  "90",
			wantTotal: "90",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings()
			if tt.surcharge != "" {
				s.ColorSurcharge = d(tt.surcharge)
			}
			item, err := NewBuilder(testCatalog(t), s).PriceItem(tt.req)
			require.NoError(t, err)
			assert.True(t, item.UnitPrice.Equal(d(tt.wantUnit)), "unit %s", item.UnitPrice)
			assert.True(t, item.Total.Equal(d(tt.wantTotal)), "total %s", item.Total)
		})
	}
}

func TestPriceItemKeepsExactMean(t *testing.T) {
	b := NewBuilder(testCatalog(t), testSettings())
	item, err := b.PriceItem(ItemRequest{Model: "Square", Variant: "X", Colors: []string{"Red", "Green", "Black"}, Qty: 3})
	require.NoError(t, err)

	assert.True(t, item.Total.Equal(item.UnitPrice.Mul(decimal.NewFromInt(3))))
	assert.Equal(t, "103.33", item.UnitPrice.StringFixed(2))
	assert.Equal(t, "310.00", item.Total.StringFixed(2))
	assert.Equal(t, []string{"Red", "Green", "Black"}, item.Colors)
}

func TestPriceItemErrors(t *testing.T) {
	b := NewBuilder(testCatalog(t), testSettings())

	_, err := b.PriceItem(ItemRequest{Model: "Square", Variant: "X", Colors: []string{"Red", "Blue", "Green", "Black", "White", "Grey"}, Qty: 1})
	assert.True(t, ierr.IsValidation(err))

	_, err = b.PriceItem(ItemRequest{Model: "Round", Variant: "X", Qty: 1})
	assert.True(t, ierr.IsNotFound(err))

	_, err = b.PriceItem(ItemRequest{Model: "Square", Variant: "X", Colors: []string{"Purple"}, Qty: 1})
	assert.True(t, ierr.IsNotFound(err))

	_, err = b.PriceItem(ItemRequest{Model: "Square", Variant: "X", Qty: 0})
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildEndToEndTotals(t *testing.T) {
	b := NewBuilder(testCatalog(t), testSettings())
	doc, err := b.Build(Request{
		Reference:  "PF-0001",
		IssuedOn:   "01/02/2024",
		ValidUntil: "01/03/2024",
		Client:     BillTo{Name: "Client SARL"},
		Items: []ItemRequest{
			{Model: "Square", Variant: "X", Colors: []string{"Red", "Blue"}, Qty: 2},
		},
	})
	require.NoError(t, err)

	tot := doc.Totals
	assert.Equal(t, "200.00", tot.SubTotal.StringFixed(2))
	assert.Equal(t, "20.00", tot.DiscountAmount.StringFixed(2))
	assert.Equal(t, "38.00", tot.TaxAmount.StringFixed(2))
	assert.Equal(t, "238.00", tot.TotalTTC.StringFixed(2))
	assert.Equal(t, "218.00", tot.GrandTotal.StringFixed(2))
	assert.Equal(t, "DA", tot.CurrencySign)
	assert.Equal(t, "Proforma", doc.InvoiceDetails.InvoiceTitle)
	assert.Equal(t, "PF-0001", doc.InvoiceDetails.AccountNo)
	assert.Equal(t, "cheque, virement", doc.PaymentLine())
}

func TestBuildConvertsCurrencyAndKeepsIdentity(t *testing.T) {
	s := testSettings()
	s.Rate = d("0.5")
	s.DeliveryCost = d("40")
	doc, err := NewBuilder(testCatalog(t), s).Build(Request{
		Client: BillTo{Name: "Client"},
		Items: []ItemRequest{
			{Model: "Square", Variant: "X", Colors: []string{"Red", "Blue"}, Qty: 2},
			{Model: "Hexagonal", Variant: "Hexa 20", Qty: 1},
		},
	})
	require.NoError(t, err)

	tot := doc.Totals
	assert.Equal(t, "147.75", tot.SubTotal.StringFixed(2))
	assert.Equal(t, "20.00", tot.DeliveryCost.StringFixed(2))
	assert.Equal(t, "50.00", doc.Items[0].UnitPrice.StringFixed(2))
	want := GrandTotal(tot.SubTotal, tot.TaxAmount, tot.DeliveryCost, tot.DiscountAmount)
	assert.Equal(t, want.StringFixed(2), tot.GrandTotal.StringFixed(2))
	assert.True(t, tot.DiscountPercent.Equal(d("10")))
}

func TestBuildValidation(t *testing.T) {
	b := NewBuilder(testCatalog(t), testSettings())

	_, err := b.Build(Request{Client: BillTo{Name: "C"}})
	assert.True(t, ierr.IsValidation(err), "no items")

	_, err = b.Build(Request{Items: []ItemRequest{{Model: "Square", Variant: "X", Qty: 1}}})
	assert.True(t, ierr.IsValidation(err), "no client name")

	_, err = b.Build(Request{Client: BillTo{Name: "C"}, Items: []ItemRequest{{Variant: "X", Qty: 1}}})
	assert.True(t, ierr.IsValidation(err), "no model")

	_, err = b.Build(Request{Client: BillTo{Name: "C"}, Items: []ItemRequest{{Model: "Nope", Variant: "X", Qty: 1}}})
	assert.True(t, ierr.IsNotFound(err), "unknown model")
	assert.False(t, ierr.IsValidation(err))
}
