package invoice

import (
	"fmt"
	"strings"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxColors is the number of colour options a line item can carry.
const MaxColors = 5

// Document is the fully priced invoice handed to the layout engine.
// It is built once per generation and never mutated afterwards.
type Document struct {
	Header         Header         `json:"header"`
	InvoiceDetails InvoiceDetails `json:"invoiceDetails"`
	BillTo         BillTo         `json:"billTo"`
	Items          []LineItem     `json:"items" validate:"required,min=1,dive"`
	PaymentMethods []string       `json:"paymentMethods"`
	Totals         Totals         `json:"totals"`
	Terms          Terms          `json:"thankYouMessage"`
	Signature      Signature      `json:"signature"`
}

// Header is the issuing company block.
type Header struct {
	CompanyName string      `json:"companyName" validate:"required"`
	LogoPath    string      `json:"logoPath,omitempty"`
	ContactInfo ContactInfo `json:"contactInfo"`
}

// ContactInfo holds the company address, contacts and legal identifiers.
type ContactInfo struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	RC           string `json:"rc"`
	NIF          string `json:"nif"`
	NIS          string `json:"nis"`
	Article      string `json:"article"`
}

// InvoiceDetails carries the title, reference and the two pre-formatted dates.
// InvoiceDate is the issue date and IssueDate the validity date.
type InvoiceDetails struct {
	InvoiceTitle string `json:"invoiceTitle"`
	AccountNo    string `json:"accountNo"`
	InvoiceDate  string `json:"invoiceDate"`
	IssueDate    string `json:"issueDate"`
}

// BillTo is the client block. Legal identifiers are rendered verbatim.
type BillTo struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	NIF          string `json:"nif"`
	NIS          string `json:"nis"`
	RC           string `json:"rc"`
	Article      string `json:"article"`
}

// LineItem is one priced row of the table.
type LineItem struct {
	Model     string          `json:"model" validate:"required"`
	Variant   string          `json:"variant"`
	Colors    []string        `json:"colors" validate:"max=5,dive,required"`
	Qty       int             `json:"qty" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// DisplayName is the text shown in the first column.
func (it LineItem) DisplayName() string {
	if v := strings.TrimSpace(it.Variant); v != "" {
		return v
	}
	return it.Model
}

// Totals are already converted to the display currency.
type Totals struct {
	DeliveryCost    decimal.Decimal `json:"deliveryCost"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TotalTTC        decimal.Decimal `json:"total_ttc"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	CurrencySign    string          `json:"currencySign"`
	DecimalPoint    string          `json:"decimalPoint" validate:"omitempty,oneof=. ,"`
}

// Terms is the footer heading and its two note lines.
type Terms struct {
	Heading    string `json:"heading"`
	NotesLine1 string `json:"notesLine1"`
	NotesLine2 string `json:"notesLine2"`
}

// Signature is the signature block.
type Signature struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Title    string `json:"title"`
}

// PaymentLine joins the enabled payment methods, dropping blanks and repeats.
func (d *Document) PaymentLine() string {
	methods := lo.Map(d.PaymentMethods, func(m string, _ int) string { return strings.TrimSpace(m) })
	return strings.Join(lo.Uniq(lo.Compact(methods)), ", ")
}

// Validate checks field presence and the arithmetic identities between
// item totals and document totals.
func (d *Document) Validate() error {
	if d == nil {
		return ierr.NewError("invoice document is nil").
			WithHint("No invoice document was provided").
			Mark(ierr.ErrValidation)
	}
	if err := validateStruct(d); err != nil {
		return err
	}

	details := map[string]any{}
	two := int32(2)
	for i, it := range d.Items {
		if it.UnitPrice.IsNegative() {
			details[fmt.Sprintf("items[%d].unitPrice", i)] = "must not be negative"
		}
		want := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty)))
		if !want.Round(two).Equal(it.Total.Round(two)) {
			details[fmt.Sprintf("items[%d].total", i)] = fmt.Sprintf("expected %s, got %s", want.StringFixed(2), it.Total.StringFixed(2))
		}
	}

	t := d.Totals
	for name, v := range map[string]decimal.Decimal{
		"deliveryCost":    t.DeliveryCost,
		"subTotal":        t.SubTotal,
		"discountPercent": t.DiscountPercent,
		"discountAmount":  t.DiscountAmount,
		"taxPercent":      t.TaxPercent,
		"taxAmount":       t.TaxAmount,
		"total_ttc":       t.TotalTTC,
		"grandTotal":      t.GrandTotal,
	} {
		if v.IsNegative() {
			details["totals."+name] = "must not be negative"
		}
	}

	sum := lo.Reduce(d.Items, func(acc decimal.Decimal, it LineItem, _ int) decimal.Decimal {
		return acc.Add(it.Total)
	}, decimal.Zero)
	if !sum.Round(two).Equal(t.SubTotal.Round(two)) {
		details["totals.subTotal"] = fmt.Sprintf("expected %s, got %s", sum.StringFixed(2), t.SubTotal.StringFixed(2))
	}
	if ttc := t.SubTotal.Add(t.TaxAmount); !ttc.Round(two).Equal(t.TotalTTC.Round(two)) {
		details["totals.total_ttc"] = fmt.Sprintf("expected %s, got %s", ttc.StringFixed(2), t.TotalTTC.StringFixed(2))
	}
	if grand := GrandTotal(t.SubTotal, t.TaxAmount, t.DeliveryCost, t.DiscountAmount); !grand.Round(two).Equal(t.GrandTotal.Round(two)) {
		details["totals.grandTotal"] = fmt.Sprintf("expected %s, got %s", grand.StringFixed(2), t.GrandTotal.StringFixed(2))
	}

	if len(details) > 0 {
		return ierr.NewError("invoice totals are inconsistent").
			WithHint("The invoice amounts do not add up").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GrandTotal is subTotal + tax + delivery - discount.
func GrandTotal(subTotal, tax, delivery, discount decimal.Decimal) decimal.Decimal {
	return subTotal.Add(tax).Add(delivery).Sub(discount)
}
