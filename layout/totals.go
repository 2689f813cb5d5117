package layout

import "github.com/shopspring/decimal"

// totalsStage 绘制左侧付款方式与右侧合计栏。
// 传出游标只取左栏的结束位置，右栏的下沿不参与计算。
func totalsStage(in *stageInput, cursor float64) ([]Primitive, float64) {
	s := newSheet(in)
	g, m := in.geo, in.style.Metrics
	start := cursor + m.TotalsOffset

	lx := g.Margin.Left
	s.text("payment-heading", in.label("payment-heading"), lx, start)
	s.rect("payment-rule", lx, start, 0)
	s.text("payment-text", in.doc.PaymentLine(), lx, start)

	t := in.doc.Totals
	tx := g.Width - m.TotalsInset
	for i, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"totals-subtotal", t.SubTotal},
		{"totals-tax", t.TaxAmount},
		{"totals-ttc", t.TotalTTC},
		{"totals-deposit", t.DiscountAmount},
	} {
		y := start + float64(i)*m.TotalsRowGap
		s.text("totals-label", in.label(row.label), tx, y)
		s.text("totals-value", FormatAmount(row.value, t.DecimalPoint), tx, y)
	}

	s.rect("totals-highlight", tx, start, 0)
	s.text("totals-due-label", in.label("totals-due"), tx, start)
	s.text("totals-due-value", FormatAmount(t.GrandTotal, t.DecimalPoint), tx, start)

	return s.out, start + in.style.Element("payment-text").Y
}
