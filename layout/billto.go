package layout

import "strings"

// billToStage 绘制左侧收件人栏与右侧标题、编号和日期。
// 两栏从同一游标开始，逐行间距固定，不依赖文字测量。
func billToStage(in *stageInput, cursor float64) ([]Primitive, float64) {
	s := newSheet(in)
	g, m, lh := in.geo, in.style.Metrics, in.geo.LineHeight
	white := colorWhite

	x := g.Margin.Left
	s.text("billto-label", in.label("billto-label"), x, cursor)
	s.text("billto-name", in.label("billto-name"), x, cursor)

	y := cursor + in.style.Element("billto-label").Y + m.BillToNameGap
	s.text("billto-detail", in.label("billto-address1"), x, y)
	y += lh + m.BillToAddressGap
	s.text("billto-detail", in.label("billto-address2"), x, y)
	y += lh + m.BillToAddressGap
	s.image("billto-icon", in.icons.Phone, x, y, &white)
	s.text("billto-detail", in.label("billto-phone"), x, y)
	y += lh + m.BillToContactGap
	s.image("billto-icon", in.icons.Email, x, y, &white)
	s.text("billto-detail", in.label("billto-email"), x, y)
	y += lh + m.BillToContactGap

	s.text("billto-legal", in.label("billto-rc"), x, y)
	s.text("billto-legal", in.label("billto-nis"), x+m.LegalColumn, y)
	s.text("billto-legal", in.label("billto-nif"), x, y+m.LegalRowGap)
	s.text("billto-legal", in.label("billto-article"), x+m.LegalColumn, y+m.LegalRowGap)
	leftEnd := y

	mx := g.Width - g.Margin.Right - m.MetaInset
	title := in.label("meta-title")
	if m.TitleSpacing {
		title = LetterSpace(strings.ToUpper(title))
	}
	s.text("meta-title", title, mx, cursor)
	s.rect("meta-rule", mx, cursor, 0)

	col := mx
	for i, pair := range [][2]string{
		{"meta-ref", "meta-ref-value"},
		{"meta-issued", "meta-issued-value"},
		{"meta-valid", "meta-valid-value"},
	} {
		s.text("meta-label", in.label(pair[0]), col, cursor)
		s.text("meta-value", in.label(pair[1]), col, cursor)
		if i < len(m.MetaColumns) {
			col += m.MetaColumns[i]
		}
	}
	for _, dx := range m.MetaDividers {
		s.rect("meta-divider", mx+dx, cursor, 0)
	}
	rightEnd := cursor + in.style.Element("meta-label").Y

	return s.out, max(leftEnd, rightEnd) + m.BillToGap
}
