package layout

import (
	"strconv"
	"strings"
)

// tableStage 绘制商品表格。行高随颜色行数增长：
// rowHeight = max(MinRowHeight, 颜色数 × 行高 + RowPadding)。
func tableStage(in *stageInput, cursor float64) ([]Primitive, float64) {
	s := newSheet(in)
	g, m, lh := in.geo, in.style.Metrics, in.geo.LineHeight
	x, width := g.Margin.Left, g.ContentWidth()
	dp := in.doc.Totals.DecimalPoint

	s.rect("table-rule", x, cursor, width)
	s.rect("table-rule", x, cursor+m.HeaderHeight, width)

	s.text("table-header", in.label("col-name"), x, cursor)
	s.text("table-header", in.label("col-colors"), x+m.ColumnOffset(1), cursor)
	s.textAs("table-header", in.label("col-unit"), x+m.ColumnOffset(3), cursor, "right")
	s.textAs("table-header", in.label("col-qty"), x+m.ColumnOffset(4), cursor, "right")
	s.textAs("table-header", in.label("col-total"), x+m.ColumnOffset(5), cursor, "right")

	bullet := in.label("bullet")
	y := cursor + m.HeaderHeight
	last := len(in.doc.Items) - 1
	for i, item := range in.doc.Items {
		bottom := y + m.RowHeight(len(item.Colors), lh)
		// 最后一行使用较粗的收尾线，位置在行底之下。
		if i == last {
			s.rect("table-last-rule", x, bottom, width)
		} else {
			s.rect("table-row-rule", x, bottom, width)
		}

		s.text("table-cell", item.DisplayName(), x, y)
		s.textAs("table-cell", FormatAmount(item.UnitPrice, dp), x+m.ColumnOffset(3), y, "right")
		s.textAs("table-cell", strconv.Itoa(item.Qty), x+m.ColumnOffset(4), y, "right")
		s.textAs("table-cell", FormatAmount(item.Total, dp), x+m.ColumnOffset(5), y, "right")

		cx := x + m.ColumnOffset(1)
		for j, c := range item.Colors {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			ly := y + float64(j)*lh
			s.text("table-bullet", bullet, cx, ly)
			s.text("table-color", c, cx+m.BulletIndent, ly)
		}
		y = bottom
	}

	return s.out, y + m.TrailingGap
}
