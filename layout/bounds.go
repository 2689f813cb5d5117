package layout

import (
	"fmt"

	"github.com/ByLCY/proforma/logger"
)

// checkBounds 报告越界情况，但不移动任何元素：页面为单页且不回流。
// 文本越界需要 Measurer；表格与列宽检查总是执行。
func checkBounds(prims []Primitive, geo PageGeometry, style *Style, tableEnd float64, m Measurer, log *logger.Logger) []string {
	var warnings []string

	metrics := style.Metrics
	if cols := metrics.ColumnOffset(len(metrics.ColumnWidths)); cols > geo.ContentWidth()+1e-9 {
		warnings = append(warnings, fmt.Sprintf("列宽之和 %.1fmm 超出内容宽度 %.1fmm", cols, geo.ContentWidth()))
	}
	if limit := geo.Height - geo.Margin.Bottom - metrics.FooterReserve; tableEnd > limit {
		warnings = append(warnings, fmt.Sprintf("表格底部 %.1fmm 进入页脚区域（%.1fmm）", tableEnd, limit))
	}

	if m == nil {
		return warnings
	}
	fontSet, _ := collectFonts(prims, style)
	for _, p := range prims {
		if p.Text == nil {
			continue
		}
		t := p.Text
		w, err := m.TextWidth(t.Content, fontSet[t.Font], t.Size)
		if err != nil {
			log.Debugw("text measure failed", "element", p.Element, "error", err)
			continue
		}
		left := t.X
		switch t.Align {
		case "center":
			left -= w / 2
		case "right":
			left -= w
		}
		if left < -1e-9 || left+w > geo.Width+1e-9 {
			warnings = append(warnings, fmt.Sprintf("元素 %s 的文本 %q 超出页面（%.1f–%.1fmm）", p.Element, t.Content, left, left+w))
		}
	}
	return warnings
}
