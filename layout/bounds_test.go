package layout

import (
	"strings"
	"testing"
)

// widthMeasurer 以每字符 w 毫米估算文本宽度。
type widthMeasurer struct{ w float64 }

func (m widthMeasurer) TextWidth(content string, _ FontResource, _ float64) (float64, error) {
	return float64(len([]rune(content))) * m.w, nil
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestBoundsTextOverflow(t *testing.T) {
	doc := sampleDocument()
	doc.Header.CompanyName = strings.Repeat("W", 60)
	res := mustLayout(t, doc, Options{Measurer: widthMeasurer{w: 2}})
	if !hasWarning(res.Warnings, "header-contact") {
		t.Fatalf("超长公司名应产生越界警告: %v", res.Warnings)
	}
	// 布局不因越界而移动元素。
	plain := mustLayout(t, doc, Options{})
	if len(plain.Pages[0].Primitives) != len(res.Pages[0].Primitives) {
		t.Fatalf("越界检查不应改变图元")
	}
}

func TestBoundsQuietForSampleDocument(t *testing.T) {
	res := mustLayout(t, sampleDocument(), Options{Measurer: widthMeasurer{w: 0.1}})
	if len(res.Warnings) != 0 {
		t.Fatalf("不应有警告: %v", res.Warnings)
	}
}

func TestBoundsTableIntoFooter(t *testing.T) {
	doc := sampleDocument()
	doc.Items = itemsWithColors(5, 5, 5, 5, 5, 5, 5, 5)
	res := mustLayout(t, doc, Options{})
	if !hasWarning(res.Warnings, "页脚") {
		t.Fatalf("表格过长应给出警告: %v", res.Warnings)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("不应分页")
	}
}

func TestBoundsColumnWidths(t *testing.T) {
	style := DefaultStyle()
	style.Metrics.ColumnWidths = []float64{50, 50, 50, 50, 50}
	res := mustLayout(t, sampleDocument(), Options{Style: style})
	if !hasWarning(res.Warnings, "列宽") {
		t.Fatalf("列宽之和超出应给出警告: %v", res.Warnings)
	}
}
