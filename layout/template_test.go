package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/proforma/dsl"
	ierr "github.com/ByLCY/proforma/errors"
)

func applyTemplateString(t *testing.T, src string) (*Style, PageGeometry, DocumentMeta, error) {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("模板解析失败: %v", err)
	}
	return ApplyTemplate(DefaultStyle(), DefaultGeometry(), doc)
}

func TestTemplateMovesOnlyNamedElement(t *testing.T) {
	style, geo, _, err := applyTemplateString(t, `
doc Proforma v1 {
  page A4 {
    element table-cell { y: 6mm }
  }
}`)
	if err != nil {
		t.Fatalf("应用模板失败: %v", err)
	}
	base := DefaultStyle()
	got := style.Element("table-cell")
	want := base.Element("table-cell")
	want.Y = 6
	if got != want {
		t.Fatalf("table-cell 覆盖错误: got %+v want %+v", got, want)
	}
	for id, p := range base.Elements {
		if id == "table-cell" {
			continue
		}
		if style.Elements[id] != p {
			t.Fatalf("元素 %s 不应变化", id)
		}
	}
	if !reflect.DeepEqual(style.Labels, base.Labels) || !reflect.DeepEqual(style.Metrics, base.Metrics) {
		t.Fatalf("标签与度量不应变化")
	}
	if geo != DefaultGeometry() {
		t.Fatalf("几何不应变化: %+v", geo)
	}
}

func TestTemplateFullOverride(t *testing.T) {
	style, geo, meta, err := applyTemplateString(t, `
doc Proforma v1 {
  meta {
    title: "Facture"
    keywords: ["finance", "internal"]
  }
  resources {
    color Band = #112233
    font Script { src: "Go-Italic" }
  }
  page A5 landscape margin 10mm line-height 14pt {
    element header-band { color: Band }
    element signature-name { font: "Script"; size: 20pt; align: right }
    element totals-value { color: #abc }
    label thanks "Thank you"
    metric row-padding 9mm; metric title-spacing false
    metric meta-columns 20mm 20mm 20mm
    columns 30mm 30mm 30mm 20mm 10mm
  }
}`)
	if err != nil {
		t.Fatalf("应用模板失败: %v", err)
	}
	if geo.Width != 210 || geo.Height != 148 {
		t.Fatalf("A5 横向尺寸错误: %gx%g", geo.Width, geo.Height)
	}
	if geo.Margin != (Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}) {
		t.Fatalf("页边距错误: %+v", geo.Margin)
	}
	if !near(geo.LineHeight, 14*PtToMm) {
		t.Fatalf("行高错误: %g", geo.LineHeight)
	}
	if c := style.Element("header-band").Color; c != (Color{R: 0x11, G: 0x22, B: 0x33}) {
		t.Fatalf("命名颜色错误: %+v", c)
	}
	if c := style.Element("totals-value").Color; c != (Color{R: 0xAA, G: 0xBB, B: 0xCC}) {
		t.Fatalf("短十六进制颜色错误: %+v", c)
	}
	sig := style.Element("signature-name")
	if sig.Font != "Script" || sig.Size != 20 || sig.Align != "right" {
		t.Fatalf("签名覆盖错误: %+v", sig)
	}
	if style.Fonts["Script"] != "Go-Italic" {
		t.Fatalf("字体别名错误: %v", style.Fonts)
	}
	if style.Label("thanks") != "Thank you" {
		t.Fatalf("标签覆盖错误: %q", style.Label("thanks"))
	}
	m := style.Metrics
	if m.RowPadding != 9 || m.TitleSpacing {
		t.Fatalf("度量覆盖错误: %+v", m)
	}
	if !reflect.DeepEqual(m.MetaColumns, []float64{20, 20, 20}) {
		t.Fatalf("meta-columns 错误: %v", m.MetaColumns)
	}
	if !reflect.DeepEqual(m.ColumnWidths, []float64{30, 30, 30, 20, 10}) {
		t.Fatalf("列宽错误: %v", m.ColumnWidths)
	}
	if meta.Title != "Facture" || !reflect.DeepEqual(meta.Keywords, []string{"finance", "internal"}) {
		t.Fatalf("元信息错误: %+v", meta)
	}
}

func TestTemplateMarginVariants(t *testing.T) {
	cases := []struct {
		params string
		want   Margin
	}{
		{"margin 10mm", Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{"margin 10mm 5mm", Margin{Top: 10, Right: 5, Bottom: 10, Left: 5}},
		{"margin 10mm 5mm 8mm", Margin{Top: 10, Right: 5, Bottom: 8, Left: 5}},
		{"margin 1cm 2mm 3mm 4mm", Margin{Top: 10, Right: 2, Bottom: 3, Left: 4}},
		{"portrait", DefaultGeometry().Margin},
	}
	for _, tc := range cases {
		_, geo, _, err := applyTemplateString(t, "doc P v1 {\n page A4 "+tc.params+" {}\n}")
		if err != nil {
			t.Fatalf("%s: 应用模板失败: %v", tc.params, err)
		}
		if geo.Margin != tc.want {
			t.Fatalf("%s: 页边距 %+v，期望 %+v", tc.params, geo.Margin, tc.want)
		}
	}
}

func TestTemplateErrors(t *testing.T) {
	cases := map[string]string{
		"未知元素":   "element nope { y: 1mm }",
		"未知属性":   "element table-cell { weight: 3 }",
		"未知标签":   `label nope "x"`,
		"未知度量":   "metric nope 3mm",
		"列数错误":   "columns 10mm 10mm 10mm 10mm",
		"未知指令":   "shape circle",
		"对齐无效":   "element table-cell { align: justify }",
		"颜色无效":   "element table-cell { color: Missing }",
		"页面赋值":   "size: 3",
		"长度无效":   "metric row-padding wide",
		"布尔值无效": "metric title-spacing maybe",
	}
	for name, stmt := range cases {
		_, _, _, err := applyTemplateString(t, "doc P v1 {\n page A4 {\n "+stmt+"\n }\n}")
		if !ierr.IsValidation(err) {
			t.Fatalf("%s: 应返回校验错误，实际 %v", name, err)
		}
		if hint := ierr.HintOf(err); !strings.Contains(hint, "模板错误") {
			t.Fatalf("%s: 提示信息应包含位置: %q", name, hint)
		}
	}
}

func TestTemplateRejectsBadPage(t *testing.T) {
	for _, src := range []string{
		"doc P v1 {\n page Letter {}\n}",
		"doc P v1 {\n page A4 margin 120mm {}\n}",
		"doc P v1 {\n page A4 line-height {}\n}",
	} {
		if _, _, _, err := applyTemplateString(t, src); !ierr.IsValidation(err) {
			t.Fatalf("%q 应返回校验错误，实际 %v", src, err)
		}
	}
}

func TestTemplateDoesNotModifyBase(t *testing.T) {
	base := DefaultStyle()
	doc, err := dsl.ParseString("doc P v1 {\n page A4 {\n element table-cell { y: 9mm }\n label thanks \"x\"\n columns 1mm 1mm 1mm 1mm 1mm\n }\n}")
	if err != nil {
		t.Fatalf("模板解析失败: %v", err)
	}
	if _, _, _, err := ApplyTemplate(base, DefaultGeometry(), doc); err != nil {
		t.Fatalf("应用模板失败: %v", err)
	}
	if !reflect.DeepEqual(base, DefaultStyle()) {
		t.Fatalf("基础样式不应被修改")
	}
}

func TestTemplateNilDocument(t *testing.T) {
	style, geo, meta, err := ApplyTemplate(nil, DefaultGeometry(), nil)
	if err != nil {
		t.Fatalf("空模板不应出错: %v", err)
	}
	if !reflect.DeepEqual(style, DefaultStyle()) || geo != DefaultGeometry() || meta.Title != "" {
		t.Fatalf("空模板应返回默认值")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#313B4B":   {R: 0x31, G: 0x3B, B: 0x4B},
		"fff":       {R: 0xFF, G: 0xFF, B: 0xFF},
		"#C9B7A1ff": {R: 0xC9, G: 0xB7, B: 0xA1},
	}
	for in, want := range cases {
		got, err := parseColor(in)
		if err != nil || got != want {
			t.Fatalf("parseColor(%q) = %+v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		if _, err := parseColor(bad); err == nil {
			t.Fatalf("parseColor(%q) 应失败", bad)
		}
	}
}
