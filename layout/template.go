package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/proforma/dsl"
	ierr "github.com/ByLCY/proforma/errors"
)

// ApplyTemplate 将模板覆盖应用到 base 的副本上，返回新的样式、页面几何与 PDF 元信息。
// base 与 geo 本身不会被修改。
func ApplyTemplate(base *Style, geo PageGeometry, doc *dsl.Document) (*Style, PageGeometry, DocumentMeta, error) {
	style := base.Clone()
	if doc == nil {
		return style, geo, DocumentMeta{}, nil
	}
	meta := collectMeta(doc)
	colors := collectResources(doc, style)

	page := firstPage(doc)
	if page == nil {
		return style, geo, meta, nil
	}
	geo, err := applyPageSpec(geo, page.Spec)
	if err != nil {
		return nil, geo, meta, err
	}
	if page.Block != nil {
		for _, stmt := range page.Block.Statements {
			if err := applyStatement(style, stmt, colors); err != nil {
				return nil, geo, meta, err
			}
		}
	}
	if err := geo.Validate(); err != nil {
		return nil, geo, meta, err
	}
	return style, geo, meta, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	var meta DocumentMeta
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			val := stmt.Assignment.Value
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = val.Text()
			case "author":
				meta.Author = val.Text()
			case "subject":
				meta.Subject = val.Text()
			case "creator":
				meta.Creator = val.Text()
			case "keywords":
				if val.Array != nil {
					meta.Keywords = val.Array.Strings()
				} else if s := val.Text(); s != "" {
					meta.Keywords = []string{s}
				}
			}
		}
	}
	return meta
}

// collectResources 收集命名颜色，并把字体别名写入 style.Fonts。
func collectResources(doc *dsl.Document, style *Style) map[string]Color {
	colors := map[string]Color{}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			cmd := stmt.Command
			if cmd == nil || len(cmd.Args) == 0 {
				continue
			}
			switch cmd.Name {
			case "color":
				name, value := cmd.Args[0].Value, cmd.Args[len(cmd.Args)-1].Value
				if c, err := parseColor(value); err == nil && len(cmd.Args) > 1 {
					colors[name] = c
				}
			case "font":
				if src := fontSource(cmd); src != "" {
					style.Fonts[cmd.Args[0].Value] = src
				}
			}
		}
	}
	return colors
}

func fontSource(cmd *dsl.Command) string {
	if cmd.Block == nil {
		return ""
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment != nil && stmt.Assignment.Key == "src" {
			return stmt.Assignment.Value.Text()
		}
	}
	return ""
}

func firstPage(doc *dsl.Document) *dsl.PageSection {
	for _, section := range doc.Sections {
		if section.Page != nil {
			return section.Page
		}
	}
	return nil
}

// applyPageSpec 解析 `page A4 landscape margin 20mm 15mm line-height 12pt`。
func applyPageSpec(geo PageGeometry, spec dsl.PageSpec) (PageGeometry, error) {
	landscape := false
	for _, p := range spec.Params {
		if p.Value == "landscape" {
			landscape = true
		}
	}
	w, h, err := resolvePageSize(spec.Size, landscape)
	if err != nil {
		return geo, err
	}
	geo.Width, geo.Height = w, h
	geo.Margin = resolveMargin(spec.Params, geo.Margin)

	for i, p := range spec.Params {
		if p.Value != "line-height" {
			continue
		}
		if i+1 >= len(spec.Params) {
			return geo, templateError(p.Pos.String(), "line-height 缺少取值")
		}
		lh, ok := parseLength(spec.Params[i+1].Value)
		if !ok {
			return geo, templateError(p.Pos.String(), "line-height 取值无效："+spec.Params[i+1].Value)
		}
		geo.LineHeight = lh
	}
	return geo, nil
}

// resolveMargin 按 CSS 语义解析 margin 后的 1–4 个长度：
// 1 个值四边相同；2 个值为上下/左右；3 个值为上/左右/下；4 个值为上/右/下/左。
func resolveMargin(params []*dsl.Lexeme, margin Margin) Margin {
	for i := 0; i < len(params); i++ {
		if params[i].Value != "margin" {
			continue
		}
		vals := []float64{}
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			v, ok := parseLength(params[j].Value)
			if !ok {
				break
			}
			vals = append(vals, v)
		}
		switch len(vals) {
		case 1:
			v := vals[0]
			margin = Margin{Top: v, Right: v, Bottom: v, Left: v}
		case 2:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
		case 4:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		}
	}
	return margin
}

func applyStatement(style *Style, stmt *dsl.Statement, colors map[string]Color) error {
	if stmt.Assignment != nil {
		return templateError(stmt.Assignment.Pos.String(), "page 中不支持赋值："+stmt.Assignment.Key)
	}
	cmd := stmt.Command
	pos := cmd.Pos.String()
	switch cmd.Name {
	case "element":
		return applyElement(style, cmd, colors)
	case "label":
		if len(cmd.Args) != 2 {
			return templateError(pos, "label 需要元素名与文本")
		}
		id := cmd.Args[0].Value
		if _, ok := style.Labels[id]; !ok {
			return templateError(pos, "未知标签："+id)
		}
		style.Labels[id] = cmd.Args[1].Value
	case "metric":
		return applyMetric(&style.Metrics, cmd)
	case "columns":
		widths, err := parseLengths(pos, cmd.Args)
		if err != nil {
			return err
		}
		if len(widths) != 5 {
			return templateError(pos, fmt.Sprintf("columns 需要 5 个宽度，实际 %d 个", len(widths)))
		}
		style.Metrics.ColumnWidths = widths
	default:
		return templateError(pos, "未知指令："+cmd.Name)
	}
	return nil
}

func applyElement(style *Style, cmd *dsl.Command, colors map[string]Color) error {
	pos := cmd.Pos.String()
	if len(cmd.Args) == 0 {
		return templateError(pos, "element 缺少元素名")
	}
	id := cmd.Args[0].Value
	p, ok := style.Elements[id]
	if !ok {
		return templateError(pos, "未知元素："+id)
	}
	if cmd.Block == nil {
		return nil
	}
	for _, stmt := range cmd.Block.Statements {
		a := stmt.Assignment
		if a == nil {
			return templateError(pos, "element 块中只允许属性赋值")
		}
		raw := a.Value.Text()
		apos := a.Pos.String()
		switch a.Key {
		case "x", "y", "width", "height":
			v, ok := parseLength(raw)
			if !ok {
				return templateError(apos, a.Key+" 取值无效："+raw)
			}
			switch a.Key {
			case "x":
				p.X = v
			case "y":
				p.Y = v
			case "width":
				p.Width = v
			case "height":
				p.Height = v
			}
		case "size":
			v, ok := parseFontSize(raw)
			if !ok || v <= 0 {
				return templateError(apos, "size 取值无效："+raw)
			}
			p.Size = v
		case "font":
			p.Font = raw
		case "color":
			c, ok := colors[raw]
			if !ok {
				var err error
				if c, err = parseColor(raw); err != nil {
					return templateError(apos, "颜色无效："+raw)
				}
			}
			p.Color = c
		case "align":
			switch raw {
			case "left", "center", "right":
				p.Align = raw
			default:
				return templateError(apos, "align 只能为 left/center/right")
			}
		default:
			return templateError(apos, "未知属性："+a.Key)
		}
	}
	style.Elements[id] = p
	return nil
}

func metricFields(m *Metrics) map[string]*float64 {
	return map[string]*float64{
		"band-ratio":         &m.BandRatio,
		"header-gap":         &m.HeaderGap,
		"contact-inset":      &m.ContactInset,
		"contact-gap":        &m.ContactGap,
		"legal-column":       &m.LegalColumn,
		"header-legal-shift": &m.HeaderLegalShift,
		"billto-name-gap":    &m.BillToNameGap,
		"billto-address-gap": &m.BillToAddressGap,
		"billto-contact-gap": &m.BillToContactGap,
		"legal-row-gap":      &m.LegalRowGap,
		"meta-inset":         &m.MetaInset,
		"billto-gap":         &m.BillToGap,
		"header-height":      &m.HeaderHeight,
		"min-row-height":     &m.MinRowHeight,
		"row-padding":        &m.RowPadding,
		"bullet-indent":      &m.BulletIndent,
		"trailing-gap":       &m.TrailingGap,
		"totals-offset":      &m.TotalsOffset,
		"totals-inset":       &m.TotalsInset,
		"totals-row-gap":     &m.TotalsRowGap,
		"signature-inset":    &m.SignatureInset,
		"signature-rise":     &m.SignatureRise,
		"footer-gap":         &m.FooterGap,
		"footer-reserve":     &m.FooterReserve,
	}
}

func applyMetric(m *Metrics, cmd *dsl.Command) error {
	pos := cmd.Pos.String()
	if len(cmd.Args) < 2 {
		return templateError(pos, "metric 需要名称与取值")
	}
	name, args := cmd.Args[0].Value, cmd.Args[1:]
	switch name {
	case "meta-columns", "meta-dividers":
		vals, err := parseLengths(pos, args)
		if err != nil {
			return err
		}
		if name == "meta-columns" {
			m.MetaColumns = vals
		} else {
			m.MetaDividers = vals
		}
		return nil
	case "title-spacing":
		on, err := strconv.ParseBool(args[0].Value)
		if err != nil {
			return templateError(pos, "title-spacing 只能为 true/false")
		}
		m.TitleSpacing = on
		return nil
	}
	field, ok := metricFields(m)[name]
	if !ok {
		return templateError(pos, "未知度量："+name)
	}
	if len(args) != 1 {
		return templateError(pos, "metric "+name+" 只接受一个取值")
	}
	v, ok := parseLength(args[0].Value)
	if !ok {
		return templateError(pos, "metric "+name+" 取值无效："+args[0].Value)
	}
	*field = v
	return nil
}

func parseLengths(pos string, args []*dsl.Lexeme) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, ok := parseLength(a.Value)
		if !ok || v < 0 {
			return nil, templateError(pos, "长度无效："+a.Value)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseColor(value string) (Color, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = strings.Repeat(value[0:1], 2) + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var c Color
	for i, dst := range []*int{&c.R, &c.G, &c.B} {
		v, err := strconv.ParseUint(value[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		*dst = int(v)
	}
	return c, nil
}

func templateError(pos, msg string) error {
	return ierr.NewErrorf("template %s: %s", pos, msg).
		WithHintf("模板错误（%s）：%s", pos, msg).
		Mark(ierr.ErrValidation)
}
