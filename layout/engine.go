package layout

import (
	"strings"

	"github.com/ByLCY/proforma/binding"
	ierr "github.com/ByLCY/proforma/errors"
	"github.com/ByLCY/proforma/fonts"
	"github.com/ByLCY/proforma/invoice"
	"github.com/ByLCY/proforma/logger"
)

// stage 读取传入的游标，返回本阶段的图元与传出游标。
type stage func(in *stageInput, cursor float64) ([]Primitive, float64)

// 阶段顺序即绘制顺序。
var stages = []struct {
	name string
	run  stage
}{
	{"header", headerStage},
	{"billto", billToStage},
	{"table", tableStage},
	{"totals", totalsStage},
	{"footer", footerStage},
}

// stageInput 为一次 Layout 调用的只读上下文。
type stageInput struct {
	doc    *invoice.Document
	data   any
	geo    PageGeometry
	style  *Style
	images ImageLoader
	icons  IconSet
	log    *logger.Logger
}

// label 返回绑定文档数据后的标签文本。
func (in *stageInput) label(id string) string {
	return binding.Interpolate(in.style.Label(id), in.data)
}

// Layout 将发票文档排成单页图元。文档在调用期间只读；
// 每次调用使用独立的游标与累加器，可并发调用。
func Layout(doc *invoice.Document, geo PageGeometry, opts Options) (*Result, error) {
	if doc == nil {
		return nil, ierr.NewError("nil document").
			WithHint("发票文档为空").
			Mark(ierr.ErrValidation)
	}
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	style := opts.Style
	if style == nil {
		style = DefaultStyle()
	}
	log := logger.OrDefault(opts.Logger)

	data, err := binding.Data(doc)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("无法读取文档数据").
			Mark(ierr.ErrValidation)
	}

	in := &stageInput{
		doc:    doc,
		data:   data,
		geo:    geo,
		style:  style,
		images: opts.Images,
		icons:  opts.Icons,
		log:    log,
	}

	var prims []Primitive
	cursors := make(map[string]float64, len(stages))
	cursor := geo.Margin.Top
	for _, s := range stages {
		out, next := s.run(in, cursor)
		prims = append(prims, out...)
		cursor = next
		cursors[s.name] = next
		log.Debugw("layout stage done", "stage", s.name, "primitives", len(out), "cursor", next)
	}

	fontSet, warnings := collectFonts(prims, style)
	warnings = append(warnings, checkBounds(prims, geo, style, cursors["table"], opts.Measurer, log)...)
	for _, w := range warnings {
		log.Warnw("layout warning", "detail", w)
	}

	return &Result{
		Pages: []Page{{
			Width:      geo.Width,
			Height:     geo.Height,
			Margin:     geo.Margin,
			Primitives: prims,
		}},
		Resources: ResourceSet{Fonts: fontSet},
		Meta:      documentMeta(doc, opts.Meta),
		Warnings:  warnings,
	}, nil
}

// collectFonts 记录页面用到的逻辑字体及其内置字体；未内置的字体回退并给出警告。
func collectFonts(prims []Primitive, style *Style) (map[string]FontResource, []string) {
	out := map[string]FontResource{}
	var warnings []string
	for _, p := range prims {
		if p.Text == nil {
			continue
		}
		name := p.Text.Font
		if _, seen := out[name]; seen {
			continue
		}
		src := name
		if alias, ok := style.Fonts[name]; ok {
			src = alias
		}
		resolved, ok := fonts.Resolve(src)
		if !ok {
			warnings = append(warnings, "字体 "+name+" 未内置，使用 "+resolved)
		}
		out[name] = FontResource{Name: name, Src: "embed:" + resolved, Family: resolved}
	}
	return out, warnings
}

func documentMeta(doc *invoice.Document, override DocumentMeta) DocumentMeta {
	meta := DocumentMeta{
		Title:   strings.TrimSpace(doc.InvoiceDetails.InvoiceTitle + " " + doc.InvoiceDetails.AccountNo),
		Author:  doc.Header.CompanyName,
		Subject: doc.BillTo.Name,
		Creator: "Proforma",
	}
	if override.Title != "" {
		meta.Title = override.Title
	}
	if override.Author != "" {
		meta.Author = override.Author
	}
	if override.Subject != "" {
		meta.Subject = override.Subject
	}
	if override.Creator != "" {
		meta.Creator = override.Creator
	}
	if len(override.Keywords) > 0 {
		meta.Keywords = append([]string(nil), override.Keywords...)
	}
	return meta
}

// sheet 累加单个阶段的图元。
type sheet struct {
	in  *stageInput
	out []Primitive
}

func newSheet(in *stageInput) *sheet {
	return &sheet{in: in}
}

// text 在锚点 (ax, ay) 加元素偏移处放置文本；空白内容不输出。
func (s *sheet) text(element, content string, ax, ay float64) {
	s.textAs(element, content, ax, ay, "")
}

// textAs 同 text，align 非空时覆盖元素的对齐方式。
func (s *sheet) textAs(element, content string, ax, ay float64, align string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	p := s.in.style.Element(element)
	if align == "" {
		align = p.Align
	}
	s.out = append(s.out, Primitive{
		Kind:    KindText,
		Element: element,
		Text: &TextRun{
			Content: content,
			X:       ax + p.X,
			Y:       ay + p.Y,
			Font:    p.Font,
			Size:    p.Size,
			Color:   p.Color,
			Align:   align,
		},
	})
}

// rect 在锚点加元素偏移处放置矩形；元素未指定宽度时使用 width。
func (s *sheet) rect(element string, ax, ay, width float64) {
	p := s.in.style.Element(element)
	w := p.Width
	if w == 0 {
		w = width
	}
	s.fill(element, ax+p.X, ay+p.Y, w, p.Height)
}

// fill 在绝对位置放置矩形，颜色取自元素。
func (s *sheet) fill(element string, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.out = append(s.out, Primitive{
		Kind:    KindRect,
		Element: element,
		Rect: &FilledRect{
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
			Color:  s.in.style.Element(element).Color,
		},
	})
}

// image 加载并放置图片，bg 非空时先铺底。加载失败只记录日志并返回 false。
func (s *sheet) image(element, src string, ax, ay float64, bg *Color) bool {
	if strings.TrimSpace(src) == "" {
		s.in.log.Debugw("image skipped", "element", element, "reason", "empty path")
		return false
	}
	if s.in.images == nil {
		s.in.log.Debugw("image skipped", "element", element, "reason", "no image loader")
		return false
	}
	img, err := s.in.images.LoadImage(src)
	if err != nil {
		s.in.log.Warnw("image load failed", "element", element, "src", src, "error", ierr.HintOf(err))
		return false
	}
	p := s.in.style.Element(element)
	box := &ImageBox{
		Source: src,
		X:      ax + p.X,
		Y:      ay + p.Y,
		Width:  p.Width,
		Height: p.Height,
		Data:   img,
	}
	if bg != nil {
		c := *bg
		box.Background = &c
		box.Data = FlattenAlpha(img, c)
	}
	s.out = append(s.out, Primitive{Kind: KindImage, Element: element, Image: box})
	return true
}
