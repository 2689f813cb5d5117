package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/ByLCY/proforma/fonts"
	"github.com/ByLCY/proforma/layout"
	"github.com/ByLCY/proforma/logger"
	"github.com/ByLCY/proforma/renderer"
)

// imageDPMM 为嵌入图片的重采样分辨率（约 300dpi）。
const imageDPMM = 300 / 25.4

// Renderer draws layout results via github.com/tdewolff/canvas.
// 字体按内置名缓存，可在多次渲染之间共享，并发安全。
type Renderer struct {
	log    *logger.Logger
	images layout.ImageLoader

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// NewRenderer creates a canvas-based renderer. A nil logger falls back to the global one.
// images 用于加载未携带解码数据的图片（例如从调试 JSON 还原的结果），可以为 nil。
func NewRenderer(log *logger.Logger, images layout.ImageLoader) *Renderer {
	return &Renderer{
		log:          logger.OrDefault(log),
		images:       images,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if err := checkResult(result); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, first.Width, first.Height, nil)
	keywords := strings.Join(result.Meta.Keywords, ", ")
	writer.SetInfo(result.Meta.Title, result.Meta.Subject, keywords, result.Meta.Author, result.Meta.Creator)

	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c, err := r.drawCanvas(page, result.Resources, false)
		if err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("写入 PDF 失败").
			Mark(ierr.ErrOutput)
	}
	r.log.Debugw("pdf rendered", "pages", len(result.Pages), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// RenderPNG 将第一页栅格化为 PNG 预览，dpmm 为每毫米像素数。
func (r *Renderer) RenderPNG(result *layout.Result, dpmm float64) ([]byte, error) {
	if err := checkResult(result); err != nil {
		return nil, err
	}
	if dpmm <= 0 {
		dpmm = 150 / 25.4
	}
	c, err := r.drawCanvas(result.Pages[0], result.Resources, true)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ierr.WithError(err).
			WithHint("编码 PNG 失败").
			Mark(ierr.ErrOutput)
	}
	r.log.Debugw("png rendered", "dpmm", dpmm, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// TextWidth 实现 layout.Measurer：返回文本在给定字号（pt）下的宽度（mm）。
func (r *Renderer) TextWidth(content string, font layout.FontResource, size float64) (float64, error) {
	face, err := r.fontFace(font, size, layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

func checkResult(result *layout.Result) error {
	if result == nil {
		return ierr.NewError("nil layout result").
			WithHint("渲染结果为空").
			Mark(ierr.ErrValidation)
	}
	if len(result.Pages) == 0 {
		return ierr.NewError("layout result has no pages").
			WithHint("缺少可渲染的页面").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// drawCanvas 按图元顺序绘制一页；opaque 为 true 时先铺白底（PNG 预览）。
func (r *Renderer) drawCanvas(page layout.Page, resources layout.ResourceSet, opaque bool) (*canvas.Canvas, error) {
	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetStrokeColor(color.RGBA{})

	if opaque {
		ctx.SetFillColor(canvas.White)
		ctx.DrawPath(0, 0, canvas.Rectangle(page.Width, page.Height))
	}

	for _, p := range page.Primitives {
		var err error
		switch p.Kind {
		case layout.KindText:
			err = r.drawText(ctx, p.Text, resources.Fonts)
		case layout.KindRect:
			drawRect(ctx, p.Rect)
		case layout.KindImage:
			r.drawImage(ctx, p.Element, p.Image)
		default:
			r.log.Warnw("unknown primitive", "kind", p.Kind, "element", p.Element)
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// drawText 在基线 (X, Y) 处按对齐方式绘制单行文本。
func (r *Renderer) drawText(ctx *canvas.Context, t *layout.TextRun, fontSet map[string]layout.FontResource) error {
	if t == nil || t.Content == "" {
		return nil
	}
	font, ok := fontSet[t.Font]
	if !ok {
		font = layout.FontResource{Name: t.Font}
	}
	face, err := r.fontFace(font, t.Size, t.Color)
	if err != nil {
		return err
	}

	align := canvas.Left
	switch t.Align {
	case "center":
		align = canvas.Center
	case "right":
		align = canvas.Right
	}
	ctx.DrawText(t.X, t.Y, canvas.NewTextLine(face, t.Content, align))
	return nil
}

func drawRect(ctx *canvas.Context, rc *layout.FilledRect) {
	if rc == nil || rc.Width <= 0 || rc.Height <= 0 {
		return
	}
	ctx.SetFillColor(rc.Color.RGBA())
	ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
}

// drawImage 将图片重采样到目标框的像素尺寸后绘制，框的左上角为 (X, Y)。
// 加载失败只记录日志并跳过。
func (r *Renderer) drawImage(ctx *canvas.Context, element string, box *layout.ImageBox) {
	if box == nil || box.Width <= 0 || box.Height <= 0 {
		return
	}
	src := box.Data
	if src == nil {
		if r.images == nil || box.Source == "" {
			return
		}
		img, err := r.images.LoadImage(box.Source)
		if err != nil {
			r.log.Warnw("image load failed", "element", element, "src", box.Source, "error", ierr.HintOf(err))
			return
		}
		src = img
		if box.Background != nil {
			src = layout.FlattenAlpha(img, *box.Background)
		}
	}
	img := scaleToBox(src, box.Width, box.Height)
	ctx.DrawImage(box.X, box.Y, img, canvas.DPMM(float64(img.Bounds().Dx())/box.Width))
}

func scaleToBox(src image.Image, widthMM, heightMM float64) image.Image {
	w := max(1, int(math.Round(widthMM*imageDPMM)))
	h := max(1, int(math.Round(heightMM*imageDPMM)))
	if b := src.Bounds(); b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func (r *Renderer) fontFace(font layout.FontResource, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	if sizePt <= 0 {
		sizePt = 10
	}
	return family.Face(sizePt, col.RGBA(), canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 按内置字体名加载并缓存字体族；未知字体回退到默认字体。
func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, error) {
	name := strings.TrimPrefix(font.Src, "embed:")
	if name == "" {
		name = font.Name
	}
	resolved, ok := fonts.Resolve(name)
	if !ok {
		r.log.Debugw("font fallback", "font", font.Name, "src", font.Src, "using", resolved)
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[resolved]; ok {
		return family, nil
	}
	data, err := fonts.Load(resolved)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("无法加载字体 %s", resolved).
			Mark(ierr.ErrResource)
	}
	family := canvas.NewFontFamily(resolved)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("字体 %s 解析失败", resolved).
			Mark(ierr.ErrResource)
	}
	r.fontFamilies[resolved] = family
	return family, nil
}
