package layout

import (
	"image"
	"image/color"
)

// 该文件定义布局结果与绘制图元，供布局计算、渲染与调试 JSON 共用。
// 所有坐标单位为 mm，原点在页面左上角，y 轴向下。

// 图元类型。
const (
	KindText  = "text"
	KindRect  = "rect"
	KindImage = "image"
)

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// ResourceSet 记录页面中引用到的字体。
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource 描述逻辑字体与内置字体的对应关系，src 形如 embed:Go-Bold。
type FontResource struct {
	Name   string `json:"name"`
	Src    string `json:"src"`
	Family string `json:"family"` // 渲染器使用的 Family 名称
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGBA 转换为不透明的 color.RGBA。
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// Page 记录页面尺寸、边距与按绘制顺序排列的图元。
type Page struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Margin     Margin      `json:"margin"`
	Primitives []Primitive `json:"primitives"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Primitive 是一个已定位的绘制单元，Text/Rect/Image 三者只有一个非空。
// Element 为产生它的模板元素 id。
type Primitive struct {
	Kind    string      `json:"kind"`
	Element string      `json:"element"`
	Text    *TextRun    `json:"text,omitempty"`
	Rect    *FilledRect `json:"rect,omitempty"`
	Image   *ImageBox   `json:"image,omitempty"`
}

// TextRun 为单行文本，Y 为基线位置，Size 单位为 pt。
type TextRun struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Font    string  `json:"font"`
	Size    float64 `json:"size"`
	Color   Color   `json:"color"`
	Align   string  `json:"align,omitempty"` // left/center/right（默认 left）
}

// FilledRect 为无描边的实心矩形，Y 为上边缘。
type FilledRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  Color   `json:"color"`
}

// ImageBox 用于描述图片位置与尺寸。Data 为已解码（并已按 Background 铺底）的图像，
// 为空时渲染器按 Source 自行加载。
type ImageBox struct {
	Source     string      `json:"source"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Background *Color      `json:"background,omitempty"`
	Data       image.Image `json:"-"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
