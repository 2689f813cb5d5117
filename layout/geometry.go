package layout

import (
	"strings"

	ierr "github.com/ByLCY/proforma/errors"
)

var pagePresets = map[string][2]float64{
	"A4": {210, 297},
	"A5": {148, 210},
}

// PageGeometry 描述纸张尺寸、边距与默认行高（mm），布局过程中只读。
type PageGeometry struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Margin     Margin  `json:"margin"`
	LineHeight float64 `json:"lineHeight"`
}

// NewGeometry 按预设纸张创建几何信息，四边使用相同边距。
func NewGeometry(size string, landscape bool, marginMM, lineHeightMM float64) (PageGeometry, error) {
	w, h, err := resolvePageSize(size, landscape)
	if err != nil {
		return PageGeometry{}, err
	}
	geo := PageGeometry{
		Width:      w,
		Height:     h,
		Margin:     Margin{Top: marginMM, Right: marginMM, Bottom: marginMM, Left: marginMM},
		LineHeight: lineHeightMM,
	}
	return geo, geo.Validate()
}

// DefaultGeometry 为 A4 纵向、20mm 边距、12pt 行高。
func DefaultGeometry() PageGeometry {
	return PageGeometry{
		Width:      210,
		Height:     297,
		Margin:     Margin{Top: 20, Right: 20, Bottom: 20, Left: 20},
		LineHeight: 12 * PtToMm,
	}
}

// ContentWidth 为左右边距之间的宽度。
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - g.Margin.Left - g.Margin.Right
}

// Validate 检查尺寸为正、边距非负且内容区域非空。
func (g PageGeometry) Validate() error {
	m := g.Margin
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return ierr.NewErrorf("invalid page size %gx%g", g.Width, g.Height).
			WithHint("页面尺寸必须为正数").
			Mark(ierr.ErrValidation)
	case g.LineHeight <= 0:
		return ierr.NewErrorf("invalid line height %g", g.LineHeight).
			WithHint("行高必须为正数").
			Mark(ierr.ErrValidation)
	case m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0:
		return ierr.NewError("negative margin").
			WithHint("边距不能为负数").
			Mark(ierr.ErrValidation)
	case g.ContentWidth() <= 0 || g.Height-m.Top-m.Bottom <= 0:
		return ierr.NewError("margins leave no content area").
			WithHint("边距过大，页面没有可用区域").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func resolvePageSize(size string, landscape bool) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(size))]
	if !ok {
		return 0, 0, ierr.NewErrorf("unsupported page size %s", size).
			WithHintf("暂不支持的纸张尺寸：%s", size).
			Mark(ierr.ErrValidation)
	}
	width, height := base[0], base[1]
	if landscape {
		width, height = height, width
	}
	return width, height, nil
}
