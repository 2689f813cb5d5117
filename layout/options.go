package layout

import "github.com/ByLCY/proforma/logger"

// Options 配置布局阶段所需的依赖。全部字段均可为空。
type Options struct {
	Style    *Style         // 为空时使用 DefaultStyle()
	Images   ImageLoader    // 为空时不加载图片：logo 使用占位文本，图标跳过
	Icons    IconSet        // 页眉与收件人栏的电话/邮箱图标路径
	Measurer Measurer       // 可选：用于越界检查的文本测量
	Meta     DocumentMeta   // 非空字段覆盖默认的 PDF 元信息
	Logger   *logger.Logger // 为空时使用 logger.L
}

// IconSet 为图标路径。Header* 绘制在深色页眉上，其余绘制在白底上。
type IconSet struct {
	HeaderPhone string `json:"headerPhone"`
	HeaderEmail string `json:"headerEmail"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Measurer 测量单行文本宽度（mm），字号单位为 pt。
type Measurer interface {
	TextWidth(content string, font FontResource, size float64) (float64, error)
}
