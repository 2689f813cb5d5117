package renderer

import "github.com/ByLCY/proforma/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或 PNG 预览。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
