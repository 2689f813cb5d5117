package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 为缺失字体时使用的回退字体。
const Default = "Go-Regular"

// 内置字体：Go 字体家族，随二进制一起分发。
var embedded = map[string][]byte{
	"Go-Regular": goregular.TTF,
	"Go-Bold":    gobold.TTF,
	"Go-Italic":  goitalic.TTF,
}

// 发票模板中使用的逻辑字体名到内置字体的映射。
var aliases = map[string]string{
	"Helvetica-Bold":   "Go-Bold",
	"Charter":          "Go-Regular",
	"Charter-Bold":     "Go-Bold",
	"Georgia-Bold":     "Go-Bold",
	"Times-Roman":      "Go-Regular",
	"Times-Roman-Bold": "Go-Bold",
	"Kunstler":         "Go-Italic",
}

// Resolve 返回逻辑字体名对应的内置字体名。
// 名称可写为 "embed:Go-Bold"、内置名或模板别名；未知名称返回 Default 与 false。
func Resolve(name string) (string, bool) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "embed:")
	if _, ok := embedded[name]; ok {
		return name, true
	}
	if target, ok := aliases[name]; ok {
		return target, true
	}
	return Default, false
}

// Load 返回内置字体的字节数据。
func Load(name string) ([]byte, error) {
	resolved, ok := Resolve(name)
	if !ok {
		return nil, fmt.Errorf("未知字体 %s", name)
	}
	return embedded[resolved], nil
}

// Names 列出所有可用的字体名（内置名与别名）。
func Names() []string {
	out := make([]string, 0, len(embedded)+len(aliases))
	for name := range embedded {
		out = append(out, name)
	}
	for name := range aliases {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
