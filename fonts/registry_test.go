package fonts

import "testing"

func TestResolveAliases(t *testing.T) {
	cases := map[string]string{
		"Charter":           "Go-Regular",
		"Charter-Bold":      "Go-Bold",
		"Kunstler":          "Go-Italic",
		"embed:Go-Bold":     "Go-Bold",
		" Times-Roman-Bold": "Go-Bold",
	}
	for in, want := range cases {
		got, ok := Resolve(in)
		if !ok || got != want {
			t.Fatalf("Resolve(%q) = %q,%v，期望 %q", in, got, ok, want)
		}
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	got, ok := Resolve("Comic-Sans")
	if ok || got != Default {
		t.Fatalf("未知字体应回退到 %s，实际 %q,%v", Default, got, ok)
	}
	if _, err := Load("Comic-Sans"); err == nil {
		t.Fatalf("未知字体应返回错误")
	}
}

func TestLoadReturnsTrueType(t *testing.T) {
	for _, name := range Names() {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s) 失败: %v", name, err)
		}
		// TrueType 文件以 0x00010000 开头
		if len(data) < 4 || data[0] != 0 || data[1] != 1 || data[2] != 0 || data[3] != 0 {
			t.Fatalf("%s 不是 TrueType 数据", name)
		}
	}
}
