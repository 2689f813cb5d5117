package layout

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// FormatAmount 输出两位小数，四舍五入（远离零），不分组千位。
// 小数点只接受 "," 或 "."，其他值按 "." 处理。
func FormatAmount(v decimal.Decimal, decimalPoint string) string {
	s := v.StringFixed(2)
	if decimalPoint == "," {
		return strings.Replace(s, ".", ",", 1)
	}
	return s
}

// FormatPercent 去掉多余的零，例如 19.00 → "19"，5.50 → "5,5"。
func FormatPercent(v decimal.Decimal, decimalPoint string) string {
	s := v.String()
	if decimalPoint == "," {
		return strings.Replace(s, ".", ",", 1)
	}
	return s
}

// LetterSpace 在字母间插入空格，单词之间保留两个空格："Pro forma" → "P r o  f o r m a"。
func LetterSpace(s string) string {
	words := strings.FieldsFunc(s, unicode.IsSpace)
	spaced := make([]string, 0, len(words))
	for _, w := range words {
		runes := []rune(w)
		parts := make([]string, len(runes))
		for i, r := range runes {
			parts[i] = string(r)
		}
		spaced = append(spaced, strings.Join(parts, " "))
	}
	return strings.Join(spaced, "  ")
}
