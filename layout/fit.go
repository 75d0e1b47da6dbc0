package layout

import "unicode/utf8"

// Fit 返回 text 在 maxWidth 内能放下的最长前缀。逐个去掉末尾字符直到宽度满足
// 约束或只剩一个字符；不追加省略号。结果总是 text 的前缀，且对结果再次 Fit
// 得到同样的字符串。m 为 nil 时原样返回。
func Fit(text string, m Measurer, maxWidth float64) string {
	if text == "" || m == nil {
		return text
	}
	runes := []rune(text)
	n := len(runes)
	for n > 1 && m.TextWidth(string(runes[:n])) > maxWidth {
		n--
	}
	if n == len(runes) {
		return text
	}
	return string(runes[:n])
}

// Truncated 报告 fitted 是否比 original 短。
func Truncated(original, fitted string) bool {
	return utf8.RuneCountInString(fitted) < utf8.RuneCountInString(original)
}
