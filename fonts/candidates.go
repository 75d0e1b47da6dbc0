package fonts

// 各平台上常见的日文字体位置，按优先级排列。
var platformCandidates = map[string][]string{
	"windows": {
		"C:/Windows/Fonts/YuGothM.ttc",
		"C:/Windows/Fonts/meiryo.ttc",
		"C:/Windows/Fonts/msgothic.ttc",
	},
	"darwin": {
		"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
		"/Library/Fonts/NotoSansCJK-Regular.ttc",
	},
	"linux": {
		"/usr/share/fonts/truetype/noto/NotoSansCJKjp-Regular.otf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	},
}

// DefaultCandidates 返回 goos 对应的候选字体路径副本；未知平台按 linux 处理。
func DefaultCandidates(goos string) []string {
	list, ok := platformCandidates[goos]
	if !ok {
		list = platformCandidates["linux"]
	}
	return append([]string(nil), list...)
}
