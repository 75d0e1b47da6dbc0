package fonts

import (
	"math"
	"unicode/utf8"

	"github.com/tdewolff/canvas"
)

// 页面画布上 1 单位 = 1 像素，canvas 以毫米为单位，字号以 pt 为单位。
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// degenerateAdvance 是没有任何可用字体时每个字符的估计宽度（相对字号）。
const degenerateAdvance = 0.6

// Metrics 是以像素表示的字体度量。
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Face 是某一像素字号下的可测量、可绘制字体。
type Face struct {
	source  string
	size    float64
	builtin bool
	face    *canvas.FontFace // 为 nil 时只能估算宽度，绘制阶段跳过文字
}

// TextWidth 返回 s 渲染后的像素宽度。
func (f *Face) TextWidth(s string) float64 {
	if s == "" {
		return 0
	}
	if f.face == nil {
		return float64(utf8.RuneCountInString(s)) * f.size * degenerateAdvance
	}
	return f.face.TextWidth(s)
}

// Metrics 返回字体度量。
func (f *Face) Metrics() Metrics {
	if f.face == nil {
		return Metrics{Ascent: f.size * 0.8, Descent: f.size * 0.2, LineHeight: f.size * 1.2}
	}
	m := f.face.Metrics()
	return Metrics{
		Ascent:     math.Abs(m.Ascent),
		Descent:    math.Abs(m.Descent),
		LineHeight: m.LineHeight,
	}
}

// Size 返回像素字号。
func (f *Face) Size() float64 { return f.size }

// Source 返回字体来源路径；内置字体为 BuiltinSource，完全不可用时为空。
func (f *Face) Source() string { return f.source }

// Builtin 报告该字体是否来自内置回退。
func (f *Face) Builtin() bool { return f.builtin }

// Drawable 报告该字体是否可以实际绘制文字。
func (f *Face) Drawable() bool { return f.face != nil }

// Canvas 返回底层 canvas 字体，可能为 nil。
func (f *Face) Canvas() *canvas.FontFace { return f.face }
