package layout

import "strings"

// 对白气泡与旁白框的几何常量（像素）。
const (
	BorderWidth        = 3   // 分镜边框
	TextPadding        = 10  // 文字与框左右两侧的留白
	CaptionHeight      = 38  // 旁白框高度
	BubbleHeight       = 52  // 气泡高度
	BubbleGap          = 4   // 气泡之间的竖直间距
	BubbleMaxWidth     = 220 // 气泡最大宽度
	BubbleWidthPercent = 55  // 气泡宽度占分镜宽度的比例
	MaxBubbles         = 3   // 每格最多显示的对白行数
)

// BubbleWidth 返回分镜 panel 中气泡的宽度。
func BubbleWidth(panel Rect) int {
	return min(panel.Dx()*BubbleWidthPercent/100, BubbleMaxWidth)
}

// PlaceBubbles 把前 MaxBubbles 行对白从分镜右下角向上堆叠。
// 顶边越过 panel.Y1+m 的气泡（以及其后的所有行）被丢弃。
func (c Canvas) PlaceBubbles(panel Rect, lines []string, m Measurer) []Bubble {
	bw := BubbleWidth(panel)
	if bw <= 0 || len(lines) == 0 {
		return nil
	}
	lines = lines[:min(len(lines), MaxBubbles)]
	maxText := float64(bw - 2*TextPadding)

	out := make([]Bubble, 0, len(lines))
	for i, line := range lines {
		x := panel.X2 - bw - c.Margin
		y := panel.Y2 - BubbleHeight - c.Margin - i*(BubbleHeight+BubbleGap)
		if y < panel.Y1+c.Margin {
			break
		}
		text := Fit(line, m, maxText)
		out = append(out, Bubble{
			Rect:      Rect{X1: x, Y1: y, X2: x + bw, Y2: y + BubbleHeight},
			Text:      text,
			Line:      i,
			Truncated: Truncated(line, text),
		})
	}
	return out
}

// PlaceCaption 在分镜顶部放置旁白框；空白旁白返回 nil。
func (c Canvas) PlaceCaption(panel Rect, text string, m Measurer) *Caption {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r := Rect{
		X1: panel.X1 + c.Margin,
		Y1: panel.Y1 + c.Margin,
		X2: panel.X2 - c.Margin,
		Y2: panel.Y1 + c.Margin + CaptionHeight,
	}
	if !r.Valid() {
		return nil
	}
	fitted := Fit(text, m, float64(r.Dx()-2*TextPadding))
	return &Caption{Rect: r, Text: fitted, Truncated: Truncated(text, fitted)}
}
