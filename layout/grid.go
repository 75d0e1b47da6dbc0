package layout

import "github.com/ByLCY/koma/scene"

// 页面画布固定尺寸与外/内边距（像素）。
const (
	PageWidth   = 1080
	PageHeight  = 1528
	PanelMargin = 12

	// actionTopPercent 是 3 格 action 版式中首格占页面高度的比例。
	actionTopPercent = 58

	// maxDistinct 是拥有独立版式的最大分镜数，更多分镜复用该版式。
	maxDistinct = 6
)

// Canvas 描述页面尺寸与边距 m。相邻分镜在公共边上各内缩 m，间距恰为 2m。
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Margin int `json:"margin"`
}

// DefaultCanvas 是 1080×1528、边距 12 的页面。
var DefaultCanvas = Canvas{Width: PageWidth, Height: PageHeight, Margin: PanelMargin}

// Rectangles 在 DefaultCanvas 上计算 n 格分镜的矩形。
func Rectangles(n int, hint scene.LayoutHint) []Rect {
	return DefaultCanvas.Rectangles(n, hint)
}

type partition func(c Canvas, hint scene.LayoutHint) []Rect

// partitions 以分镜数为键；0..6 之外的键都落到 6。
var partitions = [maxDistinct + 1]partition{
	0: func(Canvas, scene.LayoutHint) []Rect { return nil },
	1: rows(1),
	2: rows(1, 1),
	3: three,
	4: rows(2, 2),
	5: rows(2, 3),
	6: rows(2, 2, 2),
}

// Rectangles 返回按阅读顺序排列的 n 个矩形。n>6 时循环复用 6 格网格；
// n<0 视为畸形输入，返回 6 格网格。
func (c Canvas) Rectangles(n int, hint scene.LayoutHint) []Rect {
	key := n
	if n < 0 || n > maxDistinct {
		key = maxDistinct
	}
	cells := partitions[key](c, hint)
	if n <= maxDistinct {
		return cells
	}
	out := make([]Rect, n)
	for i := range out {
		out[i] = cells[i%len(cells)]
	}
	return out
}

// span 把 [0,extent) 等分为 parts 段并返回第 i 段内缩 m 后的区间。
// 整除截断落在前面的段，最后一段的远端固定为 extent-m。
func span(extent, parts, i, m int) (int, int) {
	step := extent / parts
	start := i*step + m
	end := (i+1)*step - m
	if i == parts-1 {
		end = extent - m
	}
	return start, end
}

// rows 生成等高的若干行，第 j 行等分为 cols[j] 列。
func rows(cols ...int) partition {
	return func(c Canvas, _ scene.LayoutHint) []Rect {
		var out []Rect
		for j, n := range cols {
			y1, y2 := span(c.Height, len(cols), j, c.Margin)
			out = append(out, c.band(y1, y2, n)...)
		}
		return out
	}
}

// band 把 y1..y2 的整行等分为 cols 列。
func (c Canvas) band(y1, y2, cols int) []Rect {
	out := make([]Rect, cols)
	for i := range out {
		x1, x2 := span(c.Width, cols, i, c.Margin)
		out[i] = Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	return out
}

// three 在 action 提示下使用“大格 + 两个反应镜头”，否则为三条等高横格。
func three(c Canvas, hint scene.LayoutHint) []Rect {
	if hint != scene.LayoutAction {
		return rows(1, 1, 1)(c, hint)
	}
	m := c.Margin
	top := c.Height * actionTopPercent / 100
	head := Rect{X1: m, Y1: m, X2: c.Width - m, Y2: top - m}
	return append([]Rect{head}, c.band(top+m, c.Height-m, 2)...)
}
