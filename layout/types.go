package layout

// 该文件定义布局结果，供页面合成、渲染与调试 JSON 共用。

import "image"

// Rect 是以像素为单位的矩形，合法矩形满足 X2>X1、Y2>Y1。
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Dx 返回宽度。
func (r Rect) Dx() int { return r.X2 - r.X1 }

// Dy 返回高度。
func (r Rect) Dy() int { return r.Y2 - r.Y1 }

// Inset 返回四边各内缩 d 像素后的矩形。
func (r Rect) Inset(d int) Rect { return Rect{r.X1 + d, r.Y1 + d, r.X2 - d, r.Y2 - d} }

// Valid 报告矩形宽高是否为正。
func (r Rect) Valid() bool { return r.X2 > r.X1 && r.Y2 > r.Y1 }

// Within 报告矩形是否完全位于 [0,w]×[0,h] 内。
func (r Rect) Within(w, h int) bool {
	return r.X1 >= 0 && r.Y1 >= 0 && r.X2 <= w && r.Y2 <= h
}

// Overlaps 报告两个矩形是否有公共面积。
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 < o.X2 && o.X1 < r.X2 && r.Y1 < o.Y2 && o.Y1 < r.Y2
}

// Image 转为 image.Rectangle。
func (r Rect) Image() image.Rectangle { return image.Rect(r.X1, r.Y1, r.X2, r.Y2) }

// Plan 记录一页的尺寸以及每格分镜可以直接绘制的元素。
type Plan struct {
	Scene  int         `json:"scene"`
	Layout string      `json:"layout"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Panels []PanelPlan `json:"panels"`
}

// Clone 返回不与 p 共享切片与指针的副本。
func (p Plan) Clone() Plan {
	out := p
	out.Panels = make([]PanelPlan, len(p.Panels))
	for i, pp := range p.Panels {
		if pp.Caption != nil {
			c := *pp.Caption
			pp.Caption = &c
		}
		pp.Bubbles = append([]Bubble(nil), pp.Bubbles...)
		pp.Dropped = append([]int(nil), pp.Dropped...)
		out.Panels[i] = pp
	}
	return out
}

// PanelPlan 是单格分镜的绘制计划。Interior 是粘贴插图的区域（去掉边框）。
type PanelPlan struct {
	Index    int      `json:"index"`
	Rect     Rect     `json:"rect"`
	Interior Rect     `json:"interior"`
	Caption  *Caption `json:"caption,omitempty"`
	Bubbles  []Bubble `json:"bubbles,omitempty"`
	Dropped  []int    `json:"dropped,omitempty"` // 未显示的对白下标
}

// Caption 是贴在分镜顶部的旁白框。
type Caption struct {
	Rect      Rect   `json:"rect"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated,omitempty"`
}

// Bubble 是一个对白气泡及其（可能被截断的）文字。Line 是对白在分镜中的下标。
type Bubble struct {
	Rect      Rect   `json:"rect"`
	Text      string `json:"text"`
	Line      int    `json:"line"`
	Truncated bool   `json:"truncated,omitempty"`
}
