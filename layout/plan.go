package layout

import "github.com/ByLCY/koma/scene"

// Build 在 DefaultCanvas 上为场景生成绘制计划。
func Build(sc scene.Scene, faces Faces) Plan {
	return DefaultCanvas.Plan(sc, faces)
}

// Plan 为场景生成绘制计划：分镜矩形、旁白框与对白气泡。
// 结果只依赖输入，同样的场景与字体总得到同样的计划。
func (c Canvas) Plan(sc scene.Scene, faces Faces) Plan {
	rects := c.Rectangles(len(sc.Panels), sc.Layout)
	plan := Plan{
		Scene:  sc.Index,
		Layout: sc.Layout.String(),
		Width:  c.Width,
		Height: c.Height,
		Panels: make([]PanelPlan, 0, len(sc.Panels)),
	}
	for i, p := range sc.Panels {
		rect := rects[i]
		pp := PanelPlan{
			Index:    p.Index,
			Rect:     rect,
			Interior: rect.Inset(BorderWidth),
		}
		if p.HasNarration() {
			pp.Caption = c.PlaceCaption(rect, p.Narration, faces.Narration)
		}
		pp.Bubbles = c.PlaceBubbles(rect, p.Dialogue, faces.Dialogue)
		for line := len(pp.Bubbles); line < len(p.Dialogue); line++ {
			pp.Dropped = append(pp.Dropped, line)
		}
		plan.Panels = append(plan.Panels, pp)
	}
	return plan
}
