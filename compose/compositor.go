package compose

import (
	"image"

	"github.com/ByLCY/koma/fonts"
	"github.com/ByLCY/koma/layout"
	canvasrenderer "github.com/ByLCY/koma/renderer/canvas"
	"github.com/ByLCY/koma/scene"
)

// 对白与旁白的像素字号。
const (
	DialogueSize  = 20
	NarrationSize = 17
)

var _ layout.Measurer = (*fonts.Face)(nil)

// Options 配置合成器。Canvas 为零值时使用 layout.DefaultCanvas。
type Options struct {
	Fonts  fonts.Config
	Canvas layout.Canvas
}

// Compositor 把场景合成为一页灰度漫画。构造时解析字体，之后只读。
type Compositor struct {
	canvas   layout.Canvas
	resolver *fonts.Resolver
	faces    layout.Faces
	painter  canvasrenderer.Painter
}

// New 创建合成器并解析对白、旁白字体。
func New(opts Options) *Compositor {
	cv := opts.Canvas
	if cv == (layout.Canvas{}) {
		cv = layout.DefaultCanvas
	}
	r := fonts.NewResolver(opts.Fonts)
	dialogue := r.Resolve(DialogueSize)
	narration := r.Resolve(NarrationSize)
	return &Compositor{
		canvas:   cv,
		resolver: r,
		faces:    layout.Faces{Dialogue: dialogue, Narration: narration},
		painter:  canvasrenderer.Painter{Dialogue: dialogue, Narration: narration},
	}
}

// FontSource 返回实际使用的字体来源。
func (c *Compositor) FontSource() string { return c.resolver.Source() }

// Plan 计算场景的绘制计划，不做任何 I/O。
func (c *Compositor) Plan(sc scene.Scene) layout.Plan {
	return c.canvas.Plan(sc, c.faces)
}

// Compose 合成一页。images 按分镜下标对齐，缺失或为 nil 的项表示没有插图，
// 多余的项被忽略。Compose 从不失败。
func (c *Compositor) Compose(sc scene.Scene, images []image.Image) *Page {
	plan := c.Plan(sc)
	return &Page{
		scene: sc.Index,
		plan:  plan,
		img:   c.painter.Paint(plan, images),
	}
}
