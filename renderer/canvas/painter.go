package canvasrenderer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/koma/fonts"
	"github.com/ByLCY/koma/layout"
)

// Stroke widths and tones of the page elements, in pixels and 8-bit gray.
const (
	captionBorderWidth = 1
	bubbleBorderWidth  = 2
)

var (
	paperTone   = color.Gray{Y: 255}
	panelTone   = color.Gray{Y: 245}
	captionTone = color.Gray{Y: 220}
)

// Painter rasterizes a layout.Plan onto a grayscale page.
// Faces may be nil or non-drawable, in which case text is skipped.
type Painter struct {
	Dialogue  *fonts.Face
	Narration *fonts.Face
}

// Paint draws each panel back to front: frame, artwork, caption, bubbles.
// Later panels cover earlier ones. art is aligned with plan.Panels; nil or
// missing entries leave the panel fill visible.
func (p Painter) Paint(plan layout.Plan, art []image.Image) *image.Gray {
	page := image.NewGray(image.Rect(0, 0, plan.Width, plan.Height))
	draw.Draw(page, page.Bounds(), image.NewUniform(paperTone), image.Point{}, draw.Src)
	if len(plan.Panels) == 0 || page.Bounds().Empty() {
		return page
	}
	for _, run := range disjointRuns(plan.Panels) {
		p.paintRun(page, plan, run, art)
	}
	return page
}

// paintRun paints panels whose rects are pairwise disjoint. Their elements
// stay inside their own rects, so one frame layer and one overlay layer
// give the same pixels as painting them one by one.
func (p Painter) paintRun(page *image.Gray, plan layout.Plan, run []int, art []image.Image) {
	frames := newLayer(plan.Width, plan.Height)
	for _, i := range run {
		frames.frame(plan.Panels[i].Rect)
	}
	frames.compositeOnto(page)

	for _, i := range run {
		if i < len(art) && art[i] != nil {
			pasteArtwork(page, plan.Panels[i].Interior, art[i])
		}
	}

	overlay := newLayer(plan.Width, plan.Height)
	for _, i := range run {
		pp := plan.Panels[i]
		if pp.Caption != nil {
			overlay.caption(*pp.Caption, p.Narration)
		}
		for _, b := range pp.Bubbles {
			overlay.bubble(b, p.Dialogue)
		}
	}
	overlay.compositeOnto(page)
}

// disjointRuns splits panel indexes, in order, into consecutive runs. A new
// run starts at the first panel that overlaps any panel of the current run.
func disjointRuns(panels []layout.PanelPlan) [][]int {
	var runs [][]int
	var cur []int
	for i, pp := range panels {
		for _, j := range cur {
			if pp.Rect.Overlaps(panels[j].Rect) {
				runs = append(runs, cur)
				cur = nil
				break
			}
		}
		cur = append(cur, i)
	}
	return append(runs, cur)
}

// pasteArtwork converts img to grayscale, resizes it to the interior and
// overwrites the pixels underneath.
func pasteArtwork(dst *image.Gray, interior layout.Rect, img image.Image) {
	if !interior.Valid() || img.Bounds().Empty() {
		return
	}
	resized := imaging.Resize(imaging.Grayscale(img), interior.Dx(), interior.Dy(), imaging.Lanczos)
	draw.Draw(dst, interior.Image(), resized, image.Point{}, draw.Src)
}

// layer is a transparent vector canvas with a top-left origin where one
// unit maps to one pixel.
type layer struct {
	c   *canvas.Canvas
	ctx *canvas.Context
}

func newLayer(w, h int) *layer {
	c := canvas.New(float64(w), float64(h))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &layer{c: c, ctx: ctx}
}

func (l *layer) compositeOnto(dst *image.Gray) {
	img := rasterizer.Draw(l.c, canvas.DPMM(1), canvas.DefaultColorSpace)
	draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Over)
}

// rect fills r and strokes a border of width w that stays inside r.
func (l *layer) rect(r layout.Rect, fill color.Color, w float64) {
	l.ctx.SetFillColor(fill)
	l.ctx.SetStrokeColor(canvas.Black)
	l.ctx.SetStrokeWidth(w)
	l.ctx.DrawPath(float64(r.X1)+w/2, float64(r.Y1)+w/2, canvas.Rectangle(float64(r.Dx())-w, float64(r.Dy())-w))
}

func (l *layer) frame(r layout.Rect) {
	l.rect(r, panelTone, layout.BorderWidth)
}

func (l *layer) caption(c layout.Caption, face *fonts.Face) {
	l.rect(c.Rect, captionTone, captionBorderWidth)
	l.text(c.Rect, c.Text, face)
}

func (l *layer) bubble(b layout.Bubble, face *fonts.Face) {
	const w = bubbleBorderWidth
	cx := float64(b.Rect.X1+b.Rect.X2) / 2
	cy := float64(b.Rect.Y1+b.Rect.Y2) / 2
	l.ctx.SetFillColor(canvas.White)
	l.ctx.SetStrokeColor(canvas.Black)
	l.ctx.SetStrokeWidth(w)
	l.ctx.DrawPath(cx, cy, canvas.Ellipse((float64(b.Rect.Dx())-w)/2, (float64(b.Rect.Dy())-w)/2))
	l.text(b.Rect, b.Text, face)
}

// text draws a single line centered in r, with the line box centered
// vertically on the font's ascent and descent.
func (l *layer) text(r layout.Rect, s string, face *fonts.Face) {
	if s == "" || face == nil || !face.Drawable() {
		return
	}
	m := face.Metrics()
	cx := float64(r.X1+r.X2) / 2
	baseline := float64(r.Y1) + (float64(r.Dy())-(m.Ascent+m.Descent))/2 + m.Ascent
	l.ctx.DrawText(cx, baseline, canvas.NewTextLine(face.Canvas(), s, canvas.Center))
}
