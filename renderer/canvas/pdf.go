package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/koma/renderer"
)

// B5WidthMM is the default physical page width of PDF output.
const B5WidthMM = 182.0

// PDF embeds a page raster into a single-page PDF. The page height follows
// the raster's aspect ratio.
type PDF struct {
	WidthMM float64
	Title   string
	Author  string
}

var _ renderer.Renderer = PDF{}

// Render implements renderer.Renderer.
func (p PDF) Render(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	width := p.WidthMM
	if width <= 0 {
		width = B5WidthMM
	}
	dpmm := float64(b.Dx()) / width
	height := float64(b.Dy()) / dpmm

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	writer.SetInfo(p.Title, "", "", p.Author, "koma")

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
