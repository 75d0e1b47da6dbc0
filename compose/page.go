package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ByLCY/koma/layout"
	"github.com/ByLCY/koma/renderer"
)

// Page 是合成好的一页，返回后不可变；需要修改位图时用 Gray 取副本。
// 唯一会变化的是 Save 成功后记录的写出位置。
type Page struct {
	scene int
	plan  layout.Plan
	path  string

	img *image.Gray
}

var _ image.Image = (*Page)(nil)

// Scene 返回页面对应的场景编号。
func (p *Page) Scene() int { return p.scene }

// Plan 返回绘制计划的副本。
func (p *Page) Plan() layout.Plan { return p.plan.Clone() }

// Path 返回 Save 写出的位置，未保存时为空。
func (p *Page) Path() string { return p.path }

// ColorModel 实现 image.Image。
func (p *Page) ColorModel() color.Model { return color.GrayModel }

// Bounds 实现 image.Image。
func (p *Page) Bounds() image.Rectangle { return p.img.Bounds() }

// At 实现 image.Image。
func (p *Page) At(x, y int) color.Color { return p.img.At(x, y) }

// GrayAt 返回 (x,y) 处的灰度值。
func (p *Page) GrayAt(x, y int) color.Gray { return p.img.GrayAt(x, y) }

// Gray 返回位图的副本。
func (p *Page) Gray() *image.Gray {
	out := image.NewGray(p.img.Bounds())
	copy(out.Pix, p.img.Pix)
	return out
}

// Save 以无损 PNG 写出页面，必要时创建父目录并覆盖已有文件，成功后记录到 Path。
func Save(page *Page, path string) error {
	if err := SaveAs(page, path, renderer.PNG{}); err != nil {
		return err
	}
	page.path = path
	return nil
}

// SaveAs 用 r 编码页面并写到 path。
func SaveAs(page *Page, path string, r renderer.Renderer) error {
	if page == nil || page.img == nil {
		return errors.New("页面为空")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	data, err := r.Render(page)
	if err != nil {
		return fmt.Errorf("渲染页面 %s 失败: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入页面文件失败: %w", err)
	}
	return nil
}
