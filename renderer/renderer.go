package renderer

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Renderer 将合成好的页面输出为最终文件，例如 PNG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(img image.Image) ([]byte, error)
}

// PNG 以无损 PNG 编码页面。
type PNG struct{}

var _ Renderer = PNG{}

// Render 实现 Renderer。
func (PNG) Render(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
