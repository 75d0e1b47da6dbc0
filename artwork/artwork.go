// Package artwork 从目录中读取分镜插图。
package artwork

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/ByLCY/koma/scene"
)

// Extensions 是按优先顺序尝试的插图扩展名。
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

// Dir 按 <Root>/scene_%03d/panel_%02d.<ext> 查找插图。
type Dir struct {
	Root   string
	Logger *log.Logger // 可选
}

// Path 返回场景 sceneIndex 第 panelIndex 格插图的路径（不含扩展名）。
func (d Dir) Path(sceneIndex, panelIndex int) string {
	return filepath.Join(d.Root, fmt.Sprintf("scene_%03d", sceneIndex), fmt.Sprintf("panel_%02d", panelIndex))
}

// Load 返回与 sc.Panels 对齐的插图，找不到或无法解码的项为 nil。
func (d Dir) Load(sc scene.Scene) []image.Image {
	out := make([]image.Image, len(sc.Panels))
	if d.Root == "" {
		return out
	}
	for i, p := range sc.Panels {
		img, err := d.Open(sc.Index, p.Index)
		if err != nil {
			if d.Logger != nil {
				d.Logger.Warn("插图读取失败，跳过", "scene", sc.Index, "panel", p.Index, "err", err)
			}
			continue
		}
		out[i] = img
	}
	return out
}

// Open 读取单张插图并按 EXIF 方向校正。没有对应文件时返回 (nil, nil)。
func (d Dir) Open(sceneIndex, panelIndex int) (image.Image, error) {
	base := d.Path(sceneIndex, panelIndex)
	for _, ext := range Extensions {
		path := base + ext
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("解码插图 %s 失败: %w", path, err)
		}
		return img, nil
	}
	return nil, nil
}
