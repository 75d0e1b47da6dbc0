package compose

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/koma/renderer"
	"github.com/ByLCY/koma/scene"
)

// ArtSource 为场景提供按分镜对齐的插图，缺失的项为 nil。
type ArtSource interface {
	Load(sc scene.Scene) []image.Image
}

// Format 是 PNG 之外的额外输出格式，例如 PDF。
type Format struct {
	Ext      string // 不带点的扩展名
	Renderer renderer.Renderer
}

// Batch 并行合成多页并写到 Output 目录，文件名为 page_%03d.png（从 1 开始）。
// 每个 worker 持有自己的 Compositor，共享同一份不可变的 Options。
type Batch struct {
	Options Options
	Output  string
	Workers int       // <=0 时使用 runtime.NumCPU()
	Art     ArtSource // 可为 nil
	Formats []Format
}

// PageName 返回第 n 页（从 1 开始）的文件名。
func PageName(n int, ext string) string {
	return fmt.Sprintf("page_%03d.%s", n, ext)
}

// Run 合成 scenes 中的每一页。ctx 取消后不再调度新页面并返回 ctx 的错误；
// 已写出的页面保留在返回值中，未完成的为 nil。
func (b Batch) Run(ctx context.Context, scenes []scene.Scene) ([]*Page, error) {
	logger := log.FromContext(ctx)
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(scenes), 1))

	pages := make([]*Page, len(scenes))
	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range scenes {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			comp := New(b.Options)
			for i := range jobs {
				page, err := b.one(comp, i, scenes[i])
				if err != nil {
					return err
				}
				pages[i] = page
				logger.Debug("页面已写出", "page", i+1, "scene", scenes[i].Index, "panels", len(scenes[i].Panels), "path", page.Path())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pages, err
	}
	return pages, ctx.Err()
}

func (b Batch) one(comp *Compositor, i int, sc scene.Scene) (*Page, error) {
	var art []image.Image
	if b.Art != nil {
		art = b.Art.Load(sc)
	}
	page := comp.Compose(sc, art)
	if err := Save(page, filepath.Join(b.Output, PageName(i+1, "png"))); err != nil {
		return nil, err
	}
	for _, f := range b.Formats {
		if err := SaveAs(page, filepath.Join(b.Output, PageName(i+1, f.Ext)), f.Renderer); err != nil {
			return nil, err
		}
	}
	return page, nil
}
