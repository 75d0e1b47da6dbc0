// Package manifest 扫描输出目录中的页面图片并生成阅读器使用的 manga-manifest.json。
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"
)

// FileName 是清单在输出目录中的默认文件名。
const FileName = "manga-manifest.json"

var pagePattern = regexp.MustCompile(`^page_(\d+)\.png$`)

// Options 描述作品信息与分章方式。PagesPerChapter 为 0 时全部页面归为一章。
type Options struct {
	NovelID         string `toml:"novel_id"`
	Title           string `toml:"title"`
	Author          string `toml:"author"`
	PagesPerChapter int    `toml:"pages_per_chapter"`

	Now func() time.Time `toml:"-"` // 为 nil 时使用 time.Now
}

// DefaultOptions 返回默认作品信息。
func DefaultOptions() Options {
	return Options{NovelID: "ningen_shikkaku", Title: "人間失格", Author: "太宰治"}
}

// Manifest 是清单文件的顶层结构。
type Manifest struct {
	Version     int     `json:"version"`
	GeneratedAt string  `json:"generatedAt"`
	Novels      []Novel `json:"novels"`
}

// Novel 是一部作品。
type Novel struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CoverImage string    `json:"coverImage"`
	Chapters   []Chapter `json:"chapters"`
}

// Chapter 列出一章的页面，路径相对于输出目录。
type Chapter struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Pages []string `json:"pages"`
}

// Pages 返回 dir 中匹配 page_N.png 的文件名，按页码排序。
func Pages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type page struct {
		name string
		n    int
	}
	var pages []page
	for _, e := range entries {
		m := pagePattern.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pages = append(pages, page{name: e.Name(), n: n})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].n != pages[j].n {
			return pages[i].n < pages[j].n
		}
		return pages[i].name < pages[j].name
	})
	return lo.Map(pages, func(p page, _ int) string { return p.name }), nil
}

// Build 生成清单。页面取自 dir/<NovelID>/；该子目录中没有页面时，先把 dir
// 下的页面复制进去（已存在的文件不覆盖）。没有任何页面时返回错误。
func Build(dir string, opts Options) (*Manifest, error) {
	if opts.NovelID == "" {
		return nil, errors.New("作品 ID 不能为空")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("输出目录不可用: %w", err)
	}
	novelDir, err := ensureNovelDir(dir, opts.NovelID)
	if err != nil {
		return nil, err
	}
	pages, err := Pages(novelDir)
	if err != nil {
		return nil, fmt.Errorf("扫描页面失败: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s 与 %s 中没有 page_*.png", dir, novelDir)
	}

	chunks := [][]string{pages}
	if opts.PagesPerChapter > 0 {
		chunks = lo.Chunk(pages, opts.PagesPerChapter)
	}
	url := func(name string, _ int) string { return opts.NovelID + "/" + name }
	chapters := lo.Map(chunks, func(chunk []string, i int) Chapter {
		title := "全編"
		if len(chunks) > 1 {
			title = fmt.Sprintf("第%d章", i+1)
		}
		return Chapter{
			ID:    fmt.Sprintf("chapter_%02d", i+1),
			Title: title,
			Pages: lo.Map(chunk, url),
		}
	})

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return &Manifest{
		Version:     1,
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Novels: []Novel{{
			ID:         opts.NovelID,
			Title:      opts.Title,
			Author:     opts.Author,
			CoverImage: url(pages[0], 0),
			Chapters:   chapters,
		}},
	}, nil
}

func ensureNovelDir(dir, novelID string) (string, error) {
	novelDir := filepath.Join(dir, novelID)
	if err := os.MkdirAll(novelDir, 0o755); err != nil {
		return "", fmt.Errorf("创建作品目录失败: %w", err)
	}
	existing, err := Pages(novelDir)
	if err != nil {
		return "", fmt.Errorf("扫描页面失败: %w", err)
	}
	if len(existing) > 0 {
		return novelDir, nil
	}
	root, err := Pages(dir)
	if err != nil {
		return "", fmt.Errorf("扫描页面失败: %w", err)
	}
	for _, name := range root {
		if err := copyFile(filepath.Join(dir, name), filepath.Join(novelDir, name)); err != nil {
			return "", err
		}
	}
	return novelDir, nil
}

func copyFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("复制页面 %s 失败: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("复制页面 %s 失败: %w", src, err)
	}
	return nil
}

// Write 以缩进 JSON 写出清单，不转义 HTML 字符与非 ASCII 字符。
func Write(m *Manifest, path string) error {
	if m == nil {
		return errors.New("清单为空")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("编码清单失败: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入清单失败: %w", err)
	}
	return nil
}

// PageCount 返回清单中所有章节的页数之和。
func (m *Manifest) PageCount() int {
	return lo.SumBy(m.Novels, func(n Novel) int {
		return lo.SumBy(n.Chapters, func(c Chapter) int { return len(c.Pages) })
	})
}
