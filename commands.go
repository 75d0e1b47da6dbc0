package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ByLCY/koma/artwork"
	"github.com/ByLCY/koma/compose"
	"github.com/ByLCY/koma/config"
	"github.com/ByLCY/koma/layout"
	"github.com/ByLCY/koma/manifest"
	canvasrenderer "github.com/ByLCY/koma/renderer/canvas"
	"github.com/ByLCY/koma/scene"
	"github.com/ByLCY/koma/script"
)

func (a *app) composeCommand() *cobra.Command {
	var (
		output, art, font, data, debug string
		workers, pages                 int
		formats                        []string
	)
	cmd := &cobra.Command{
		Use:   "compose <script>",
		Short: "读取脚本（.json/.yaml/.koma）并输出 page_NNN.png",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("art") {
				cfg.Art = art
			}
			if flags.Changed("font") {
				cfg.Font = font
			}
			if flags.Changed("data") {
				cfg.Data = data
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("format") {
				cfg.Formats = formats
			}
			return runCompose(cmd.Context(), args[0], cfg, pages, debug)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "输出目录")
	f.StringVar(&art, "art", "", "插图目录（scene_NNN/panel_NN.png）")
	f.StringVar(&font, "font", "", "优先使用的字体文件，支持 embed:go-regular")
	f.StringVar(&data, "data", "", "绑定到脚本 ${path} 占位符的 JSON/YAML 数据文件")
	f.IntVar(&workers, "workers", 0, "并行合成的页数（默认 CPU 数）")
	f.StringSliceVar(&formats, "format", nil, "输出格式，png 总会输出，可追加 pdf")
	f.IntVar(&pages, "pages", 0, "只合成前 N 页")
	f.StringVar(&debug, "debug", "", "布局调试 JSON 输出路径")
	return cmd
}

// runCompose 串联脚本加载、合成与输出。
func runCompose(ctx context.Context, path string, cfg config.Config, limit int, debugPath string) error {
	logger := log.FromContext(ctx)
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := script.LoadData(cfg.Data)
	if err != nil {
		return err
	}
	scenes, err := script.Load(path, data)
	if err != nil {
		return fmt.Errorf("加载脚本失败: %w", err)
	}
	if missing := script.Unresolved(scenes, data); len(missing) > 0 {
		logger.Warn("存在未解析的占位符", "paths", missing)
	}
	if limit > 0 && limit < len(scenes) {
		scenes = scenes[:limit]
	}

	fontCfg := cfg.Fonts()
	fontCfg.Logger = logger
	batch := compose.Batch{
		Options: compose.Options{Fonts: fontCfg},
		Output:  cfg.Output,
		Workers: cfg.Workers,
		Formats: extraFormats(cfg.Formats),
	}
	if cfg.Art != "" {
		batch.Art = artwork.Dir{Root: cfg.Art, Logger: logger}
	}

	start := time.Now()
	pages, err := batch.Run(ctx, scenes)
	if err != nil {
		return fmt.Errorf("合成页面失败: %w", err)
	}

	if debugPath != "" {
		plans := lo.Map(pages, func(p *compose.Page, _ int) layout.Plan { return p.Plan() })
		if err := layout.WriteDebugJSON(plans, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	logger.Info("已生成页面", "pages", len(pages), "output", cfg.Output, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// extraFormats 把 PNG 之外的输出格式映射到渲染器。
func extraFormats(names []string) []compose.Format {
	var out []compose.Format
	for _, name := range lo.Uniq(lo.Map(names, func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) })) {
		if name == "pdf" {
			out = append(out, compose.Format{Ext: "pdf", Renderer: canvasrenderer.PDF{}})
		}
	}
	return out
}

func (a *app) layoutCommand() *cobra.Command {
	var hint string
	cmd := &cobra.Command{
		Use:   "layout <count>",
		Short: "以 JSON 输出 count 格分镜的矩形",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("无效的分镜数 %q: %w", args[0], err)
			}
			rects := layout.Rectangles(n, scene.ParseLayoutHint(hint))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rects)
		},
	}
	cmd.Flags().StringVar(&hint, "hint", "standard", "版式提示：standard、action、emotional")
	return cmd
}

func (a *app) manifestCommand() *cobra.Command {
	var (
		dir                    string
		novelID, title, author string
		perChapter             int
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "扫描输出目录并生成 manga-manifest.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.FromContext(cmd.Context())
			opts := a.cfg.Manifest
			flags := cmd.Flags()
			if flags.Changed("novel-id") {
				opts.NovelID = novelID
			}
			if flags.Changed("title") {
				opts.Title = title
			}
			if flags.Changed("author") {
				opts.Author = author
			}
			if flags.Changed("pages-per-chapter") {
				opts.PagesPerChapter = perChapter
			}
			if !flags.Changed("dir") {
				dir = a.cfg.Output
			}

			m, err := manifest.Build(dir, opts)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, manifest.FileName)
			if err := manifest.Write(m, path); err != nil {
				return err
			}
			logger.Info("已生成清单", "path", path, "novel", opts.NovelID, "chapters", len(m.Novels[0].Chapters), "pages", m.PageCount())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&dir, "dir", "d", "", "页面图片所在目录（默认为输出目录）")
	f.StringVar(&novelID, "novel-id", "", "作品 ID")
	f.StringVar(&title, "title", "", "作品标题")
	f.StringVar(&author, "author", "", "作者")
	f.IntVarP(&perChapter, "pages-per-chapter", "c", 0, "每章页数（0 表示全部页面为一章）")
	return cmd
}
