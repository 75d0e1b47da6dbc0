package fonts

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/patrickmn/go-cache"
	"github.com/tdewolff/canvas"
)

const minPixelSize = 1.0

// Config 描述字体查找顺序。它是不可变的值，在构造合成器时传入。
type Config struct {
	Override   string      // 优先尝试的字体路径，可为空
	Candidates []string    // 为 nil 时使用 DefaultCandidates(runtime.GOOS)
	Logger     *log.Logger // 可选，用于记录回退
}

// Paths 返回完整的候选列表：Override 在最前。
func (c Config) Paths() []string {
	base := c.Candidates
	if base == nil {
		base = DefaultCandidates(runtime.GOOS)
	}
	out := make([]string, 0, len(base)+1)
	if c.Override != "" {
		out = append(out, c.Override)
	}
	return append(out, base...)
}

// Resolver 按候选顺序查找第一个可加载的字体，并按字号缓存 Face。
// 字体族只解析一次；之后的 Resolve 调用只读共享状态，可并发使用。
type Resolver struct {
	paths  []string
	logger *log.Logger

	once    sync.Once
	family  *canvas.FontFamily
	source  string
	builtin bool

	faces *cache.Cache
}

// NewResolver 根据 cfg 创建解析器。
func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		paths:  cfg.Paths(),
		logger: cfg.Logger,
		faces:  cache.New(cache.NoExpiration, 0),
	}
}

// Candidates 返回该解析器使用的候选列表副本。
func (r *Resolver) Candidates() []string { return append([]string(nil), r.paths...) }

// Resolve 返回 px 像素字号的字体。它从不失败：没有可用字体时回退到内置字体，
// 内置字体也无法加载时返回只能估算宽度的 Face。
func (r *Resolver) Resolve(px float64) *Face {
	if px < minPixelSize {
		px = minPixelSize
	}
	key := strconv.FormatFloat(px, 'f', -1, 64)
	if v, ok := r.faces.Get(key); ok {
		return v.(*Face)
	}

	r.once.Do(r.load)
	face := &Face{source: r.source, size: px, builtin: r.builtin}
	if r.family != nil {
		face.face = r.family.Face(px*PxToPt, color.Black, canvas.FontRegular, canvas.FontNormal)
	}
	if err := r.faces.Add(key, face, cache.NoExpiration); err != nil {
		if v, ok := r.faces.Get(key); ok {
			return v.(*Face)
		}
	}
	return face
}

// Source 返回最终选中的字体来源（会触发一次解析）。
func (r *Resolver) Source() string {
	r.once.Do(r.load)
	return r.source
}

func (r *Resolver) load() {
	for _, path := range r.paths {
		family, err := loadFamily(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.warn("字体加载失败，尝试下一个候选", "path", path, "err", err)
			}
			continue
		}
		r.family, r.source = family, path
		r.debug("使用字体", "path", path)
		return
	}

	r.warn("未找到可用字体，使用内置字体", "candidates", len(r.paths))
	family, err := loadFamily(BuiltinSource)
	if err != nil {
		r.warn("内置字体加载失败，文字将不会绘制", "err", err)
		return
	}
	r.family, r.source, r.builtin = family, BuiltinSource, true
}

func loadFamily(path string) (family *canvas.FontFamily, err error) {
	var data []byte
	if IsEmbedded(path) {
		data, err = Load(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			family, err = nil, fmt.Errorf("解析字体 %s 失败: %v", path, rec)
		}
	}()
	family = canvas.NewFontFamily("koma")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", path, err)
	}
	return family, nil
}

func (r *Resolver) warn(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, kv...)
	}
}

func (r *Resolver) debug(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, kv...)
	}
}
