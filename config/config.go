// Package config 读取 koma.toml。命令行参数覆盖文件中的值。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/koma/fonts"
	"github.com/ByLCY/koma/manifest"
)

// DefaultPath 是未指定 --config 时查找的配置文件。
const DefaultPath = "koma.toml"

// Config 汇总合成与清单生成的设置。
type Config struct {
	Font           string   `toml:"font"`            // 优先尝试的字体
	FontCandidates []string `toml:"font_candidates"` // 为空时使用平台默认列表
	Output         string   `toml:"output"`
	Workers        int      `toml:"workers"` // <=0 时使用 CPU 数
	Formats        []string `toml:"formats"`
	Art            string   `toml:"art"`
	Data           string   `toml:"data"`

	Manifest manifest.Options `toml:"manifest"`
}

// Default 返回内置默认值。
func Default() Config {
	return Config{
		Output:   "output",
		Formats:  []string{"png"},
		Manifest: manifest.DefaultOptions(),
	}
}

// Load 在默认值之上解码 path。path 为空时读取 DefaultPath，且文件不存在不算错误；
// 显式指定的文件不存在时返回错误。
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查输出格式。
func (c Config) Validate() error {
	for _, f := range c.Formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "png", "pdf":
		default:
			return fmt.Errorf("不支持的输出格式 %q（可选 png, pdf）", f)
		}
	}
	return nil
}

// Fonts 返回字体解析配置。FontCandidates 为空时使用平台默认列表。
func (c Config) Fonts() fonts.Config {
	cfg := fonts.Config{Override: c.Font}
	if len(c.FontCandidates) > 0 {
		cfg.Candidates = append([]string(nil), c.FontCandidates...)
	}
	return cfg
}
