// Package script 读取场景脚本并转换为 scene.Scene。支持分析器输出的 JSON、
// 同结构的 YAML 以及 .koma DSL。
package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/koma/binding"
	"github.com/ByLCY/koma/dsl"
	"github.com/ByLCY/koma/scene"
)

// Format 是脚本的编码格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDSL  Format = "koma"
)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*")

// FormatOf 根据扩展名判断脚本格式。
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".koma":
		return FormatDSL, nil
	default:
		return "", fmt.Errorf("无法识别的脚本格式: %s", path)
	}
}

// Load 读取 path 处的脚本，并用 data 替换其中的 ${path} 占位符。
func Load(path string, data any) ([]scene.Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开脚本文件 %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, format, data)
}

// Decode 从 r 解码指定格式的脚本。
func Decode(r io.Reader, format Format, data any) ([]scene.Scene, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取脚本失败: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON:
		body, err := extractJSON(raw)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("解析 JSON 脚本失败: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("解析 YAML 脚本失败: %w", err)
		}
	case FormatDSL:
		ast, err := dsl.Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("解析 DSL 失败: %w", err)
		}
		doc = fromDSL(ast)
	default:
		return nil, fmt.Errorf("不支持的脚本格式 %q", format)
	}
	return doc.scenes(data), nil
}

// extractJSON 去掉 Markdown 代码块标记，并截取最外层的 {…}。
func extractJSON(raw []byte) ([]byte, error) {
	cleaned := bytes.TrimSpace(fencePattern.ReplaceAll(raw, nil))
	start := bytes.IndexByte(cleaned, '{')
	end := bytes.LastIndexByte(cleaned, '}') + 1
	if start == -1 || end <= start {
		return nil, fmt.Errorf("脚本中没有 JSON 对象")
	}
	return cleaned[start:end], nil
}

// LoadData 读取绑定数据文件（JSON 或 YAML）。path 为空时返回 nil。
func LoadData(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件 %s 失败: %w", path, err)
	}
	var data any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("解析数据文件 %s 失败: %w", path, err)
	}
	return data, nil
}

// Unresolved 列出脚本中在 data 里找不到的占位符，便于调用方提示。
func Unresolved(scenes []scene.Scene, data any) []string {
	var texts []string
	for _, sc := range scenes {
		for _, p := range sc.Panels {
			texts = append(texts, p.VisualDescription, p.Narration)
			texts = append(texts, p.Dialogue...)
		}
	}
	return lo.Uniq(lo.FlatMap(texts, func(s string, _ int) []string {
		return binding.Unresolved(s, data)
	}))
}
