package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinSource 是所有候选字体都不可用时使用的内置字体。
const BuiltinSource = "embed:go-regular"

var embedded = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-mono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，path 可写为 "embed:go-regular" 或直接 "go-regular"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "embed:")
	name = strings.TrimSuffix(strings.ToLower(name), ".ttf")
	data, ok := embedded[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %s", path, strings.Join(Embedded(), ", "))
	}
	return data, nil
}

// Embedded 列出可通过 embed: 前缀引用的字体名。
func Embedded() []string {
	names := make([]string, 0, len(embedded))
	for name := range embedded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmbedded 报告 src 是否使用 embed: 前缀。
func IsEmbedded(src string) bool { return strings.HasPrefix(src, "embed:") }
