package scene

// 该文件定义脚本解析、布局计算与页面合成共用的分镜数据模型。

import "strings"

// Kind 是分镜类型。未知输入一律回落到 KindAction。
type Kind int

const (
	KindAction Kind = iota
	KindDialogue
	KindNarration
	KindEstablishing
)

var kindNames = [...]string{
	KindAction:       "action",
	KindDialogue:     "dialogue",
	KindNarration:    "narration",
	KindEstablishing: "establishing",
}

// ParseKind 不区分大小写地解析分镜类型，无法识别时返回 KindAction。
func ParseKind(s string) Kind {
	key := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == key {
			return Kind(k)
		}
	}
	return KindAction
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindAction]
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}

// LayoutHint 影响同一分镜数下的版式选择。未知输入回落到 LayoutStandard。
type LayoutHint int

const (
	LayoutStandard LayoutHint = iota
	LayoutAction
	LayoutEmotional
)

var hintNames = [...]string{
	LayoutStandard:  "standard",
	LayoutAction:    "action",
	LayoutEmotional: "emotional",
}

// ParseLayoutHint 不区分大小写地解析版式提示，无法识别时返回 LayoutStandard。
func ParseLayoutHint(s string) LayoutHint {
	key := strings.ToLower(strings.TrimSpace(s))
	for h, name := range hintNames {
		if name == key {
			return LayoutHint(h)
		}
	}
	return LayoutStandard
}

func (h LayoutHint) String() string {
	if h < 0 || int(h) >= len(hintNames) {
		return hintNames[LayoutStandard]
	}
	return hintNames[h]
}

// MarshalText implements encoding.TextMarshaler.
func (h LayoutHint) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (h *LayoutHint) UnmarshalText(b []byte) error {
	*h = ParseLayoutHint(string(b))
	return nil
}

// Panel 是页面中的一格分镜。构造后视为只读。
type Panel struct {
	Index             int      `json:"index"`
	Kind              Kind     `json:"kind"`
	VisualDescription string   `json:"visualDescription"`
	Dialogue          []string `json:"dialogue,omitempty"`
	Narration         string   `json:"narration,omitempty"` // 为空表示没有旁白
}

// HasNarration 报告该分镜是否带旁白。
func (p Panel) HasNarration() bool { return strings.TrimSpace(p.Narration) != "" }

// Scene 对应输出的一页。Panels 的顺序即阅读顺序。
type Scene struct {
	Index  int        `json:"index"`
	Panels []Panel    `json:"panels"`
	Layout LayoutHint `json:"layout"`
}
