package script

import (
	"github.com/samber/lo"

	"github.com/ByLCY/koma/binding"
	"github.com/ByLCY/koma/dsl"
	"github.com/ByLCY/koma/scene"
)

// document 镜像分析器输出的 JSON 结构，YAML 使用同样的字段名。
type document struct {
	Scenes []sceneRecord `json:"scenes" yaml:"scenes"`
}

type sceneRecord struct {
	Number *int          `json:"scene_number" yaml:"scene_number"`
	Layout string        `json:"page_layout" yaml:"page_layout"`
	Panels []panelRecord `json:"panels" yaml:"panels"`
}

type panelRecord struct {
	Number    *int     `json:"panel_number" yaml:"panel_number"`
	Type      string   `json:"panel_type" yaml:"panel_type"`
	Visual    string   `json:"visual_description" yaml:"visual_description"`
	Dialogue  []string `json:"dialogue" yaml:"dialogue"`
	Narration *string  `json:"narration" yaml:"narration"`
}

// scenes 填充缺省值并替换占位符。缺少编号时使用从 1 开始的位置。
func (d document) scenes(data any) []scene.Scene {
	return lo.Map(d.Scenes, func(rec sceneRecord, i int) scene.Scene {
		return scene.Scene{
			Index:  lo.FromPtrOr(rec.Number, i+1),
			Layout: scene.ParseLayoutHint(rec.Layout),
			Panels: lo.Map(rec.Panels, func(p panelRecord, j int) scene.Panel {
				return scene.Panel{
					Index:             lo.FromPtrOr(p.Number, j+1),
					Kind:              scene.ParseKind(p.Type),
					VisualDescription: binding.Interpolate(p.Visual, data),
					Dialogue:          lo.Ternary(len(p.Dialogue) == 0, []string{}, binding.Lines(p.Dialogue, data)),
					Narration:         binding.Interpolate(lo.FromPtr(p.Narration), data),
				}
			}),
		}
	})
}

func fromDSL(ast *dsl.Script) document {
	doc := document{}
	for _, sc := range ast.Scenes {
		rec := sceneRecord{Number: sc.Number, Layout: sc.Layout}
		for _, p := range sc.Panels {
			visual, _ := p.Property("visual")
			pr := panelRecord{Number: p.Number, Type: p.Kind, Visual: visual, Dialogue: p.Dialogue()}
			if n, ok := p.Property("narration"); ok {
				pr.Narration = &n
			}
			rec.Panels = append(rec.Panels, pr)
		}
		doc.Scenes = append(doc.Scenes, rec)
	}
	return doc
}
