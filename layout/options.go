package layout

// Measurer 返回一行文字以像素计的渲染宽度。
// fonts.Face 实现了该接口；测试中可以用固定字宽的替身。
type Measurer interface {
	TextWidth(s string) float64
}

// Faces 配置布局阶段使用的测量字体。
type Faces struct {
	Dialogue  Measurer // 对白气泡
	Narration Measurer // 旁白框
}
