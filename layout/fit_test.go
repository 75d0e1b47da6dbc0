package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/koma/fonts"
)

// fixed 是每个字符固定宽度的测量替身。
type fixed float64

func (f fixed) TextWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) * float64(f) }

// wide 让指定字符格外宽，其余字符宽 1。
type wide map[rune]float64

func (w wide) TextWidth(s string) float64 {
	total := 0.0
	for _, r := range s {
		if v, ok := w[r]; ok {
			total += v
			continue
		}
		total++
	}
	return total
}

func TestFitTruncatesToPrefix(t *testing.T) {
	m := fixed(10)
	got := Fit("Hello World", m, 50)
	if got != "Hello" {
		t.Fatalf("期望 Hello，得到 %q", got)
	}
	if !Truncated("Hello World", got) {
		t.Fatalf("应标记为截断")
	}
	if again := Fit(got, m, 50); again != got {
		t.Fatalf("Fit 应幂等: %q -> %q", got, again)
	}
}

func TestFitKeepsShortText(t *testing.T) {
	m := fixed(10)
	if got := Fit("Hi", m, 50); got != "Hi" {
		t.Fatalf("短文本不应改变: %q", got)
	}
	if Truncated("Hi", "Hi") {
		t.Fatalf("未截断不应报告截断")
	}
	if got := Fit("", m, 0); got != "" {
		t.Fatalf("空串应返回空串: %q", got)
	}
	if got := Fit("abc", nil, 0); got != "abc" {
		t.Fatalf("无测量器时应原样返回: %q", got)
	}
}

func TestFitRuneBoundaries(t *testing.T) {
	m := fixed(20)
	got := Fit("こんにちは世界", m, 70)
	if got != "こんに" {
		t.Fatalf("按字符截断失败: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("截断结果不是合法 UTF-8")
	}
}

func TestFitSingleWideGlyph(t *testing.T) {
	m := wide{'W': 500}
	got := Fit("Wabc", m, 10)
	if got != "W" {
		t.Fatalf("至少保留一个字符: %q", got)
	}
	if Fit(got, m, 10) != got {
		t.Fatalf("单字符结果应幂等")
	}
}

func TestFitResultWithinWidth(t *testing.T) {
	m := fixed(7)
	for _, limit := range []float64{0, 7, 13, 50, 200} {
		text := strings.Repeat("x", 40)
		got := Fit(text, m, limit)
		if !strings.HasPrefix(text, got) {
			t.Fatalf("结果应为前缀: %q", got)
		}
		if utf8.RuneCountInString(got) > 1 && m.TextWidth(got) > limit {
			t.Fatalf("limit=%v: 宽度 %v 超出", limit, m.TextWidth(got))
		}
	}
}

func TestFitProportionalFace(t *testing.T) {
	face := fonts.NewResolver(fonts.Config{Override: "embed:go-regular", Candidates: []string{}}).Resolve(20)
	if !face.Drawable() {
		t.Fatalf("内置字体应可绘制")
	}
	limit := face.TextWidth("MMMMM")

	wideText := Fit(strings.Repeat("M", 30), face, limit)
	if wideText != "MMMMM" {
		t.Fatalf("期望 5 个 M，得到 %q", wideText)
	}
	narrow := Fit(strings.Repeat("i", 30), face, limit)
	n := utf8.RuneCountInString(narrow)
	if n <= 5 {
		t.Fatalf("i 比 M 窄，应放下更多字符，得到 %d", n)
	}
	if w := face.TextWidth(narrow); w > limit {
		t.Fatalf("结果宽度 %.2f 超过上限 %.2f", w, limit)
	}
	if n < 30 && face.TextWidth(strings.Repeat("i", n+1)) <= limit {
		t.Fatalf("应保留能放下的最长前缀，得到 %d 个字符", n)
	}
}
