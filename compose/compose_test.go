package compose

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/koma/fonts"
	"github.com/ByLCY/koma/layout"
	canvasrenderer "github.com/ByLCY/koma/renderer/canvas"
	"github.com/ByLCY/koma/scene"
)

func newTestCompositor() *Compositor {
	return New(Options{Fonts: fonts.Config{Candidates: []string{}}})
}

func TestComposeEmptyScene(t *testing.T) {
	page := newTestCompositor().Compose(scene.Scene{Index: 1}, nil)
	require.NotNil(t, page)
	assert.Equal(t, image.Rect(0, 0, 1080, 1528), page.Bounds())
	assert.Equal(t, color.GrayModel, page.ColorModel())
	for _, v := range page.Gray().Pix {
		if v != 255 {
			t.Fatalf("empty page must be white, found %d", v)
		}
	}
}

func TestComposeToleratesMissingImages(t *testing.T) {
	c := newTestCompositor()
	sc := scene.Scene{Index: 3, Panels: []scene.Panel{{Index: 1}, {Index: 2}, {Index: 3}}}

	assert.NotPanics(t, func() { c.Compose(sc, nil) })
	assert.NotPanics(t, func() { c.Compose(sc, []image.Image{nil}) })
	assert.NotPanics(t, func() {
		c.Compose(sc, []image.Image{image.NewGray(image.Rect(0, 0, 0, 0)), nil, nil, nil, nil})
	})

	page := c.Compose(sc, []image.Image{nil})
	assert.Equal(t, 3, page.Scene())
	assert.Len(t, page.Plan().Panels, 3)
}

func TestComposeDialogueBubbles(t *testing.T) {
	c := newTestCompositor()
	sc := scene.Scene{Panels: []scene.Panel{{Index: 1, Dialogue: []string{"Hello", "World", "Extra", "Dropped"}}}}
	plan := c.Plan(sc)
	require.Len(t, plan.Panels, 1)

	bubbles := plan.Panels[0].Bubbles
	require.Len(t, bubbles, 3)
	assert.Equal(t, []int{3}, plan.Panels[0].Dropped)
	for i := 1; i < len(bubbles); i++ {
		assert.Less(t, bubbles[i].Rect.Y1, bubbles[i-1].Rect.Y1, "bubbles stack upward")
		assert.Equal(t, bubbles[0].Rect.X1, bubbles[i].Rect.X1)
	}
	assert.Equal(t, "Hello", bubbles[0].Text)
}

func TestComposeSixPanelGrid(t *testing.T) {
	panels := make([]scene.Panel, 6)
	for i := range panels {
		panels[i] = scene.Panel{Index: i + 1}
	}
	plan := newTestCompositor().Plan(scene.Scene{Panels: panels})
	require.Len(t, plan.Panels, 6)
	assert.Equal(t, layout.Rect{X1: 12, Y1: 12, X2: 528, Y2: 497}, plan.Panels[0].Rect)
	assert.Equal(t, layout.Rect{X1: 552, Y1: 12, X2: 1068, Y2: 497}, plan.Panels[1].Rect)
}

func TestComposeFontSource(t *testing.T) {
	assert.Equal(t, fonts.BuiltinSource, newTestCompositor().FontSource())
}

func TestPageGrayIsCopy(t *testing.T) {
	page := newTestCompositor().Compose(scene.Scene{}, nil)
	g := page.Gray()
	g.Pix[0] = 0
	assert.Equal(t, uint8(255), page.GrayAt(0, 0).Y)
}

func TestPagePlanIsCopy(t *testing.T) {
	sc := scene.Scene{Index: 4, Panels: []scene.Panel{{Index: 1, Narration: "Dusk.", Dialogue: []string{"Hi"}}}}
	page := newTestCompositor().Compose(sc, nil)

	plan := page.Plan()
	plan.Panels[0].Caption.Text = "changed"
	plan.Panels[0].Bubbles[0].Text = "changed"
	plan.Panels = nil

	again := page.Plan()
	require.Len(t, again.Panels, 1)
	assert.Equal(t, "Dusk.", again.Panels[0].Caption.Text)
	assert.Equal(t, "Hi", again.Panels[0].Bubbles[0].Text)
	assert.Equal(t, 4, page.Scene())
	assert.Empty(t, page.Path())
}

func TestSaveRoundTrip(t *testing.T) {
	page := newTestCompositor().Compose(scene.Scene{Panels: []scene.Panel{{Index: 1, Narration: "Rain."}}}, nil)
	path := filepath.Join(t.TempDir(), "nested", "out", "page_001.png")

	require.NoError(t, Save(page, path))
	assert.Equal(t, path, page.Path())

	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1528, img.Bounds().Dy())

	// 覆盖写
	blank := newTestCompositor().Compose(scene.Scene{}, nil)
	require.NoError(t, Save(blank, path))
	img, err = imaging.Open(path)
	require.NoError(t, err)
	y := color.GrayModel.Convert(img.At(540, 700)).(color.Gray).Y
	assert.Equal(t, uint8(255), y)
}

func TestSaveErrors(t *testing.T) {
	assert.Error(t, Save(nil, filepath.Join(t.TempDir(), "x.png")))

	// 父路径是普通文件时无法创建目录
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	page := newTestCompositor().Compose(scene.Scene{}, nil)
	err := Save(page, filepath.Join(file, "page.png"))
	assert.Error(t, err)
	assert.Empty(t, page.Path())
}

type stubArt map[int][]image.Image

func (s stubArt) Load(sc scene.Scene) []image.Image { return s[sc.Index] }

func TestBatchRun(t *testing.T) {
	out := t.TempDir()
	art := image.NewGray(image.Rect(0, 0, 10, 10))
	scenes := []scene.Scene{
		{Index: 1, Panels: []scene.Panel{{Index: 1, Dialogue: []string{"Hi"}}}},
		{Index: 2},
		{Index: 5, Panels: []scene.Panel{{Index: 1}, {Index: 2}}},
	}
	b := Batch{
		Options: Options{Fonts: fonts.Config{Candidates: []string{}}},
		Output:  out,
		Workers: 2,
		Art:     stubArt{5: {art}},
		Formats: []Format{{Ext: "pdf", Renderer: canvasrenderer.PDF{}}},
	}
	pages, err := b.Run(context.Background(), scenes)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, p := range pages {
		require.NotNil(t, p)
		assert.Equal(t, scenes[i].Index, p.Scene())
		assert.Equal(t, filepath.Join(out, PageName(i+1, "png")), p.Path())
		assert.FileExists(t, p.Path())
		assert.FileExists(t, filepath.Join(out, PageName(i+1, "pdf")))
	}
	assert.Equal(t, uint8(0), pages[2].GrayAt(540, 400).Y)
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Batch{Options: Options{Fonts: fonts.Config{Candidates: []string{}}}, Output: t.TempDir(), Workers: 1}
	_, err := b.Run(ctx, []scene.Scene{{Index: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageName(t *testing.T) {
	assert.Equal(t, "page_001.png", PageName(1, "png"))
	assert.Equal(t, "page_120.pdf", PageName(120, "pdf"))
}
