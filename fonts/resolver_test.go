package fonts

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missing(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(dir, n))
	}
	return out
}

func TestConfigPathsPrependsOverride(t *testing.T) {
	cfg := Config{Override: "/opt/fonts/custom.ttf", Candidates: []string{"/a.ttf", "/b.ttf"}}
	assert.Equal(t, []string{"/opt/fonts/custom.ttf", "/a.ttf", "/b.ttf"}, cfg.Paths())

	r := NewResolver(cfg)
	assert.Equal(t, cfg.Paths(), r.Candidates())

	// 每次调用都看到同样的顺序
	assert.Equal(t, "/opt/fonts/custom.ttf", r.Candidates()[0])
}

func TestConfigPathsUsesPlatformDefaults(t *testing.T) {
	cfg := Config{}
	assert.NotEmpty(t, cfg.Paths())

	empty := Config{Candidates: []string{}}
	assert.Empty(t, empty.Paths())
}

func TestDefaultCandidatesUnknownPlatform(t *testing.T) {
	assert.Equal(t, DefaultCandidates("linux"), DefaultCandidates("plan9"))
	assert.Len(t, DefaultCandidates("windows"), 3)

	list := DefaultCandidates("darwin")
	list[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultCandidates("darwin")[0])
}

func TestResolveFallsBackToBuiltin(t *testing.T) {
	r := NewResolver(Config{Candidates: missing(t, "none.ttf", "also-none.otf")})
	face := r.Resolve(20)
	require.NotNil(t, face)
	assert.True(t, face.Builtin())
	assert.True(t, face.Drawable())
	assert.Equal(t, BuiltinSource, face.Source())
	assert.Greater(t, face.TextWidth("Hello"), 0.0)
	assert.Greater(t, face.TextWidth("Hello, World"), face.TextWidth("Hello"))
	assert.Zero(t, face.TextWidth(""))
}

func TestResolveSkipsCorruptCandidate(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o644))

	r := NewResolver(Config{Override: bad, Candidates: []string{"embed:go-mono"}})
	face := r.Resolve(17)
	assert.Equal(t, "embed:go-mono", face.Source())
	assert.False(t, face.Builtin())
}

func TestResolveOverrideWins(t *testing.T) {
	r := NewResolver(Config{Override: "embed:go-mono", Candidates: []string{"embed:go-regular"}})
	assert.Equal(t, "embed:go-mono", r.Source())

	// 等宽字体：相同字符数宽度一致
	face := r.Resolve(20)
	assert.InDelta(t, face.TextWidth("iiii"), face.TextWidth("MMMM"), 1e-6)
}

func TestResolveCachesPerSize(t *testing.T) {
	r := NewResolver(Config{Candidates: []string{}})
	a := r.Resolve(20)
	b := r.Resolve(20)
	c := r.Resolve(17)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 17.0, c.Size())
}

func TestResolveClampsSize(t *testing.T) {
	r := NewResolver(Config{Candidates: []string{}})
	assert.Equal(t, minPixelSize, r.Resolve(0).Size())
	assert.Equal(t, minPixelSize, r.Resolve(-5).Size())
}

func TestResolveConcurrent(t *testing.T) {
	r := NewResolver(Config{Candidates: missing(t, "x.ttf")})
	var wg sync.WaitGroup
	faces := make([]*Face, 16)
	for i := range faces {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			faces[i] = r.Resolve(20)
		}(i)
	}
	wg.Wait()
	for _, f := range faces {
		require.NotNil(t, f)
		assert.True(t, f.Builtin())
	}
}

func TestDegenerateFaceEstimatesWidth(t *testing.T) {
	f := &Face{size: 10}
	assert.False(t, f.Drawable())
	assert.InDelta(t, 3*10*degenerateAdvance, f.TextWidth("日本語"), 1e-9)
	m := f.Metrics()
	assert.Greater(t, m.Ascent, 0.0)
}

func TestLoadEmbedded(t *testing.T) {
	data, err := Load("embed:go-regular")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = Load("embed:Inter-Regular.ttf")
	assert.Error(t, err)
	assert.Equal(t, []string{"go-mono", "go-regular"}, Embedded())
}
