package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*3600))
}

func TestPagesSortedByNumber(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page_10.png", "page_002.png", "page_1.png", "cover.png", "page_x.png", "page_003.jpg")
	pages, err := Pages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"page_1.png", "page_002.png", "page_10.png"}, pages)
}

func TestBuildCopiesIntoNovelDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page_001.png", "page_002.png", "page_003.png")

	opts := DefaultOptions()
	opts.Now = fixedNow
	m, err := Build(dir, opts)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, opts.NovelID, "page_002.png"))
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "2026-03-01T00:30:00Z", m.GeneratedAt)
	require.Len(t, m.Novels, 1)

	novel := m.Novels[0]
	assert.Equal(t, "人間失格", novel.Title)
	assert.Equal(t, "ningen_shikkaku/page_001.png", novel.CoverImage)
	require.Len(t, novel.Chapters, 1)
	assert.Equal(t, Chapter{
		ID:    "chapter_01",
		Title: "全編",
		Pages: []string{"ningen_shikkaku/page_001.png", "ningen_shikkaku/page_002.png", "ningen_shikkaku/page_003.png"},
	}, novel.Chapters[0])
	assert.Equal(t, 3, m.PageCount())
}

func TestBuildSplitsChapters(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page_001.png", "page_002.png", "page_003.png", "page_004.png", "page_005.png")

	m, err := Build(dir, Options{NovelID: "n", PagesPerChapter: 2})
	require.NoError(t, err)
	chapters := m.Novels[0].Chapters
	require.Len(t, chapters, 3)
	assert.Equal(t, "第1章", chapters[0].Title)
	assert.Equal(t, "chapter_03", chapters[2].ID)
	assert.Equal(t, []string{"n/page_005.png"}, chapters[2].Pages)

	// 只有一章时仍叫“全編”
	m, err = Build(dir, Options{NovelID: "n", PagesPerChapter: 10})
	require.NoError(t, err)
	assert.Equal(t, "全編", m.Novels[0].Chapters[0].Title)
}

func TestBuildPrefersExistingNovelDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page_001.png", "page_002.png")
	touch(t, filepath.Join(dir, "n"), "page_007.png")

	m, err := Build(dir, Options{NovelID: "n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"n/page_007.png"}, m.Novels[0].Chapters[0].Pages)
	assert.NoFileExists(t, filepath.Join(dir, "n", "page_001.png"))
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(t.TempDir(), Options{NovelID: "n"})
	assert.Error(t, err)

	_, err = Build(filepath.Join(t.TempDir(), "missing"), Options{NovelID: "n"})
	assert.Error(t, err)

	_, err = Build(t.TempDir(), Options{})
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "page_001.png")
	m, err := Build(dir, Options{NovelID: "n", Title: "A & B <1>", Author: "太宰治", Now: fixedNow})
	require.NoError(t, err)

	path := filepath.Join(dir, FileName)
	require.NoError(t, Write(m, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title": "A & B <1>"`)
	assert.Contains(t, string(raw), "太宰治")
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"version\": 1"))

	var back Manifest
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, *m, back)

	assert.Error(t, Write(nil, path))
}
