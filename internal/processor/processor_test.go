package processor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
)

func TestHashLinkDeterministicAndDistinct(t *testing.T) {
	link1 := "https://example.com/a"
	link2 := "https://example.com/b"

	h1a := HashLink(link1)
	h1b := HashLink(link1)
	h2 := HashLink(link2)

	if h1a != h1b {
		t.Fatalf("HashLink not deterministic: %q vs %q", h1a, h1b)
	}
	if h1a == h2 {
		t.Fatalf("HashLink should differ for different links: %q", h1a)
	}
}

func TestKeywordFilterBilingual(t *testing.T) {
	f := DefaultKeywordFilter()

	cases := []struct {
		title   string
		summary string
		want    bool
	}{
		{"Oil prices rise amid OPEC cuts", "", true},
		{"OPEC+ output decision expected", "", true},
		{"CRUDE futures slip", "", true}, // 大小写不敏感
		{"Stock market update", "tech shares rally", false},
		{"", "布伦特原油期货收涨", true},
		{"国家管网集团扩建天然气管道", "", true},
		{"Weather forecast", "sunny with clouds", false},
		{"", "", false}, // 标题摘要皆空不命中
	}
	for _, c := range cases {
		if got := f.Matches(c.title, c.summary); got != c.want {
			t.Fatalf("Matches(%q, %q) = %v, want %v", c.title, c.summary, got, c.want)
		}
	}
}

func TestKeywordFilterCustomList(t *testing.T) {
	f := NewKeywordFilter([]string{"hydrogen", "氢能"})
	if !f.Matches("Green hydrogen project", "") {
		t.Fatalf("custom keyword should match")
	}
	if f.Matches("Oil prices rise", "") {
		t.Fatalf("default keywords should not apply with custom list")
	}
}

func TestLoadKeywordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := "keywords:\n  - oil\n  - 原油\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write keywords file: %v", err)
	}

	kws, err := LoadKeywordsFile(path)
	if err != nil {
		t.Fatalf("LoadKeywordsFile error: %v", err)
	}
	if len(kws) != 2 || kws[0] != "oil" || kws[1] != "原油" {
		t.Fatalf("unexpected keywords: %v", kws)
	}

	if _, err := LoadKeywordsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestProcessDeduplicateByLinkFirstWins(t *testing.T) {
	p := New(DefaultKeywordFilter(), 0)
	now := time.Now().UTC()

	items := []collector.Article{
		{Title: "Oil story", Link: "https://example.com/1", Source: "A", PublishedAt: now.Add(-time.Hour)},
		{Title: "Oil story duplicated", Link: "https://example.com/1", Source: "B", PublishedAt: now.Add(-time.Hour)},
		{Title: "Gas story", Link: "https://example.com/2", Source: "B", PublishedAt: now.Add(-2 * time.Hour), Summary: "natural gas markets"},
	}

	out := p.Process(items, now)
	if len(out) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(out))
	}
	// 先到先得：保留来源 A 的那条
	if out[0].Source != "A" {
		t.Fatalf("first occurrence should win, got source %q", out[0].Source)
	}
}

func TestProcessTimeWindowAndOrdering(t *testing.T) {
	p := New(DefaultKeywordFilter(), 0)
	now := time.Now().UTC()

	items := []collector.Article{
		{Title: "Old oil news", Link: "https://example.com/old", PublishedAt: now.Add(-15 * 24 * time.Hour)},
		{Title: "Oil news 3d", Link: "https://example.com/3d", PublishedAt: now.Add(-3 * 24 * time.Hour)},
		{Title: "Oil news 1d", Link: "https://example.com/1d", PublishedAt: now.Add(-24 * time.Hour)},
		{Title: "Oil news no time", Link: "https://example.com/notime"},
	}

	out := p.Process(items, now)
	if len(out) != 2 {
		t.Fatalf("expected 2 items inside the 14-day window, got %d", len(out))
	}
	// 时间降序
	for i := 1; i < len(out); i++ {
		if out[i].PublishedAt.After(out[i-1].PublishedAt) {
			t.Fatalf("output not sorted descending at %d", i)
		}
	}
	if out[0].Link != "https://example.com/1d" {
		t.Fatalf("most recent item should come first, got %q", out[0].Link)
	}
	cutoff := now.Add(-14 * 24 * time.Hour)
	for _, it := range out {
		if it.PublishedAt.Before(cutoff) {
			t.Fatalf("item %q outside 14-day window", it.Link)
		}
	}
}

func TestProcessRawTimeFallback(t *testing.T) {
	p := New(DefaultKeywordFilter(), 0)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// PublishedAt 为零值时应回退解析 RawTime
	items := []collector.Article{
		{Title: "Oil news", Link: "https://example.com/raw", RawTime: "2026-08-27 09:30"},
	}
	out := p.Process(items, now)
	if len(out) != 1 {
		t.Fatalf("expected RawTime fallback to keep item, got %d items", len(out))
	}
	if out[0].PublishedAt.IsZero() {
		t.Fatalf("PublishedAt should be filled from RawTime")
	}
}

func TestProcessPerSourceCap(t *testing.T) {
	p := New(DefaultKeywordFilter(), 2)
	now := time.Now().UTC()

	var items []collector.Article
	for i := 0; i < 5; i++ {
		items = append(items, collector.Article{
			Title:       "Oil telegraph",
			Link:        "https://example.com/cls/" + string(rune('a'+i)),
			Source:      "财联社",
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	items = append(items, collector.Article{
		Title:       "Oil report",
		Link:        "https://example.com/other",
		Source:      "OGJ",
		PublishedAt: now.Add(-time.Hour),
	})

	out := p.Process(items, now)
	perSource := map[string]int{}
	for _, it := range out {
		perSource[it.Source]++
	}
	if perSource["财联社"] != 2 {
		t.Fatalf("per-source cap not applied: %v", perSource)
	}
	if perSource["OGJ"] != 1 {
		t.Fatalf("other source should be untouched: %v", perSource)
	}
}

func TestProcessStableTieBreak(t *testing.T) {
	p := New(DefaultKeywordFilter(), 0)
	now := time.Now().UTC()
	ts := now.Add(-time.Hour)

	// 相同时间戳时保持输入（来源）顺序
	items := []collector.Article{
		{Title: "Oil first", Link: "https://example.com/f", Source: "A", PublishedAt: ts},
		{Title: "Oil second", Link: "https://example.com/s", Source: "B", PublishedAt: ts},
	}
	out := p.Process(items, now)
	if len(out) != 2 || out[0].Source != "A" || out[1].Source != "B" {
		t.Fatalf("tie break should keep input order: %+v", out)
	}
}
