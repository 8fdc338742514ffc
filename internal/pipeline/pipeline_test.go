package pipeline

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/processor"
)

// fakeFetcher 返回固定条目或固定错误，验证隔离性
type fakeFetcher struct {
	name  string
	items []collector.Article
	err   error
}

func (f *fakeFetcher) Name() string                       { return f.name }
func (f *fakeFetcher) Fetch() ([]collector.Article, error) { return f.items, f.err }

// fakeTranslator 原文加前缀，便于断言走过了翻译
type fakeTranslator struct{ fail bool }

func (t *fakeTranslator) Translate(text string) (string, error) {
	if t.fail {
		return "", fmt.Errorf("translator down")
	}
	return "译文：" + text, nil
}

func newPipeline(fetchers []collector.Fetcher, translator *fakeTranslator) *Pipeline {
	return &Pipeline{
		Fetchers:   fetchers,
		Processor:  processor.New(processor.DefaultKeywordFilter(), 5),
		Translator: translator,
	}
}

func TestRunKeywordScenario(t *testing.T) {
	now := time.Now().UTC()
	// 来源 A 一条油气新闻，来源 B 一条不相关新闻
	fetchers := []collector.Fetcher{
		&fakeFetcher{name: "A", items: []collector.Article{{
			Source: "A", Title: "Oil prices rise amid OPEC cuts",
			Summary: "Crude futures climbed.", Link: "https://a.example.com/1",
			PublishedAt: now.Add(-3 * 24 * time.Hour),
		}}},
		&fakeFetcher{name: "B", items: []collector.Article{{
			Source: "B", Title: "Stock market update",
			Summary: "Tech shares rally.", Link: "https://b.example.com/1",
			PublishedAt: now.Add(-24 * time.Hour),
		}}},
	}

	out := newPipeline(fetchers, &fakeTranslator{}).Run(now)
	if len(out) != 1 {
		t.Fatalf("expected only the keyword-matching article, got %d items", len(out))
	}
	if out[0].Source != "A" {
		t.Fatalf("wrong article survived the filter: %+v", out[0])
	}
	if !strings.HasPrefix(out[0].SummaryZH, "译文：") {
		t.Fatalf("translated summary missing: %q", out[0].SummaryZH)
	}
}

func TestRunSourceFailureIsolation(t *testing.T) {
	now := time.Now().UTC()
	fetchers := []collector.Fetcher{
		&fakeFetcher{name: "broken", err: fmt.Errorf("connection refused")},
		&fakeFetcher{name: "ok", items: []collector.Article{{
			Source: "ok", Title: "Natural gas demand surges",
			Link: "https://ok.example.com/1", PublishedAt: now.Add(-time.Hour),
		}}},
	}

	out := newPipeline(fetchers, &fakeTranslator{}).Run(now)
	if len(out) != 1 || out[0].Source != "ok" {
		t.Fatalf("one broken source must not drop the others, got %+v", out)
	}
}

func TestRunTranslationFailureFallsBackToOriginal(t *testing.T) {
	now := time.Now().UTC()
	original := "Crude futures climbed after the group extended cuts."
	fetchers := []collector.Fetcher{
		&fakeFetcher{name: "A", items: []collector.Article{{
			Source: "A", Title: "Oil prices rise",
			Summary: original, Link: "https://a.example.com/1",
			PublishedAt: now.Add(-time.Hour),
		}}},
	}

	out := newPipeline(fetchers, &fakeTranslator{fail: true}).Run(now)
	if len(out) != 1 {
		t.Fatalf("translation failure must not drop the article, got %d items", len(out))
	}
	if out[0].SummaryZH != original {
		t.Fatalf("failed translation should fall back to original text: %q", out[0].SummaryZH)
	}
}

func TestRunSkipsAlreadyChineseSummaries(t *testing.T) {
	now := time.Now().UTC()
	zh := "布伦特原油期货收涨，市场关注欧佩克减产。"
	fetchers := []collector.Fetcher{
		&fakeFetcher{name: "cls", items: []collector.Article{{
			Source: "财联社", Title: "油价快讯",
			Summary: zh, Link: "https://cls.example.com/1",
			PublishedAt: now.Add(-time.Hour),
		}}},
	}

	out := newPipeline(fetchers, &fakeTranslator{}).Run(now)
	if len(out) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out))
	}
	// 已是中文，不应再过翻译器
	if out[0].SummaryZH != zh {
		t.Fatalf("chinese summary should pass through unchanged: %q", out[0].SummaryZH)
	}
}

func TestRunNilTranslatorCopiesSummary(t *testing.T) {
	now := time.Now().UTC()
	p := &Pipeline{
		Fetchers: []collector.Fetcher{&fakeFetcher{name: "A", items: []collector.Article{{
			Source: "A", Title: "Oil news", Summary: "plain summary",
			Link: "https://a.example.com/1", PublishedAt: now.Add(-time.Hour),
		}}}},
		Processor: processor.New(processor.DefaultKeywordFilter(), 5),
	}
	out := p.Run(now)
	if len(out) != 1 || out[0].SummaryZH != "plain summary" {
		t.Fatalf("nil translator should copy original summary: %+v", out)
	}
}
