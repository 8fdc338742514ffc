package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
)

// 默认只保留最近两周的新闻
const DefaultWindow = 14 * 24 * time.Hour

// Processor 对采集结果做关键字过滤、去重、来源限流、时间窗过滤与排序
type Processor struct {
	Keywords     *KeywordFilter
	MaxPerSource int           // 每个来源最多保留几条；<=0 不限
	Window       time.Duration // 发布时间距今的最大间隔
}

func New(keywords *KeywordFilter, maxPerSource int) *Processor {
	return &Processor{
		Keywords:     keywords,
		MaxPerSource: maxPerSource,
		Window:       DefaultWindow,
	}
}

// Process 返回最终可发布的新闻列表：
// 关键字过滤 → 按链接去重（先到先得） → 来源限流 → 时间窗过滤 → 按时间降序稳定排序。
// 输入顺序即各来源的抓取顺序，排序相同时间时保持原序。
func (p *Processor) Process(items []collector.Article, now time.Time) []collector.Article {
	matched := make([]collector.Article, 0, len(items))
	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		if !p.Keywords.Matches(it.Title, it.Summary) {
			continue
		}
		matched = append(matched, it)
	}
	if len(matched) < len(items) {
		log.Printf("keyword filter: %d / %d items matched", len(matched), len(items))
	}

	// 以链接为幂等键去重，跨来源转载只保留第一条；没有链接的条目不参与去重
	seen := make(map[string]struct{}, len(matched))
	deduped := matched[:0]
	for _, it := range matched {
		if it.Link != "" {
			key := HashLink(it.Link)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		deduped = append(deduped, it)
	}

	// 来源限流：防止电报流等 API 来源占比过大
	if p.MaxPerSource > 0 {
		perSource := make(map[string]int)
		limited := deduped[:0]
		for _, it := range deduped {
			perSource[it.Source]++
			if perSource[it.Source] <= p.MaxPerSource {
				limited = append(limited, it)
			}
		}
		if len(limited) < len(deduped) {
			log.Printf("per-source cap: %d -> %d items", len(deduped), len(limited))
		}
		deduped = limited
	}

	// 时间窗过滤：RSS 没给出解析好的时间时，先尝试原始时间字符串
	cutoff := now.Add(-p.Window)
	kept := deduped[:0]
	for _, it := range deduped {
		if it.PublishedAt.IsZero() {
			it.PublishedAt = ParseTime(it.RawTime)
		}
		if it.PublishedAt.IsZero() || it.PublishedAt.Before(cutoff) || it.PublishedAt.After(now.Add(time.Hour)) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) < len(deduped) {
		log.Printf("time window: %d -> %d items (last %s)", len(deduped), len(kept), p.Window)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].PublishedAt.After(kept[j].PublishedAt)
	})
	return kept
}

// HashLink 链接的 sha1，作为去重键与存储主键
func HashLink(link string) string {
	h := sha1.New()
	h.Write([]byte(link))
	return hex.EncodeToString(h.Sum(nil))
}
