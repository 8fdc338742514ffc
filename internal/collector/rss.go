package collector

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSFetcher 通过 RSS/Atom 订阅抓取新闻条目。
// 主 URL 失败或返回空时依次尝试备用 URL（通常是 Google News 站内搜索 RSS）。
type RSSFetcher struct {
	Source   Source
	MaxItems int
	Timeout  time.Duration
}

func (f *RSSFetcher) Name() string {
	return f.Source.Name
}

func (f *RSSFetcher) Fetch() ([]Article, error) {
	urls := append([]string{f.Source.URL}, f.Source.AltURLs...)

	var items []*gofeed.Item
	var lastErr error
	for _, u := range urls {
		entries, err := f.fetchFeed(u)
		if err != nil {
			log.Printf("rss %s: %s failed: %v", f.Source.Name, u, err)
			lastErr = err
			continue
		}
		if len(entries) > 0 {
			items = entries
			break
		}
	}
	if len(items) == 0 && lastErr != nil {
		return nil, fmt.Errorf("rss %s: all feeds failed: %w", f.Source.Name, lastErr)
	}

	if f.MaxItems > 0 && len(items) > f.MaxItems {
		items = items[:f.MaxItems]
	}

	results := make([]Article, 0, len(items))
	for _, it := range items {
		title := cleanText(it.Title)
		if title == "" {
			continue
		}

		summary := it.Description
		if summary == "" {
			summary = it.Content
		}

		rawTime := it.Published
		if rawTime == "" {
			rawTime = it.Updated
		}
		var pub time.Time
		if it.PublishedParsed != nil {
			pub = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pub = *it.UpdatedParsed
		}

		results = append(results, Article{
			Source:      f.Source.Name,
			Category:    f.Source.Category,
			Title:       title,
			Summary:     truncateRunes(cleanText(summary), summaryMaxRunes),
			Link:        it.Link,
			PublishedAt: pub,
			RawTime:     rawTime,
		})
	}
	return results, nil
}

func (f *RSSFetcher) fetchFeed(url string) ([]*gofeed.Item, error) {
	req, err := newRequest(http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	client := newHTTPClient(f.Timeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	fp := gofeed.NewParser()
	feed, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}
