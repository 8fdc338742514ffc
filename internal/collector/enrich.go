package collector

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	enrichConcurrency = 6
	enrichMinLen      = 150 // 低于此长度的摘要视为需要补充
	enrichParaMinLen  = 40  // 正文段落的最小长度
	enrichParaBudget  = 400 // 拼接段落的目标总长度
)

// Google News RSS 的 summary 常是通用描述或标题重复，这类文本直接丢弃
var uselessMarkers = []string{
	"comprehensive up-to-date news coverage",
	"please enable js",
}

// SummaryUseless 判断摘要是否无用：为空、太短、或只是标题的重复
func SummaryUseless(title, summary string) bool {
	if summary == "" || len(summary) < enrichMinLen {
		return true
	}
	s := strings.ToLower(strings.TrimSpace(summary))
	t := strings.ToLower(strings.TrimSpace(title))
	if len(t) > 30 {
		t = t[:30]
	}
	return t != "" && strings.HasPrefix(s, t)
}

// Enricher 从原文页面补充短/空摘要
type Enricher struct {
	Timeout time.Duration
}

// EnrichSummaries 并发为摘要无用且有链接的条目补充 og:description / 正文段落。
// 就地修改，只在取到更长文本时覆盖。
func (en *Enricher) EnrichSummaries(items []Article) {
	var need []int
	for i := range items {
		if items[i].Link != "" && SummaryUseless(items[i].Title, items[i].Summary) {
			need = append(need, i)
		}
	}
	if len(need) == 0 {
		return
	}
	log.Printf("enrich: %d items need summary from article page...", len(need))

	var wg sync.WaitGroup
	sem := make(chan struct{}, enrichConcurrency)
	for _, idx := range need {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			desc := en.fetchDescription(items[i].Link)
			if desc != "" && len(desc) > len(items[i].Summary) {
				items[i].Summary = truncateRunes(desc, summaryMaxRunes)
			}
		}(idx)
	}
	wg.Wait()
}

// fetchDescription 抓取文章页面的 og:description 或正文段落作为摘要
func (en *Enricher) fetchDescription(link string) string {
	realURL := ResolveGoogleNewsURL(link, en.Timeout)

	doc, err := en.fetchDoc(realURL)
	if err != nil {
		// JS 渲染页面（如 Reuters）抓不到正文，退而求 DuckDuckGo 搜索摘要
		return en.fetchDDGSnippet(realURL)
	}

	var bestMeta string
	// 优先 og:description，其次 meta description
	for _, q := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		content, _ := doc.Find(q).First().Attr("content")
		desc := cleanText(content)
		if len(desc) <= 30 || descUseless(desc) {
			continue
		}
		if len(desc) >= enrichMinLen {
			return desc
		}
		if bestMeta == "" {
			bestMeta = desc
		}
	}

	// 拼接多个 <p> 段落以获得更丰富的摘要
	var paras []string
	total := 0
	doc.Find("article p, .content p, .entry-content p, main p, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if len(text) > enrichParaMinLen && !descUseless(text) {
			paras = append(paras, text)
			total += len(text)
		}
		return total < enrichParaBudget
	})
	if combined := strings.Join(paras, " "); len(combined) > len(bestMeta) {
		return combined
	}
	if bestMeta != "" {
		return bestMeta
	}
	return en.fetchDDGSnippet(realURL)
}

// fetchDDGSnippet 通过 DuckDuckGo HTML 搜索获取文章摘要片段
func (en *Enricher) fetchDDGSnippet(link string) string {
	// 用去掉查询参数的文章 URL 作为搜索词
	query := link
	if idx := strings.Index(query, "?"); idx > 0 {
		query = query[:idx]
	}
	ddgURL := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)

	doc, err := en.fetchDoc(ddgURL)
	if err != nil {
		return ""
	}
	var snippets []string
	total := 0
	doc.Find(".result__snippet").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if len(text) > enrichParaMinLen {
			snippets = append(snippets, text)
			total += len(text)
		}
		return total < enrichParaBudget
	})
	return strings.Join(snippets, " ")
}

func (en *Enricher) fetchDoc(link string) (*goquery.Document, error) {
	req, err := newRequest(http.MethodGet, link)
	if err != nil {
		return nil, err
	}
	client := newHTTPClient(en.Timeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxResponseBytes))
}

func descUseless(s string) bool {
	low := strings.ToLower(s)
	for _, m := range uselessMarkers {
		if strings.Contains(low, m) {
			return true
		}
	}
	return false
}
