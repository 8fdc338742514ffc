package collector

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// ScrapeFetcher 按 CSS 选择器从 HTML 页面抓取新闻条目。
// 页面结构可能调整，此处基于配置的选择器做“尽力而为”的解析。
type ScrapeFetcher struct {
	Source   Source
	MaxItems int
	Timeout  time.Duration
}

func (f *ScrapeFetcher) Name() string {
	return f.Source.Name
}

func (f *ScrapeFetcher) Fetch() ([]Article, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(f.Timeout)

	sel := f.Source.Selectors
	results := make([]Article, 0, f.MaxItems)

	if sel.Article != "" {
		c.OnHTML(sel.Article, func(e *colly.HTMLElement) {
			if f.MaxItems > 0 && len(results) >= f.MaxItems {
				return
			}

			titleSel := e.DOM.Find(sel.Title).First()
			title := cleanText(titleSel.Text())
			if title == "" {
				return
			}

			link := extractLink(titleSel)
			link = f.absoluteURL(link)

			summary := ""
			if sel.Summary != "" {
				summary = cleanText(e.DOM.Find(sel.Summary).First().Text())
			}
			rawTime := ""
			if sel.Time != "" {
				rawTime = cleanText(e.DOM.Find(sel.Time).First().Text())
			}

			results = append(results, Article{
				Source:   f.Source.Name,
				Category: f.Source.Category,
				Title:    truncateRunes(title, titleMaxRunes),
				Summary:  truncateRunes(summary, summaryMaxRunes),
				Link:     link,
				RawTime:  rawTime,
			})
		})
	}

	// 兜底：条目选择器一无所获时，从全页带文本的链接里捞
	c.OnScraped(func(r *colly.Response) {
		if len(results) > 0 {
			return
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(r.Body)))
		if err != nil {
			return
		}
		doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			title := cleanText(s.Text())
			if title == "" {
				return true
			}
			href, _ := s.Attr("href")
			results = append(results, Article{
				Source:   f.Source.Name,
				Category: f.Source.Category,
				Title:    truncateRunes(title, titleMaxRunes),
				Link:     f.absoluteURL(href),
			})
			return f.MaxItems <= 0 || len(results) < f.MaxItems
		})
	})

	if err := c.Visit(f.Source.URL); err != nil {
		log.Printf("scrape %s failed: %v", f.Source.Name, err)
		return nil, err
	}
	if len(results) == 0 {
		log.Printf("scrape %s got 0 items", f.Source.Name)
	}
	return results, nil
}

// extractLink 取标题元素本身或其内部第一个 <a> 的 href
func extractLink(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if goquery.NodeName(s) == "a" {
		href, _ := s.Attr("href")
		return href
	}
	href, _ := s.Find("a").First().Attr("href")
	return href
}

// absoluteURL 把相对链接补全为基于来源页面的绝对链接
func (f *ScrapeFetcher) absoluteURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	base, err := url.Parse(f.Source.URL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
