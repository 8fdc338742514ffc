package collector

import (
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// 统一的请求配置：各站点对默认 Go UA 常返回 403，伪装成桌面浏览器
const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7"

	maxResponseBytes = 2 << 20 // 2MB，防止超大响应拖垮内存

	summaryMaxRunes = 500
	titleMaxRunes   = 80
)

// Article 各来源采集到的单条新闻，后续阶段就地补充翻译字段
type Article struct {
	Source      string    // 来源显示名
	Category    string    // 分类标签（国际/财经/行业…）
	Title       string    // 标题（已清洗）
	Summary     string    // 原文摘要
	SummaryZH   string    // 简体中文摘要；翻译失败时回退为原文
	Link        string    // 文章链接
	PublishedAt time.Time // 发布时间；解析失败时为零值
	RawTime     string    // 来源给出的原始时间字符串，便于排查
}

// Fetcher 抽象每一个数据源
type Fetcher interface {
	Name() string
	Fetch() ([]Article, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func newRequest(method, url string) (*http.Request, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	return req, nil
}

var (
	reTag        = regexp.MustCompile(`<[^>]+>`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// cleanText 去掉 HTML 标签并压缩空白
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = reTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// truncateRunes 按 rune 截断，避免中文被截成半个字符
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
