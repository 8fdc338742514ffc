package collector

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 采集方式
const (
	MethodRSS    = "rss"     // RSS/Atom 订阅
	MethodScrape = "scrape"  // HTML 页面按选择器抓取
	MethodCLSAPI = "cls_api" // 财联社 nodeapi 电报流
)

// Selectors scrape 方式的 CSS 选择器配置
type Selectors struct {
	Article string `yaml:"article"` // 单条新闻的容器
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Time    string `yaml:"time"`
}

// Source 一个固定的数据来源；配置期定义，单次运行内不可变
type Source struct {
	Name      string    `yaml:"name"`
	Category  string    `yaml:"category"`
	Method    string    `yaml:"method"`
	URL       string    `yaml:"url"`
	AltURLs   []string  `yaml:"alt_urls,omitempty"`  // 备用 URL（通常是 Google News RSS）
	Selectors Selectors `yaml:"selectors,omitempty"` // scrape 专用
	SiteURL   string    `yaml:"site_url,omitempty"`  // 页面底部来源栏展示用
}

// DefaultSources 返回固定的 10 个油气行业来源，顺序即展示顺序
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "CNBC",
			Category: "国际",
			Method:   MethodRSS,
			URL:      "https://www.cnbc.com/id/19836768/device/rss/rss.html",
			SiteURL:  "https://cnbc.com/energy",
		},
		{
			Name:     "Bloomberg",
			Category: "财经",
			Method:   MethodRSS,
			URL:      "https://news.google.com/rss/search?q=site:bloomberg.com+energy+oil+gas&hl=en&gl=US&ceid=US:en",
			SiteURL:  "https://bloomberg.com/energy",
		},
		{
			Name:     "S&P Platts",
			Category: "市场",
			Method:   MethodRSS,
			URL:      "https://news.google.com/rss/search?q=site:spglobal.com+platts+oil+gas+energy&hl=en&gl=US&ceid=US:en",
			SiteURL:  "https://spglobal.com/platts",
		},
		{
			Name:     "OGJ",
			Category: "行业",
			Method:   MethodRSS,
			URL:      "https://www.ogj.com/rss",
			AltURLs: []string{
				"https://news.google.com/rss/search?q=site:ogj.com+oil+gas&hl=en&gl=US&ceid=US:en",
			},
			SiteURL: "https://ogj.com",
		},
		{
			Name:     "Rigzone",
			Category: "行业",
			Method:   MethodRSS,
			URL:      "https://www.rigzone.com/news/rss/rigzone_latest.aspx",
			AltURLs: []string{
				"https://news.google.com/rss/search?q=site:rigzone.com&hl=en&gl=US&ceid=US:en",
			},
			SiteURL: "https://rigzone.com",
		},
		{
			Name:     "Oilprice",
			Category: "油价",
			Method:   MethodRSS,
			URL:      "https://oilprice.com/rss/main",
			AltURLs: []string{
				"https://news.google.com/rss/search?q=site:oilprice.com&hl=en&gl=US&ceid=US:en",
			},
			SiteURL: "https://oilprice.com",
		},
		{
			Name:     "NGI",
			Category: "天然气",
			Method:   MethodRSS,
			URL:      "https://www.naturalgasintel.com/feed/",
			AltURLs: []string{
				"https://news.google.com/rss/search?q=site:naturalgasintel.com&hl=en&gl=US&ceid=US:en",
			},
			SiteURL: "https://naturalgasintel.com",
		},
		{
			Name:     "World Oil",
			Category: "行业",
			Method:   MethodRSS,
			URL:      "https://www.worldoil.com/rss",
			AltURLs: []string{
				"https://news.google.com/rss/search?q=site:worldoil.com+oil+gas&hl=en&gl=US&ceid=US:en",
			},
			SiteURL: "https://worldoil.com",
		},
		{
			Name:     "OilGasPress",
			Category: "综合",
			Method:   MethodScrape,
			URL:      "https://oilandgaspress.com/news-analysis/",
			Selectors: Selectors{
				Article: ".qode-news-item",
				Title:   "h4.entry-title a, p.entry-title a, .qode-post-title a",
				Summary: ".qode-post-excerpt-holder",
				Time:    ".qode-post-info-date",
			},
			SiteURL: "https://oilandgaspress.com/news-analysis/",
		},
		{
			Name:     "财联社",
			Category: "财经",
			Method:   MethodCLSAPI,
			URL:      "https://www.cls.cn/nodeapi/telegraphList?app=CailianpressWeb&os=web&sv=8.4.6&rn=200",
			SiteURL:  "https://www.cls.cn",
		},
	}
}

// LoadSourcesFile 从 YAML 文件读取来源列表，用于测试或运维替换内置表
func LoadSourcesFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(doc.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s: no sources defined", path)
	}
	for i, s := range doc.Sources {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("sources file %s: source #%d missing name or url", path, i+1)
		}
	}
	return doc.Sources, nil
}

// NewFetcher 根据来源配置构造对应的采集器
func NewFetcher(src Source, maxItems int, timeout time.Duration) Fetcher {
	switch src.Method {
	case MethodScrape:
		return &ScrapeFetcher{Source: src, MaxItems: maxItems, Timeout: timeout}
	case MethodCLSAPI:
		return &CLSFetcher{Source: src, Timeout: timeout}
	default:
		return &RSSFetcher{Source: src, MaxItems: maxItems, Timeout: timeout}
	}
}
