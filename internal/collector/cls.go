package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CLSFetcher 通过财联社 nodeapi 获取电报流新闻。
// 电报流本身不分主题，数量不在此处限制：全局关键字过滤筛选后再按来源截取。
type CLSFetcher struct {
	Source  Source
	Timeout time.Duration
}

func (f *CLSFetcher) Name() string {
	return f.Source.Name
}

type clsTelegraph struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// depth_extends 关联的深度文章，标题优先级最高
	DepthExtends struct {
		Title string `json:"title"`
	} `json:"depth_extends"`
	ShareURL string `json:"shareurl"`
	CTime    int64  `json:"ctime"`
}

type clsResponse struct {
	Data struct {
		RollData []clsTelegraph `json:"roll_data"`
	} `json:"data"`
}

func (f *CLSFetcher) Fetch() ([]Article, error) {
	req, err := newRequest(http.MethodGet, f.Source.URL)
	if err != nil {
		return nil, err
	}
	client := newHTTPClient(f.Timeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cls: fetch telegraph list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cls: unexpected status %d", resp.StatusCode)
	}

	var out clsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("cls: decode telegraph list: %w", err)
	}

	results := make([]Article, 0, len(out.Data.RollData))
	for _, item := range out.Data.RollData {
		content := cleanText(item.Content)
		title := cleanText(item.Title)
		depthTitle := cleanText(item.DepthExtends.Title)

		// 标题优先用深度文章标题，其次电报标题，最后取正文前 60 字
		displayTitle := depthTitle
		if displayTitle == "" {
			displayTitle = title
		}
		if displayTitle == "" {
			displayTitle = truncateRunes(content, 60)
		}
		if displayTitle == "" {
			continue
		}

		summary := ""
		if content != displayTitle {
			summary = truncateRunes(content, summaryMaxRunes)
		}

		var pub time.Time
		rawTime := ""
		if item.CTime > 0 {
			pub = time.Unix(item.CTime, 0)
			rawTime = pub.Format("2006-01-02 15:04")
		}

		results = append(results, Article{
			Source:      f.Source.Name,
			Category:    f.Source.Category,
			Title:       truncateRunes(displayTitle, titleMaxRunes),
			Summary:     summary,
			Link:        item.ShareURL,
			PublishedAt: pub,
			RawTime:     rawTime,
		})
	}
	return results, nil
}
