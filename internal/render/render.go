// Package render 把聚合结果渲染成静态 HTML 页面。
// 写入采用临时文件 + rename：渲染中途失败不会破坏上一次发布的页面。
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
)

// 分类标签的配色（背景色 / 前景色）
var categoryColors = map[string][2]string{
	"国际":  {"#fce4ec", "#c62828"},
	"财经":  {"#fff3e0", "#e65100"},
	"市场":  {"#e8eaf6", "#283593"},
	"行业":  {"#e8f5e9", "#2e7d32"},
	"油价":  {"#fff8e1", "#f57f17"},
	"天然气": {"#e0f7fa", "#00695c"},
	"综合":  {"#f3e5f5", "#6a1b9a"},
}

type Renderer struct {
	OutputPath string
	Title      string
	tmpl       *template.Template
}

type pageData struct {
	Title     string
	UpdatedAt string
	Year      int
	Total     int
	Sources   []sourceTag
	Cards     []card
}

type sourceTag struct {
	Name string
	URL  string
}

type card struct {
	BadgeBG  string
	BadgeFG  string
	Category string
	Meta     string
	Title    string
	Link     string
	Summary  string
}

func New(outputPath string) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{
		OutputPath: outputPath,
		Title:      "全球实时油气新闻聚合",
		tmpl:       tmpl,
	}, nil
}

// Render 渲染并原子写入页面；任何失败对本轮运行都是致命的
func (r *Renderer) Render(items []collector.Article, sources []collector.Source, now time.Time) error {
	html, err := r.HTML(items, sources, now)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.OutputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".index-*.html")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.OutputPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish page: %w", err)
	}
	return nil
}

// HTML 只渲染不落盘，测试与 API 预览共用
func (r *Renderer) HTML(items []collector.Article, sources []collector.Source, now time.Time) (string, error) {
	data := pageData{
		Title:     r.Title,
		UpdatedAt: now.Format("2006-01-02 15:04"),
		Year:      now.Year(),
		Total:     len(items),
	}
	for _, s := range sources {
		site := s.SiteURL
		if site == "" {
			site = s.URL
		}
		data.Sources = append(data.Sources, sourceTag{Name: s.Name, URL: site})
	}
	for _, it := range items {
		bg, fg := "#eeeeee", "#333333"
		if c, ok := categoryColors[it.Category]; ok {
			bg, fg = c[0], c[1]
		}
		meta := it.Source
		if !it.PublishedAt.IsZero() {
			meta += " · " + it.PublishedAt.Format("2006-01-02 15:04")
		}
		summary := it.SummaryZH
		if summary == "" {
			summary = it.Summary
		}
		data.Cards = append(data.Cards, card{
			BadgeBG:  bg,
			BadgeFG:  fg,
			Category: it.Category,
			Meta:     meta,
			Title:    it.Title,
			Link:     it.Link,
			Summary:  summary,
		})
	}

	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
