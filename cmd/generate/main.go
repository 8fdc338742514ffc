package main

import (
	"log"
	"os"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/config"
	"github.com/dabch2020/oilnews/internal/pipeline"
	"github.com/dabch2020/oilnews/internal/processor"
	"github.com/dabch2020/oilnews/internal/render"
	"github.com/dabch2020/oilnews/internal/scheduler"
	"github.com/dabch2020/oilnews/internal/storage"
	"github.com/dabch2020/oilnews/internal/translate"
)

// 一次性生成入口：抓取 → 过滤 → 翻译 → 渲染 docs/index.html 后退出。
// 由外部调度（如每小时一次的 CI 任务）触发；仅最终渲染失败以非零码退出，
// 单个来源或单条翻译失败只记日志。
func main() {
	cfg := config.Load()

	sources := loadSources(cfg)
	keywords := loadKeywords(cfg)

	fetchers := make([]collector.Fetcher, 0, len(sources))
	for _, src := range sources {
		fetchers = append(fetchers, collector.NewFetcher(src, cfg.MaxPerSource, cfg.FetchTimeout))
	}

	var enricher *collector.Enricher
	if cfg.EnrichEnabled {
		enricher = &collector.Enricher{Timeout: cfg.FetchTimeout}
	}

	p := &pipeline.Pipeline{
		Fetchers:   fetchers,
		Processor:  processor.New(processor.NewKeywordFilter(keywords), cfg.MaxPerSource),
		Translator: translate.NewGoogleTranslator(),
		Enricher:   enricher,
	}

	r, err := render.New(cfg.OutputPath)
	if err != nil {
		log.Fatalf("init renderer failed: %v", err)
	}

	// 配置了 Postgres 时顺带入库，失败不影响页面发布
	var store *storage.Store
	if cfg.PostgresDSN != "" {
		store, err = storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
		if err != nil {
			log.Printf("warn: init store failed, skip persistence: %v", err)
			store = nil
		}
	}

	s, err := scheduler.New(cfg.CronSpec, p, r, sources, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}

	log.Printf("start fetching %d sources...", len(sources))
	if err := s.RunOnce(); err != nil {
		// 渲染/发布失败对整轮是致命的：上一次发布的页面保持不变，等下一次调度重试
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}

	if store != nil {
		if err := store.PurgeOlderThan(time.Now().Add(-processor.DefaultWindow)); err != nil {
			log.Printf("warn: purge old articles: %v", err)
		}
	}
}

func loadSources(cfg *config.Config) []collector.Source {
	if cfg.SourcesFile == "" {
		return collector.DefaultSources()
	}
	sources, err := collector.LoadSourcesFile(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources file failed: %v", err)
	}
	return sources
}

func loadKeywords(cfg *config.Config) []string {
	if cfg.KeywordsFile == "" {
		return nil
	}
	keywords, err := processor.LoadKeywordsFile(cfg.KeywordsFile)
	if err != nil {
		log.Fatalf("load keywords file failed: %v", err)
	}
	return keywords
}
