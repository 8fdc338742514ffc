package main

import (
	"log"
	"net/http"

	"github.com/dabch2020/oilnews/internal/api"
	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/config"
	"github.com/dabch2020/oilnews/internal/pipeline"
	"github.com/dabch2020/oilnews/internal/processor"
	"github.com/dabch2020/oilnews/internal/render"
	"github.com/dabch2020/oilnews/internal/scheduler"
	"github.com/dabch2020/oilnews/internal/storage"
	"github.com/dabch2020/oilnews/internal/translate"
	"github.com/gin-gonic/gin"
)

// 常驻服务入口：内置 cron 每小时重跑一轮聚合并重新发布页面，
// 同时通过 gin 提供静态页与 JSON 接口。
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

	var store *storage.Store
	if cfg.PostgresDSN != "" {
		store, err = storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("init store failed: %v", err)
		}
	}

	s, err := scheduler.New(cfg.CronSpec, p, r, sources, store)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	// API
	engine := gin.Default()
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		engine.Use(api.BasicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(store, sources)
	apiServer.RegisterRoutes(engine)

	// 发布的静态页直接挂在根路径
	engine.GET("/", func(c *gin.Context) {
		c.File(cfg.OutputPath)
	})
	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(cfg.OutputPath)
	})

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
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
