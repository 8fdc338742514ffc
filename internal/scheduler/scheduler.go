package scheduler

import (
	"log"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/pipeline"
	"github.com/dabch2020/oilnews/internal/render"
	"github.com/dabch2020/oilnews/internal/storage"
	"github.com/robfig/cron/v3"
)

// Scheduler 按 cron 周期执行一轮完整的聚合：采集 → 渲染 → 入库。
// 外部调度器不加锁防重入，重叠运行时后写者覆盖输出（每轮幂等，可接受）。
type Scheduler struct {
	cron     *cron.Cron
	pipeline *pipeline.Pipeline
	renderer *render.Renderer
	sources  []collector.Source
	store    *storage.Store // 可为 nil：只渲染不入库
}

func New(spec string, p *pipeline.Pipeline, r *render.Renderer, sources []collector.Source, store *storage.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:     c,
		pipeline: p,
		renderer: r,
		sources:  sources,
		store:    store,
	}

	if _, err := c.AddFunc(spec, func() { _ = s.runOnce() }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮采集，避免与启动期的首个页面请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go func() { _ = s.runOnce() }()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，渲染/发布失败时返回错误
func (s *Scheduler) RunOnce() error {
	return s.runOnce()
}

func (s *Scheduler) runOnce() error {
	log.Println("start aggregation run...")
	start := time.Now()

	items := s.pipeline.Run(start)
	log.Printf("aggregated %d items (%.1fs)", len(items), time.Since(start).Seconds())

	if s.store != nil {
		if err := s.store.SaveBatch(items); err != nil {
			// 入库失败不影响页面发布，下轮重试
			log.Printf("save batch error: %v", err)
		}
	}

	if err := s.renderer.Render(items, s.sources, start); err != nil {
		log.Printf("render error: %v", err)
		return err
	}
	log.Printf("published %s (%d items)", s.renderer.OutputPath, len(items))
	return nil
}
