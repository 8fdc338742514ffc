// Package pipeline 串起一次完整的聚合流程：
// 并发抓取 10 个来源 → 关键字过滤/去重/限量/时间窗与排序 → 补充摘要 → 翻译。
// 单个来源或单条翻译的失败只影响自身，绝不中断整轮运行。
package pipeline

import (
	"log"
	"sync"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/processor"
	"github.com/dabch2020/oilnews/internal/translate"
)

const translateConcurrency = 3

type Pipeline struct {
	Fetchers   []collector.Fetcher
	Processor  *processor.Processor
	Translator translate.Translator
	Enricher   *collector.Enricher // 可为 nil，跳过摘要补充
}

// Run 执行一轮采集，返回按时间降序的最终新闻列表。
// 永远返回能拿到的部分结果；来源全挂时返回空列表而非错误。
func (p *Pipeline) Run(now time.Time) []collector.Article {
	all := p.fetchAll()

	items := p.Processor.Process(all, now)

	if p.Enricher != nil {
		p.Enricher.EnrichSummaries(items)
	}
	p.translateSummaries(items)

	return items
}

// fetchAll 并发抓取所有来源；每个来源写自己的结果槽位，抓完后按来源顺序合并
func (p *Pipeline) fetchAll() []collector.Article {
	results := make([][]collector.Article, len(p.Fetchers))

	var wg sync.WaitGroup
	for i, f := range p.Fetchers {
		wg.Add(1)
		go func(idx int, fetcher collector.Fetcher) {
			defer wg.Done()
			name := fetcher.Name()
			items, err := fetcher.Fetch()
			if err != nil {
				log.Printf("fetch %s error: %v", name, err)
				return
			}
			log.Printf("fetch %s done, %d items", name, len(items))
			results[idx] = items
		}(i, f)
	}
	wg.Wait()

	var all []collector.Article
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

// translateSummaries 并发把非中文摘要翻译为简体中文。
// 失败时回退为原文，新闻照常发布；已是中文的摘要跳过。
func (p *Pipeline) translateSummaries(items []collector.Article) {
	if p.Translator == nil {
		for i := range items {
			items[i].SummaryZH = items[i].Summary
		}
		return
	}

	var need []int
	for i := range items {
		if items[i].Summary != "" && !translate.IsMostlyChinese(items[i].Summary) {
			need = append(need, i)
			continue
		}
		items[i].SummaryZH = items[i].Summary
	}
	if len(need) == 0 {
		return
	}
	log.Printf("translate: %d summaries to translate...", len(need))

	var (
		wg   sync.WaitGroup
		sem  = make(chan struct{}, translateConcurrency)
		mu   sync.Mutex
		done int
	)
	for _, idx := range need {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out, err := p.Translator.Translate(items[i].Summary)
			if err != nil || out == "" {
				if err != nil {
					log.Printf("translate %s item failed, keep original: %v", items[i].Source, err)
				}
				items[i].SummaryZH = items[i].Summary
				return
			}
			items[i].SummaryZH = out
			mu.Lock()
			done++
			mu.Unlock()
		}(idx)
	}
	wg.Wait()
	log.Printf("translate: %d / %d summaries translated", done, len(need))
}
