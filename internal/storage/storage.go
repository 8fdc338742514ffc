package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/processor"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Article 持久化的单条新闻；每轮运行按链接幂等覆盖
type Article struct {
	ID       string `gorm:"primaryKey;size:40" json:"id"` // sha1(link)
	Title    string `gorm:"size:512" json:"title"`
	Link     string `gorm:"size:1024;uniqueIndex" json:"link"`
	Source   string `gorm:"size:64;index" json:"source"`
	Category string `gorm:"size:32" json:"category"`
	// 原文摘要与中文摘要分列保存，翻译失败时两列相同
	Summary     string    `gorm:"size:600" json:"summary"`
	SummaryZH   string    `gorm:"size:600" json:"summaryZh"`
	PublishedAt time.Time `gorm:"index" json:"publishedAt"`
	// Extra 保留上游原始字段（如未解析的时间串），便于排查时间解析问题
	Extra datatypes.JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Article) TableName() string { return "articles" }

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Article{}); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断，确保不超过数据库字段长度（如 varchar(600)）。
// 这是对上游清洗的双保险，防止外部服务返回异常长文本导致入库失败。
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveBatch 保存一轮聚合结果；以链接为幂等键，已存在时更新摘要与时间
func (s *Store) SaveBatch(items []collector.Article) error {
	for _, it := range items {
		if it.Link == "" {
			continue
		}
		title := truncateRunesDB(toValidUTF8(it.Title), 512)
		summary := truncateRunesDB(toValidUTF8(it.Summary), 600)
		summaryZH := truncateRunesDB(toValidUTF8(it.SummaryZH), 600)

		var extra datatypes.JSONMap
		if it.RawTime != "" {
			extra = datatypes.JSONMap{"raw_time": it.RawTime}
		}

		a := &Article{
			ID:          processor.HashLink(it.Link),
			Title:       title,
			Link:        it.Link,
			Source:      it.Source,
			Category:    it.Category,
			Summary:     summary,
			SummaryZH:   summaryZH,
			PublishedAt: it.PublishedAt,
			Extra:       extra,
		}

		if err := s.DB.Where("link = ?", it.Link).FirstOrCreate(a).Error; err != nil {
			return err
		}
		_ = s.DB.Model(a).Updates(map[string]any{
			"title":        title,
			"summary":      summary,
			"summary_zh":   summaryZH,
			"published_at": it.PublishedAt,
		}).Error
	}

	// 不做按 key 通配删除，依赖短 TTL 的列表缓存自然过期
	return nil
}

// ListArticles 按来源返回最近的新闻（时间降序），Redis 做 5 分钟读缓存
func (s *Store) ListArticles(source string, limit int) ([]Article, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("articles:list:%s:%d", source, limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Article
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []Article
	db := s.DB.Model(&Article{})
	if source != "" {
		db = db.Where("source = ?", source)
	}
	if err := db.Order("published_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 5 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}
	return list, nil
}

// PurgeOlderThan 清理时间窗以外的历史数据，保持表与页面口径一致
func (s *Store) PurgeOlderThan(cutoff time.Time) error {
	return s.DB.Where("published_at < ?", cutoff).Delete(&Article{}).Error
}
