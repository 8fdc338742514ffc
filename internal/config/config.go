package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// 静态页面输出位置；GitHub Pages 从 docs/ 目录提供静态文件
	OutputPath string

	// 采集配置
	FetchTimeout  time.Duration
	MaxPerSource  int
	SourcesFile   string // 可选：YAML 来源表，替换内置 10 个来源
	KeywordsFile  string // 可选：YAML 关键字表，替换内置双语关键字
	EnrichEnabled bool   // 是否从原文页面补充短摘要

	// 存储（可选）：两者都配置时 cmd/api 才会持久化
	PostgresDSN string
	RedisAddr   string

	// 全站访问密码（可选）
	BasicAuthUser string
	BasicAuthPass string

	CronSpec string
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		OutputPath:    getEnv("OUTPUT_PATH", "docs/index.html"),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		MaxPerSource:  getEnvInt("MAX_PER_SOURCE", 5),
		SourcesFile:   getEnv("SOURCES_FILE", ""),
		KeywordsFile:  getEnv("KEYWORDS_FILE", ""),
		EnrichEnabled: getEnvBool("ENRICH_SUMMARIES", true),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
		CronSpec:      getEnv("CRON_SPEC", "0 * * * *"),
	}

	log.Printf("config loaded: port=%s cron=%s out=%s", cfg.AppPort, cfg.CronSpec, cfg.OutputPath)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}
