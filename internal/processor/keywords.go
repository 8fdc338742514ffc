package processor

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// 默认的油气关键字表（中英双语），仅保留标题或摘要命中其一的新闻
var defaultKeywords = []string{
	"oil", "oil price", "petrol", "petrol price",
	"crude", "brent", "wti", "opec",
	"lng", "lpg", "shale",
	"石油", "石油产量", "石油价格",
	"天然气", "natural gas",
	"页岩油", "shale oil",
	"原油", "油价", "燃气", "成品油",
	"炼油", "汽油", "柴油", "液化气",
	"油田", "油气", "石油管道", "天然气管道",
}

// KeywordFilter 双语关键字过滤器，不区分大小写的子串匹配
type KeywordFilter struct {
	keywords []string
	pattern  *regexp.Regexp
}

// NewKeywordFilter 编译关键字表；空表退回默认表
func NewKeywordFilter(keywords []string) *KeywordFilter {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	escaped := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(k))
	}
	pattern := regexp.MustCompile("(?i)" + strings.Join(escaped, "|"))
	return &KeywordFilter{keywords: keywords, pattern: pattern}
}

func DefaultKeywordFilter() *KeywordFilter {
	return NewKeywordFilter(nil)
}

// Matches 标题或摘要中是否包含至少一个关键字；两者皆空时不命中
func (f *KeywordFilter) Matches(title, summary string) bool {
	text := strings.TrimSpace(title + " " + summary)
	if text == "" {
		return false
	}
	return f.pattern.MatchString(text)
}

// LoadKeywordsFile 从 YAML 文件读取关键字表，用于替换内置表
func LoadKeywordsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Keywords []string `yaml:"keywords"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse keywords file: %w", err)
	}
	if len(doc.Keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s: no keywords defined", path)
	}
	return doc.Keywords, nil
}
