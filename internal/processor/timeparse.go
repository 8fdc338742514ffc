package processor

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RSS 标准格式优先（RFC 1123/822），再尝试各站点常见的写法
var timeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/01/02 15:04",
}

var (
	reDate  = regexp.MustCompile(`(\d{4})[年\-/](\d{1,2})[月\-/](\d{1,2})`)
	reClock = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ParseTime 尽力把各种时间字符串解析为 UTC 时间；解析失败返回零值
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range timeLayouts {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt.UTC()
		}
	}

	// 兜底：从字符串中提取 YYYY-MM-DD / YYYY年MM月DD日，再拼可能的时分
	m := reDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	dt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if hm := reClock.FindStringSubmatch(s); hm != nil {
		hour, _ := strconv.Atoi(hm[1])
		min, _ := strconv.Atoi(hm[2])
		if hour < 24 && min < 60 {
			dt = dt.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
		}
	}
	return dt
}
