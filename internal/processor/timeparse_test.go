package processor

import (
	"testing"
	"time"
)

func TestParseTimeFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		// RSS 标准 RFC 1123
		{"Sat, 21 Feb 2026 12:00:00 GMT", time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)},
		{"Sat, 21 Feb 2026 12:00:00 +0800", time.Date(2026, 2, 21, 4, 0, 0, 0, time.UTC)},
		{"2026-02-21 08:30", time.Date(2026, 2, 21, 8, 30, 0, 0, time.UTC)},
		{"2026-02-21T08:30:00Z", time.Date(2026, 2, 21, 8, 30, 0, 0, time.UTC)},
		{"Feb 21, 2026", time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)},
		{"21 February 2026", time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)},
		{"2026/02/21 08:30", time.Date(2026, 2, 21, 8, 30, 0, 0, time.UTC)},
		// 中文日期兜底
		{"2026年2月21日 08:30", time.Date(2026, 2, 21, 8, 30, 0, 0, time.UTC)},
		{"发布于 2026-2-21", time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := ParseTime(c.in)
		if !got.Equal(c.want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "13月40日"} {
		if got := ParseTime(in); !got.IsZero() {
			t.Fatalf("ParseTime(%q) = %v, want zero", in, got)
		}
	}
}
