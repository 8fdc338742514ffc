package collector

import (
	"net/http"
	"strings"
	"time"
)

// IsGoogleNewsURL 判断链接是否为 Google News 中转链接
func IsGoogleNewsURL(link string) bool {
	return strings.Contains(link, "news.google.com")
}

// ResolveGoogleNewsURL 跟随重定向解出 Google News 中转链接背后的真实文章 URL。
// 解析失败时原样返回，调用方不需要区分这两种情况。
func ResolveGoogleNewsURL(link string, timeout time.Duration) string {
	if !IsGoogleNewsURL(link) {
		return link
	}

	client := newHTTPClient(timeout)
	req, err := newRequest(http.MethodGet, link)
	if err != nil {
		return link
	}
	resp, err := client.Do(req)
	if err != nil {
		return link
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	// 仍停留在 Google 域名说明是 JS 跳转页，没解出真实地址
	if IsGoogleNewsURL(final) || strings.Contains(final, "consent.google.com") {
		return link
	}
	return final
}
