// Package translate 把英文摘要翻译成简体中文。
// 翻译失败不是致命错误：调用方应回退为原文，保证新闻不因翻译丢失。
package translate

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

const maxResponseBytes = 256 * 1024

const (
	maxInputRunes = 500
	clientTimeout = 20 * time.Second
)

// Translator 翻译能力的抽象，便于测试时注入假实现
type Translator interface {
	Translate(text string) (string, error)
}

// GoogleTranslator 依次尝试 Google Translate 直接 API → MyMemory
type GoogleTranslator struct {
	Client *http.Client
}

func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{Client: &http.Client{Timeout: clientTimeout}}
}

// Translate 返回简体中文译文；空输入原样返回；两个后端都失败时返回错误
func (g *GoogleTranslator) Translate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if rs := []rune(text); len(rs) > maxInputRunes {
		text = string(rs[:maxInputRunes])
	}

	if out := g.viaGoogle(text); out != "" {
		return out, nil
	}
	if out := g.viaMyMemory(text); out != "" {
		return out, nil
	}
	return "", fmt.Errorf("translate: all backends failed")
}

// viaGoogle 使用 Google Translate 公开 API（client=gtx，无需密钥）
func (g *GoogleTranslator) viaGoogle(text string) string {
	apiURL := fmt.Sprintf(
		"https://translate.googleapis.com/translate_a/single?client=gtx&sl=auto&tl=zh-CN&dt=t&q=%s",
		url.QueryEscape(text),
	)
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.Client.Do(req)
	if err != nil {
		log.Printf("translate (google-gtx): %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("translate (google-gtx): status %d", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ""
	}
	out, err := parseGTXResponse(body)
	if err != nil {
		log.Printf("translate (google-gtx): %v", err)
		return ""
	}
	return out
}

// parseGTXResponse 解析 gtx 响应，格式: [[["翻译文本","原文",...],...],...]
func parseGTXResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty response")
	}
	outer, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected response shape")
	}
	var result strings.Builder
	for _, seg := range outer {
		pair, ok := seg.([]any)
		if !ok || len(pair) < 1 {
			continue
		}
		if s, ok := pair[0].(string); ok {
			result.WriteString(s)
		}
	}
	return strings.TrimSpace(result.String()), nil
}

func (g *GoogleTranslator) viaMyMemory(text string) string {
	apiURL := "https://api.mymemory.translated.net/get?langpair=" + sourceLangForMyMemory(text) + "|zh&q=" + url.QueryEscape(text)
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return ""
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		log.Printf("translate (mymemory): %v", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("translate (mymemory): status %d", resp.StatusCode)
		return ""
	}
	var out struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return ""
	}
	return strings.TrimSpace(out.ResponseData.TranslatedText)
}

func sourceLangForMyMemory(s string) string {
	for _, r := range s {
		if r >= 0x3040 && r <= 0x309f || r >= 0x30a0 && r <= 0x30ff {
			return "ja"
		}
	}
	return "en"
}

// IsMostlyChinese 粗略判断文本是否已经是中文，已是中文的摘要不需要再翻译
func IsMostlyChinese(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	var cjk, total int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isCJK(r) {
			cjk++
		}
	}
	if total == 0 {
		return true
	}
	return cjk >= 1 && (cjk*4 >= total || cjk >= 2)
}

func isCJK(r rune) bool {
	if r >= 0x4e00 && r <= 0x9fff {
		return true
	}
	if r >= 0x3400 && r <= 0x4dbf {
		return true
	}
	if r >= 0x3000 && r <= 0x303f {
		return true
	}
	return false
}
