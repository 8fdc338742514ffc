package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/dabch2020/oilnews/internal/collector"
	"github.com/dabch2020/oilnews/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	store   *storage.Store // 可为 nil：未配置存储时 articles 接口返回 503
	sources []collector.Source
}

func NewServer(store *storage.Store, sources []collector.Source) *Server {
	return &Server{store: store, sources: sources}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.GET("/sources", s.listSources)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listArticles(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "storage_disabled",
			"message": "article storage is not configured",
		})
		return
	}

	source := c.Query("source")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	items, err := s.store.ListArticles(source, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func (s *Server) listSources(c *gin.Context) {
	type sourceInfo struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		SiteURL  string `json:"siteUrl"`
	}
	out := make([]sourceInfo, 0, len(s.sources))
	for _, src := range s.sources {
		site := src.SiteURL
		if site == "" {
			site = src.URL
		}
		out = append(out, sourceInfo{Name: src.Name, Category: src.Category, SiteURL: site})
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    out,
	})
}

// BasicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// /health 不做认证，便于健康检查。
func BasicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
