// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"giftgenie/internal/http/handlers"
	"giftgenie/internal/http/middleware"
	"giftgenie/internal/modules/blog"
	"giftgenie/internal/modules/gifts"
	"giftgenie/internal/modules/usage"
)

type RouterDeps struct {
	Gifts     *gifts.Service
	Usage     *usage.Service
	Blog      *blog.Service
	Redis     *redis.Client
	Model     string
	PerMinute int
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	giftHandler := handlers.NewGiftHandler(deps.Gifts, deps.Usage, deps.Model)
	r.POST("/api/gifts/generate",
		middleware.RateLimit(deps.Redis, deps.PerMinute),
		giftHandler.Generate)
	r.GET("/api/products/lookup", giftHandler.Lookup)

	imageHandler := handlers.NewImageHandler()
	r.GET("/api/images/proxy", imageHandler.Proxy)

	blogHandler := handlers.NewBlogHandler(deps.Blog)
	r.GET("/api/blog", blogHandler.List)
	r.GET("/api/blog/:slug", blogHandler.Get)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
