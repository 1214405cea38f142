// README: Blog listing and article handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftgenie/internal/modules/blog"
)

const relatedArticleCount = 3

type BlogHandler struct {
	blog *blog.Service
}

func NewBlogHandler(svc *blog.Service) *BlogHandler {
	return &BlogHandler{blog: svc}
}

// List handles GET /api/blog.
func (h *BlogHandler) List(c *gin.Context) {
	articles := h.blog.List()
	writeJSON(c, http.StatusOK, gin.H{
		"count":    len(articles),
		"articles": articles,
	})
}

// Get handles GET /api/blog/:slug.
func (h *BlogHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	article, err := h.blog.Get(slug)
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "not_found", "Artykuł nie istnieje.")
			return
		}
		writeError(c, http.StatusInternalServerError, "internal", "Błąd wczytywania artykułu.")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"article": article,
		"related": h.blog.Related(article, relatedArticleCount),
	})
}
