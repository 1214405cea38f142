// README: Blog endpoint tests with a temp article directory.
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"giftgenie/internal/http/handlers"
	"giftgenie/internal/modules/blog"
)

func buildBlogRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	h := handlers.NewBlogHandler(blog.NewService(dir))
	r := gin.New()
	r.GET("/api/blog", h.List)
	r.GET("/api/blog/:slug", h.Get)
	return r, dir
}

func writeBlogArticle(t *testing.T, dir string, a blog.Article) {
	t.Helper()
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, a.Slug+".json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBlogList(t *testing.T) {
	r, dir := buildBlogRouter(t)
	writeBlogArticle(t, dir, blog.Article{Slug: "pierwszy", Title: "Pierwszy", Date: "2025-01-01"})
	writeBlogArticle(t, dir, blog.Article{Slug: "drugi", Title: "Drugi", Date: "2025-02-01"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Count    int `json:"count"`
		Articles []struct {
			Slug string `json:"slug"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 || len(resp.Articles) != 2 {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}
	if resp.Articles[0].Slug != "drugi" {
		t.Errorf("expected newest first, got %q", resp.Articles[0].Slug)
	}
}

func TestBlogGetWithRelated(t *testing.T) {
	r, dir := buildBlogRouter(t)
	writeBlogArticle(t, dir, blog.Article{Slug: "glowny", Keywords: []string{"prezent", "urodziny"}})
	writeBlogArticle(t, dir, blog.Article{Slug: "podobny", Keywords: []string{"prezent", "urodziny", "pomysły"}})
	writeBlogArticle(t, dir, blog.Article{Slug: "inny", Keywords: []string{"ogród"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/glowny", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Article struct {
			Slug string `json:"slug"`
		} `json:"article"`
		Related []struct {
			Slug string `json:"slug"`
		} `json:"related"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Article.Slug != "glowny" {
		t.Errorf("unexpected article: %s", w.Body.String())
	}
	if len(resp.Related) != 1 || resp.Related[0].Slug != "podobny" {
		t.Errorf("unexpected related set: %s", w.Body.String())
	}
}

func TestBlogGetNotFound(t *testing.T) {
	r, _ := buildBlogRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/nie-ma", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
