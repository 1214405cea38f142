// README: Image proxy with HTTPS-only source and domain allow-list.
package handlers

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// allowedImageDomains whitelists the CDNs our proposals reference.
// Suffix match, so subdomains are covered.
var allowedImageDomains = []string{
	"allegro.pl",
	"allegroimg.com",
	"ceneo.pl",
	"ceneostatic.pl",
	"unsplash.com",
	"via.placeholder.com",
}

const maxImageBytes = 5 << 20

type ImageHandler struct {
	client *http.Client
}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{client: &http.Client{Timeout: 10 * time.Second}}
}

// Proxy handles GET /api/images/proxy?url=. It shields the browser from
// CORS and keeps product-CDN URLs off the page source.
func (h *ImageHandler) Proxy(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		writeError(c, http.StatusBadRequest, "bad_request", "missing url parameter")
		return
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		writeError(c, http.StatusBadRequest, "bad_request", "only https sources are allowed")
		return
	}

	if !domainAllowed(u.Hostname()) {
		log.Printf("[images] blocked domain %s", u.Hostname())
		writeError(c, http.StatusForbidden, "forbidden", "domain is not on the allow-list")
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, raw, nil)
	if err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", "invalid url")
		return
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := h.client.Do(req)
	if err != nil {
		writeError(c, http.StatusBadGateway, "upstream", "image fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		writeError(c, resp.StatusCode, "upstream", "image fetch failed")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(c, http.StatusBadRequest, "bad_request", "url does not point at an image")
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		writeError(c, http.StatusBadGateway, "upstream", "image fetch failed")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, contentType, data)
}

func domainAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range allowedImageDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
