// README: Filesystem-backed blog article store.
package blog

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Service reads articles from a directory of JSON files, one article per
// file. Articles are authored offline; the service is read-only.
type Service struct {
	dir string
}

func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// List returns all articles sorted by date, newest first. A missing or
// unreadable directory yields an empty list, not an error.
func (s *Service) List() []Article {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("[blog] cannot read %s: %v", s.dir, err)
		return nil
	}

	var articles []Article
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			log.Printf("[blog] skipping %s: %v", e.Name(), err)
			continue
		}
		var a Article
		if err := json.Unmarshal(data, &a); err != nil {
			log.Printf("[blog] skipping %s: %v", e.Name(), err)
			continue
		}
		articles = append(articles, a)
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
	return articles
}

// Get returns the article with the given slug.
func (s *Service) Get(slug string) (Article, error) {
	for _, a := range s.List() {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

// Related returns up to max articles most similar to the given one,
// scored by Jaccard similarity over keywords.
func (s *Service) Related(current Article, max int) []Article {
	type scored struct {
		article Article
		score   float64
	}
	var candidates []scored
	for _, a := range s.List() {
		if a.Slug == current.Slug {
			continue
		}
		if sc := keywordSimilarity(current.Keywords, a.Keywords); sc > 0 {
			candidates = append(candidates, scored{a, sc})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]Article, len(candidates))
	for i, c := range candidates {
		out[i] = c.article
	}
	return out
}

// keywordSimilarity is the Jaccard coefficient of the lowercased keyword sets.
func keywordSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, k := range a {
		setA[strings.ToLower(k)] = true
	}
	union := len(setA)
	common := 0
	seenB := make(map[string]bool, len(b))
	for _, k := range b {
		lk := strings.ToLower(k)
		if seenB[lk] {
			continue
		}
		seenB[lk] = true
		if setA[lk] {
			common++
		} else {
			union++
		}
	}
	return float64(common) / float64(union)
}
