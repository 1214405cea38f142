package blog

import "errors"

// ErrNotFound is returned when no article carries the requested slug.
var ErrNotFound = errors.New("article not found")

// Article is one pre-written blog post, stored as a JSON file in the
// articles directory.
type Article struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Keywords        []string `json:"keywords"`
	Thumbnail       string   `json:"thumbnail"`
	ContentMarkdown string   `json:"contentMarkdown"`
	Date            string   `json:"date"`
	Author          string   `json:"author,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
}
