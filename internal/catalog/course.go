// Package catalog provides the course catalog backed by a MongoDB
// collection. Reads are fail-soft: a broken store degrades to an empty
// catalog instead of an error reaching the user.
package catalog

import "strings"

// Course is a single course offering as presented to users.
// String fields are never "missing" at this layer; absent document
// fields decode to the empty string.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image"`
	Link        string `json:"link"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Keyword     string `json:"keyword"` // comma-separated search keywords
}

// Keywords splits the comma-separated keyword field. Entries are not
// trimmed or filtered; an empty keyword field yields a single empty
// entry, which fuzzy matching treats as matching any query.
func (c Course) Keywords() []string {
	return strings.Split(c.Keyword, ",")
}

// HasImage reports whether the course carries its own hero image.
func (c Course) HasImage() bool {
	return c.ImageURL != ""
}

// HasLink reports whether the course carries its own enrollment link.
func (c Course) HasLink() bool {
	return c.Link != ""
}
