// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article model persisted by the article store, the editorial
// category vocabulary, and the domain-specific errors.
package entity

import "time"

// Article represents an in-house news article.
// ID is assigned by the store on creation and never changes afterwards.
type Article struct {
	ID          string
	Title       string
	Description string
	Content     string
	// Image is empty or a URL returned by the asset host.
	Image       string
	PublishedAt time.Time
	Source      Source
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Source names the outlet an article is attributed to.
type Source struct {
	Name string
	URL  string
}

// Validate checks the fields every persisted article must carry.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if a.Description == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}
	if a.Source.Name == "" {
		return &ValidationError{Field: "sourceName", Message: "is required"}
	}
	if a.Source.URL != "" {
		if err := ValidateURL(a.Source.URL); err != nil {
			return err
		}
	}
	if a.Category == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	return nil
}
