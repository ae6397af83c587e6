package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

// ArticleRepository is the document-store contract for articles.
// Implementations order listings by published_at DESC, then by creation
// order, and treat malformed ids the same as absent ones.
type ArticleRepository interface {
	// Create assigns ID, CreatedAt and UpdatedAt on the given article.
	Create(ctx context.Context, article *entity.Article) error
	List(ctx context.Context) ([]*entity.Article, error)
	// ListPaginated retrieves one page of articles.
	// Parameters:
	//   - offset: Number of documents to skip (calculated from page number)
	//   - limit: Maximum number of documents to return
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error)
	// Count returns the total number of articles.
	// This is used for calculating pagination metadata (total pages, etc.).
	Count(ctx context.Context) (int64, error)
	// Get returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id string) (*entity.Article, error)
	// Update replaces every mutable field of the stored article and refreshes
	// UpdatedAt. It returns entity.ErrNotFound when the id does not exist.
	Update(ctx context.Context, article *entity.Article) error
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
