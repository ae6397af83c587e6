// Package article provides use cases for managing article entities.
// It implements the article store operations (create, list, get, update,
// delete) including validation and the image upload side effect.
package article

import "newsroom/internal/domain/entity"

// ErrArticleNotFound indicates that the requested article was not found.
// errors.Is also matches it against entity.ErrNotFound.
var ErrArticleNotFound error = articleNotFound{}

type articleNotFound struct{}

func (articleNotFound) Error() string { return "article not found" }

func (articleNotFound) Unwrap() error { return entity.ErrNotFound }
