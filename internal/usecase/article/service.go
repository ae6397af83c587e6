package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newsroom/internal/common/pagination"
	"newsroom/internal/domain/entity"
	"newsroom/internal/infra/assets"
	"newsroom/internal/observability/metrics"
	"newsroom/internal/observability/tracing"
	"newsroom/internal/repository"
)

// ImageUploader stores an attached image and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, up assets.Upload) (string, error)
}

// CreateInput represents the input parameters for creating a new article.
// A nil PublishedAt means "now"; a nil Image means no image.
type CreateInput struct {
	Title       string
	Description string
	Content     string
	PublishedAt *time.Time
	SourceName  string
	SourceURL   string
	Category    string
	Image       *assets.Upload
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated, and a nil Image keeps the
// current image.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Content     *string
	PublishedAt *time.Time
	SourceName  *string
	SourceURL   *string
	Category    *string
	Image       *assets.Upload
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo     repository.ArticleRepository
	Uploader ImageUploader
	// StrictCategories rejects categories outside entity.Categories.
	StrictCategories bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// observe wraps one operation with a span and the operation metrics.
func observe(ctx context.Context, op string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "article."+op, attrs...)
	err := fn(ctx)
	tracing.EndSpan(span, err)
	metrics.RecordArticleOperation(op, metrics.ResultOf(err), time.Since(start))
	return err
}

// List retrieves all articles, newest publishedAt first.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	var articles []*entity.Article
	err := observe(ctx, "list", func(ctx context.Context) error {
		var err error
		articles, err = s.Repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	return articles, err
}

// ListPaginated retrieves one page of articles together with the pagination metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	var result *PaginatedResult
	err := observe(ctx, "list_paginated", func(ctx context.Context) error {
		total, err := s.Repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count articles: %w", err)
		}
		articles, err := s.Repo.ListPaginated(ctx, params.Offset(), params.Limit)
		if err != nil {
			return fmt.Errorf("list articles paginated: %w", err)
		}
		result = &PaginatedResult{
			Data:       articles,
			Pagination: pagination.NewMetadata(params, total),
		}
		return nil
	}, attribute.Int("page", params.Page), attribute.Int("limit", params.Limit))
	return result, err
}

// Get retrieves a single article by its ID.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	var article *entity.Article
	err := observe(ctx, "get", func(ctx context.Context) error {
		var err error
		article, err = s.load(ctx, id)
		return err
	}, attribute.String("article.id", id))
	return article, err
}

func (s *Service) load(ctx context.Context, id string) (*entity.Article, error) {
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Create validates the input, uploads the attached image if any, and
// persists the new article. Nothing is stored when the upload fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	var created *entity.Article
	err := observe(ctx, "create", func(ctx context.Context) error {
		art := &entity.Article{
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			Content:     in.Content,
			Source: entity.Source{
				Name: strings.TrimSpace(in.SourceName),
				URL:  strings.TrimSpace(in.SourceURL),
			},
			Category: strings.TrimSpace(in.Category),
		}
		if in.PublishedAt != nil && !in.PublishedAt.IsZero() {
			art.PublishedAt = *in.PublishedAt
		} else {
			art.PublishedAt = s.now()
		}

		if err := s.validate(art); err != nil {
			return err
		}
		if in.Image != nil {
			url, err := s.upload(ctx, *in.Image)
			if err != nil {
				return err
			}
			art.Image = url
		}

		if err := s.Repo.Create(ctx, art); err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		created = art
		return nil
	})
	return created, err
}

// Update replaces the supplied fields of an existing article.
// Required fields cannot be cleared. The image changes only when a new one
// is attached, and it is uploaded after validation and before persisting.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Article, error) {
	var updated *entity.Article
	err := observe(ctx, "update", func(ctx context.Context) error {
		art, err := s.load(ctx, in.ID)
		if err != nil {
			return err
		}

		applyString(&art.Title, in.Title, true)
		applyString(&art.Description, in.Description, true)
		applyString(&art.Content, in.Content, false)
		applyString(&art.Source.Name, in.SourceName, true)
		applyString(&art.Source.URL, in.SourceURL, true)
		applyString(&art.Category, in.Category, true)
		if in.PublishedAt != nil && !in.PublishedAt.IsZero() {
			art.PublishedAt = *in.PublishedAt
		}

		if err := s.validate(art); err != nil {
			return err
		}
		if in.Image != nil {
			url, err := s.upload(ctx, *in.Image)
			if err != nil {
				return err
			}
			art.Image = url
		}

		if err := s.Repo.Update(ctx, art); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				// 読み込み後に削除された
				return ErrArticleNotFound
			}
			return fmt.Errorf("update article: %w", err)
		}
		updated = art
		return nil
	}, attribute.String("article.id", in.ID))
	return updated, err
}

// Delete removes an article by its ID.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	return observe(ctx, "delete", func(ctx context.Context) error {
		deleted, err := s.Repo.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		if !deleted {
			return ErrArticleNotFound
		}
		return nil
	}, attribute.String("article.id", id))
}

func (s *Service) validate(art *entity.Article) error {
	if err := art.Validate(); err != nil {
		return err
	}
	if s.StrictCategories && !entity.IsKnownCategory(art.Category) {
		return &entity.ValidationError{
			Field:   "category",
			Message: "must be one of " + strings.Join(entity.Categories, ", "),
		}
	}
	art.Category = entity.CanonicalCategory(art.Category)
	return nil
}

func (s *Service) upload(ctx context.Context, up assets.Upload) (string, error) {
	if s.Uploader == nil {
		return "", errors.New("upload image: no uploader configured")
	}
	sniffed, err := assets.SniffImage(up)
	if err != nil {
		return "", err
	}
	url, err := s.Uploader.Upload(ctx, sniffed)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// applyString copies *src into dst when src is set. Values are trimmed when trim is true.
func applyString(dst *string, src *string, trim bool) {
	if src == nil {
		return
	}
	v := *src
	if trim {
		v = strings.TrimSpace(v)
	}
	*dst = v
}
