package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

const articleColumns = `id, title, description, content, image, published_at,
       source_name, source_url, category, created_at, updated_at`

type ArticleRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// NewArticleRepoWithClock is NewArticleRepo with a fixed time source for the write timestamps.
func NewArticleRepoWithClock(db *sql.DB, now func() time.Time) repository.ArticleRepository {
	return &ArticleRepo{db: db, now: now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Content, &a.Image,
		&a.PublishedAt, &a.Source.Name, &a.Source.URL, &a.Category,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (repo *ArticleRepo) queryArticles(ctx context.Context, op, query string, capacity int, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, capacity)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
ORDER BY published_at DESC, created_at DESC`
	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	return repo.queryArticles(ctx, "List", query, 100)
}

// ListPaginated uses LIMIT and OFFSET over the published_at index.
func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
ORDER BY published_at DESC, created_at DESC
LIMIT $1 OFFSET $2`
	return repo.queryArticles(ctx, "ListPaginated", query, limit, limit, offset)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles
       (id, title, description, content, image, published_at,
        source_name, source_url, category, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	id := uuid.NewString()
	// TIMESTAMPTZ はマイクロ秒精度
	now := repo.now().Truncate(time.Microsecond)
	article.PublishedAt = article.PublishedAt.Truncate(time.Microsecond)
	_, err := repo.db.ExecContext(ctx, query,
		id, article.Title, article.Description, article.Content, article.Image,
		article.PublishedAt, article.Source.Name, article.Source.URL, article.Category,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	article.ID = id
	article.CreatedAt = now
	article.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	if _, err := uuid.Parse(article.ID); err != nil {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	const query = `
UPDATE articles SET
       title        = $1,
       description  = $2,
       content      = $3,
       image        = $4,
       published_at = $5,
       source_name  = $6,
       source_url   = $7,
       category     = $8,
       updated_at   = $9
WHERE id = $10`
	now := repo.now().Truncate(time.Microsecond)
	article.PublishedAt = article.PublishedAt.Truncate(time.Microsecond)
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Description, article.Content, article.Image,
		article.PublishedAt, article.Source.Name, article.Source.URL, article.Category,
		now, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	article.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n > 0, nil
}
