package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// newestFirst is the listing order; _id breaks publishedAt ties by insertion time.
var newestFirst = bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}}

type ArticleRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewArticleRepo(coll *mongo.Collection) repository.ArticleRepository {
	return NewArticleRepoWithClock(coll, time.Now)
}

// NewArticleRepoWithClock is NewArticleRepo with a fixed time source for the write timestamps.
func NewArticleRepoWithClock(coll *mongo.Collection, now func() time.Time) repository.ArticleRepository {
	return &ArticleRepo{coll: coll, now: now}
}

// BSON は ミリ秒精度なので書き込み前に丸める
func (repo *ArticleRepo) stamp() time.Time {
	return repo.now().UTC().Truncate(time.Millisecond)
}

func (repo *ArticleRepo) find(ctx context.Context, op string, opts *options.FindOptions) ([]*entity.Article, error) {
	cur, err := repo.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = cur.Close(ctx) }()

	articles := make([]*entity.Article, 0, 100)
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: Decode: %w", op, err)
		}
		articles = append(articles, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	return repo.find(ctx, "List", options.Find().SetSort(newestFirst))
}

func (repo *ArticleRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return repo.find(ctx, "ListPaginated", opts)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	n, err := repo.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc articleDoc
	err = repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	now := repo.stamp()
	doc := fromEntity(article)
	doc.ID = primitive.NewObjectIDFromTimestamp(now)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	article.ID = doc.ID.Hex()
	article.PublishedAt = doc.PublishedAt
	article.CreatedAt = now
	article.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	oid, err := primitive.ObjectIDFromHex(article.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	now := repo.stamp()
	doc := fromEntity(article)
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: doc.Title},
			{Key: "description", Value: doc.Description},
			{Key: "content", Value: doc.Content},
			{Key: "image", Value: doc.Image},
			{Key: "publishedAt", Value: doc.PublishedAt},
			{Key: "source", Value: doc.Source},
			{Key: "category", Value: doc.Category},
			{Key: "updatedAt", Value: now},
		}},
		// 旧形式のフィールドは書き込み時に除去する
		{Key: "$unset", Value: bson.D{{Key: "sourceName", Value: ""}}},
	}
	res, err := repo.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	article.PublishedAt = doc.PublishedAt
	article.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}
