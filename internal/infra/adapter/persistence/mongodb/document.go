package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"newsroom/internal/domain/entity"
)

type sourceDoc struct {
	Name string `bson:"name"`
	URL  string `bson:"url"`
}

// articleDoc is the stored shape of an article. SourceName is the flattened
// legacy field; it is only read, and is folded into Source by MigrateLegacySource.
type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Content     string             `bson:"content"`
	Image       string             `bson:"image"`
	PublishedAt time.Time          `bson:"publishedAt"`
	Source      sourceDoc          `bson:"source"`
	SourceName  string             `bson:"sourceName,omitempty"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func fromEntity(a *entity.Article) articleDoc {
	return articleDoc{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Image:       a.Image,
		PublishedAt: a.PublishedAt.UTC().Truncate(time.Millisecond),
		Source:      sourceDoc{Name: a.Source.Name, URL: a.Source.URL},
		Category:    a.Category,
	}
}

func (d articleDoc) toEntity() *entity.Article {
	src := entity.Source{Name: d.Source.Name, URL: d.Source.URL}
	if src.Name == "" {
		src.Name = d.SourceName
	}
	return &entity.Article{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		Image:       d.Image,
		PublishedAt: d.PublishedAt.UTC(),
		Source:      src,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}
