// Package article provides HTTP handlers for the /api/news endpoints.
// It includes handlers for creating, listing, fetching, updating and deleting articles.
package article

import (
	"time"

	"newsroom/internal/domain/entity"
)

// SourceDTO is the nested source of an article.
type SourceDTO struct {
	Name string `json:"name" example:"Reuters"`
	URL  string `json:"url,omitempty" example:"https://www.reuters.com"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          string    `json:"_id" example:"665f1c2ab1e4a3d9c0f1e2d3"`
	Title       string    `json:"title" example:"Central bank holds rates"`
	Description string    `json:"description" example:"Policy makers kept rates unchanged for a third meeting."`
	Content     string    `json:"content,omitempty" example:"Full article body..."`
	Image       string    `json:"image,omitempty" example:"https://res.cloudinary.com/demo/image/upload/news_images/abc.jpg"`
	PublishedAt time.Time `json:"publishedAt" example:"2024-02-01T09:00:00Z"`
	Source      SourceDTO `json:"source"`
	Category    string    `json:"category" example:"Business"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-02-01T09:05:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2024-02-01T09:05:00Z"`
}

// NewsResponse is the body of successful create and update requests.
type NewsResponse struct {
	Message string `json:"message" example:"News created successfully"`
	News    DTO    `json:"news"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Image:       a.Image,
		PublishedAt: a.PublishedAt,
		Source:      SourceDTO{Name: a.Source.Name, URL: a.Source.URL},
		Category:    a.Category,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
