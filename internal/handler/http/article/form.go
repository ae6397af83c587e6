package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/infra/assets"
)

const imageField = "image"

// publishedAtLayouts are tried in order. Layouts without a zone are UTC.
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // <input type="datetime-local">
	"2006-01-02",
}

// articleForm holds the fields present in a create or update request.
// A nil field was not sent at all.
type articleForm struct {
	Title       *string
	Description *string
	Content     *string
	PublishedAt *time.Time
	SourceName  *string
	SourceURL   *string
	Category    *string
	Image       *assets.Upload

	cleanup func()
}

// Close releases the uploaded file and any temporary multipart files.
func (f *articleForm) Close() {
	if f.cleanup != nil {
		f.cleanup()
	}
}

type jsonSource struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

type jsonBody struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Content     *string     `json:"content"`
	PublishedAt *string     `json:"publishedAt"`
	Source      *jsonSource `json:"source"`
	SourceName  *string     `json:"sourceName"`
	SourceURL   *string     `json:"sourceUrl"`
	Category    *string     `json:"category"`
}

// parseForm reads a multipart form, an urlencoded form or a JSON body.
func parseForm(r *http.Request, maxMemory int64) (*articleForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		return parseMultipart(r, maxMemory)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return fromValues(r.PostForm)
	case "application/json", "":
		return parseJSON(r)
	default:
		return nil, respond.NewAppError(fmt.Sprintf("unsupported content type %q", mediaType), nil)
	}
}

func parseMultipart(r *http.Request, maxMemory int64) (*articleForm, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, bodyError(err)
	}
	form, err := fromValues(r.MultipartForm.Value)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		return nil, err
	}
	form.cleanup = func() { _ = r.MultipartForm.RemoveAll() }

	files := r.MultipartForm.File[imageField]
	if len(files) == 0 {
		return form, nil
	}
	fh := files[0]
	file, err := fh.Open()
	if err != nil {
		form.Close()
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	form.Image = &assets.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	}
	form.cleanup = func() {
		_ = file.Close()
		_ = r.MultipartForm.RemoveAll()
	}
	return form, nil
}

func fromValues(values map[string][]string) (*articleForm, error) {
	get := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		return &v[0]
	}

	form := &articleForm{
		Title:       get("title"),
		Description: get("description"),
		Content:     get("content"),
		SourceName:  get("sourceName"),
		SourceURL:   get("sourceUrl"),
		Category:    get("category"),
	}
	// source[name] / source[url] (qs 形式)
	if form.SourceName == nil {
		form.SourceName = get("source[name]")
	}
	if form.SourceURL == nil {
		form.SourceURL = get("source[url]")
	}

	publishedAt, err := parsePublishedAt(get("publishedAt"))
	if err != nil {
		return nil, err
	}
	form.PublishedAt = publishedAt
	return form, nil
}

func parseJSON(r *http.Request) (*articleForm, error) {
	var body jsonBody
	if r.Body == nil || r.Body == http.NoBody {
		return &articleForm{}, nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return nil, bodyError(err)
	}

	form := &articleForm{
		Title:       body.Title,
		Description: body.Description,
		Content:     body.Content,
		SourceName:  body.SourceName,
		SourceURL:   body.SourceURL,
		Category:    body.Category,
	}
	// ネストされた source が優先
	if body.Source != nil {
		if body.Source.Name != nil {
			form.SourceName = body.Source.Name
		}
		if body.Source.URL != nil {
			form.SourceURL = body.Source.URL
		}
	}

	publishedAt, err := parsePublishedAt(body.PublishedAt)
	if err != nil {
		return nil, err
	}
	form.PublishedAt = publishedAt
	return form, nil
}

// parsePublishedAt returns nil for an absent or blank value.
func parsePublishedAt(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, respond.NewAppError("publishedAt must be an RFC 3339 timestamp, YYYY-MM-DDTHH:MM or YYYY-MM-DD", nil)
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return respond.NewAppError(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), err)
	}
	return respond.NewAppError("invalid request body", err)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
