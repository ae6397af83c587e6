package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalPathPrefix is the URL path under which LocalUploader files are served.
const LocalPathPrefix = "/uploads/"

// LocalUploader writes images to a directory served by the API itself.
// It is meant for development setups without a Cloudinary account.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates dir if needed. baseURL is the public base URL of the API.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory files are written to.
func (u *LocalUploader) Dir() string { return u.dir }

// Upload writes the image under a random name and returns its URL.
func (u *LocalUploader) Upload(ctx context.Context, up Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + extensionFor(up)
	path := filepath.Join(u.dir, name)

	// #nosec G304 -- name is generated, not taken from the request
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("local upload: %w", err)
	}
	if _, err := io.Copy(f, up.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("local upload: write: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("local upload: close: %w", err)
	}
	return u.baseURL + LocalPathPrefix + name, nil
}

// extensionFor prefers the extension implied by the sniffed content type and
// falls back to the client's filename.
func extensionFor(up Upload) string {
	switch up.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if up.ContentType != "" {
		if exts, _ := mime.ExtensionsByType(up.ContentType); len(exts) > 0 {
			return exts[0]
		}
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
