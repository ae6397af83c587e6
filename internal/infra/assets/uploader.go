// Package assets stores uploaded article images on an asset host and
// returns the durable URL the article keeps in its image field.
package assets

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"newsroom/internal/domain/entity"
)

// sniffLen is the number of bytes http.DetectContentType inspects.
const sniffLen = 512

// ErrUnavailable is returned while the asset host is considered down.
var ErrUnavailable = errors.New("asset host unavailable")

// Upload is one image handed to an Uploader.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, up Upload) (string, error)
}

// SniffImage detects the content type from the first bytes of up.Body and
// rejects anything that is not an image. The returned Upload replays the
// sniffed bytes and carries the detected content type.
func SniffImage(up Upload) (Upload, error) {
	br := bufio.NewReaderSize(up.Body, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return up, err
	}
	if len(head) == 0 {
		return up, &entity.ValidationError{Field: "image", Message: "must not be empty"}
	}
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		return up, &entity.ValidationError{Field: "image", Message: "must be an image file"}
	}
	up.ContentType = ct
	up.Body = br
	return up, nil
}
