package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"newsroom/internal/config"
)

// cloudinaryAPI is the subset of the Cloudinary upload API the uploader calls.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader stores images in a Cloudinary folder.
type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
}

// NewCloudinaryUploader builds the client from CloudinaryURL, or from the
// cloud name, API key and secret when no URL is configured.
func NewCloudinaryUploader(cfg config.AssetsConfig) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return newCloudinaryUploader(&cld.Upload, cfg.Folder), nil
}

func newCloudinaryUploader(api cloudinaryAPI, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{api: api, folder: folder}
}

// Upload sends the image and returns its secure_url.
func (u *CloudinaryUploader) Upload(ctx context.Context, up Upload) (string, error) {
	res, err := u.api.Upload(ctx, up.Body, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res == nil {
		return "", errors.New("cloudinary upload: empty response")
	}
	// API エラーは err ではなく結果に入って返ってくる
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure_url")
	}
	return res.SecureURL, nil
}
