package utils

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

const CampaignImageFolder = "campaigns"

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file multipart.File, folder, publicID string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary config error")
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload writes file under folder/publicID, replacing any previous image
// with the same public id.
func (u *CloudinaryUploader) Upload(ctx context.Context, file multipart.File, folder, publicID string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    folder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", errors.Wrap(err, "upload error")
	}
	if resp.Error.Message != "" {
		return "", errors.Errorf("upload error: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
