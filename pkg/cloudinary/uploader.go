package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

// Upload stores r under folder and returns the delivery URL. The public ID is
// the filename stem plus a random suffix so re-uploads never overwrite each
// other. Resource type "auto" covers both receipt images and PDFs.
func (u *CloudinaryUploader) Upload(
	ctx context.Context,
	folder string,
	filename string,
	r io.Reader,
) (string, error) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	publicID := fmt.Sprintf("%s-%s", stem, uuid.NewString()[:8])

	res, err := u.cld.Upload.Upload(
		ctx,
		r,
		uploader.UploadParams{
			Folder:       folder,
			PublicID:     publicID,
			ResourceType: "auto",
		},
	)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
