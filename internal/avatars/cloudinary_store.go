package avatars

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

// CloudinaryStore uploads the images to Cloudinary, cropped to a 500x500 jpg around the face.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("cloudinary url not set")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	if folder == "" {
		folder = "aitrainer/avatars"
	}
	return &CloudinaryStore{
		cld:    cld,
		folder: folder,
	}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, userID int, image []byte) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "avatars.cloudinary.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := CheckImage(image); err != nil {
		return "", err
	}

	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		PublicID:       fmt.Sprintf("user_%d", userID),
		Folder:         s.folder,
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_500,w_500",
	})
	if err != nil {
		return "", fmt.Errorf("upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload to cloudinary: %s", result.Error.Message)
	}

	return result.SecureURL, nil
}
