package avatars

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// MaxImageSize is the largest accepted profile image, in bytes.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImageType = errors.New("only jpeg, png and webp images are allowed")
	ErrImageTooLarge        = fmt.Errorf("image larger than %d bytes", MaxImageSize)
	ErrEmptyImage           = errors.New("image is empty")
)

// Store saves a profile image and returns the URL it can be fetched from.
type Store interface {
	Save(ctx context.Context, userID int, image []byte) (string, error)
}

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// CheckImage sniffs the image content type and returns the file extension for it.
func CheckImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	if len(image) > MaxImageSize {
		return "", ErrImageTooLarge
	}
	ext, ok := extensionsByType[http.DetectContentType(image)]
	if !ok {
		return "", ErrUnsupportedImageType
	}
	return ext, nil
}
