package avatars

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

const uploadsURLPrefix = "/uploads/"

// DiskStore keeps the images in a local directory, served under /uploads/.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := pkg.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}
	return &DiskStore{
		dir: dir,
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, userID int, image []byte) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "avatars.disk.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ext, err := CheckImage(image)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), image, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	log.Debugf("avatars: stored %s for user %d", name, userID)
	return uploadsURLPrefix + name, nil
}

func (s *DiskStore) SetupRoutes(router *mux.Router) {
	router.PathPrefix(uploadsURLPrefix).
		Handler(http.StripPrefix(uploadsURLPrefix, http.FileServer(http.Dir(s.dir)))).
		Methods("GET").
		Name("uploads")
}
