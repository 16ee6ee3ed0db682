package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/diets"
	"github.com/2beens/aitrainer/internal/workouts"
)

const RootFolderName = "aitrainer-backup"

type fileStore interface {
	FindFolder(ctx context.Context, name string) (string, error)
	CreateFolder(ctx context.Context, name string) (string, error)
	ListFileNames(ctx context.Context, folderID string) ([]string, error)
	Upload(ctx context.Context, folderID, name string, content []byte) (string, error)
	Share(ctx context.Context, fileID, email string) (string, error)
}

type workoutsSource interface {
	ListAll(ctx context.Context) ([]workouts.Workout, error)
}

type dietsSource interface {
	ListAll(ctx context.Context) ([]diets.Diet, error)
}

// Snapshot is the content of one backup file.
type Snapshot struct {
	CreatedAt time.Time          `json:"created_at"`
	Workouts  []workouts.Workout `json:"workouts"`
	Diets     []diets.Diet       `json:"diets"`
}

type Service struct {
	store     fileStore
	workouts  workoutsSource
	diets     dietsSource
	shareWith string
}

// NewService creates the backup service; shareWith is an optional email that gets
// read access to the backup folder and files.
func NewService(store fileStore, workouts workoutsSource, diets dietsSource, shareWith string) *Service {
	return &Service{
		store:     store,
		workouts:  workouts,
		diets:     diets,
		shareWith: shareWith,
	}
}

func (s *Service) rootFolder(ctx context.Context) (string, error) {
	folderID, err := s.store.FindFolder(ctx, RootFolderName)
	if err != nil {
		return "", err
	}
	if folderID != "" {
		log.Debugf("found backups folder ID: %s", folderID)
		return folderID, nil
	}

	log.Println("root backups folder not found, creating ...")
	folderID, err = s.store.CreateFolder(ctx, RootFolderName)
	if err != nil {
		return "", fmt.Errorf("create root backups folder: %w", err)
	}
	s.share(ctx, folderID)
	log.Printf("new root backups folder created: %s", folderID)

	return folderID, nil
}

func (s *Service) share(ctx context.Context, fileID string) {
	if s.shareWith == "" {
		return
	}
	permissionID, err := s.store.Share(ctx, fileID, s.shareWith)
	if err != nil {
		log.Errorf("failed to share %s with %s: %s", fileID, s.shareWith, err)
		return
	}
	log.Debugf("permission %s created for %s", permissionID, fileID)
}

// FileName returns the backup file name for the given day, not clashing with the existing names.
func FileName(baseTime time.Time, existing []string) string {
	baseName := fmt.Sprintf("aitrainer-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
	name := baseName + ".json"
	for counter := 2; slices.Contains(existing, name); counter++ {
		name = fmt.Sprintf("%s_%d.json", baseName, counter)
	}
	return name
}

// DoBackup exports all the plans into a new file in the backups folder and returns its name.
func (s *Service) DoBackup(ctx context.Context, baseTime time.Time) (string, error) {
	folderID, err := s.rootFolder(ctx)
	if err != nil {
		return "", err
	}

	existing, err := s.store.ListFileNames(ctx, folderID)
	if err != nil {
		return "", fmt.Errorf("list backup files: %w", err)
	}

	allWorkouts, err := s.workouts.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("get workouts: %w", err)
	}
	allDiets, err := s.diets.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("get diets: %w", err)
	}

	snapshotJson, err := json.Marshal(Snapshot{
		CreatedAt: baseTime.UTC(),
		Workouts:  allWorkouts,
		Diets:     allDiets,
	})
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := FileName(baseTime, existing)
	log.Printf("%s: backing up %d workouts and %d diets ...", name, len(allWorkouts), len(allDiets))

	fileID, err := s.store.Upload(ctx, folderID, name, snapshotJson)
	if err != nil {
		return "", fmt.Errorf("%s: upload backup file: %w", name, err)
	}
	s.share(ctx, fileID)

	log.Printf("%s: backup file saved: %s", name, fileID)
	return name, nil
}
