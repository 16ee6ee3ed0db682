package backup

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveStore is the Google Drive side of the backups.
type DriveStore struct {
	service *drive.Service
}

func NewDriveStore(ctx context.Context, credentialsJson []byte) (*DriveStore, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &DriveStore{
		service: driveService,
	}, nil
}

// FindFolder returns the id of the folder with the given name, or "" if there is none.
func (s *DriveStore) FindFolder(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	folders, err := s.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve folders: %w", err)
	}

	switch len(folders.Files) {
	case 0:
		return "", nil
	case 1:
		return folders.Files[0].Id, nil
	default:
		log.Warnf("found %d %s folders, will take the first one: %s", len(folders.Files), name, folders.Files[0].Id)
		return folders.Files[0].Id, nil
	}
}

func (s *DriveStore) CreateFolder(ctx context.Context, name string) (string, error) {
	folder, err := s.service.
		Files.Create(&drive.File{Name: name, MimeType: folderMimeType}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return folder.Id, nil
}

func (s *DriveStore) ListFileNames(ctx context.Context, folderID string) ([]string, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	files, err := s.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files.Files))
	for _, f := range files.Files {
		names = append(names, f.Name)
	}
	return names, nil
}

func (s *DriveStore) Upload(ctx context.Context, folderID, name string, content []byte) (string, error) {
	fileMeta := &drive.File{
		Name: name,
		// https://developers.google.com/drive/api/v3/mime-types
		MimeType: "application/json",
		Parents:  []string{folderID},
	}

	file, err := s.service.
		Files.Create(fileMeta).
		Fields("id, parents").
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return file.Id, nil
}

// Share gives the email reader access to the file.
func (s *DriveStore) Share(ctx context.Context, fileID, email string) (string, error) {
	permission := &drive.Permission{
		EmailAddress: email,
		Type:         "user",
		Role:         "reader",
	}

	createdPermission, err := s.service.Permissions.
		Create(fileID, permission).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return createdPermission.Id, nil
}
