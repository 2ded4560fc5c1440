package backup

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

// driveAPI covers the few Google Drive calls the backup makes, so the backup
// logic can be tested against a fake instead of the real Drive service.
type driveAPI interface {
	FindFolder(ctx context.Context, name string) (string, error)
	CreateFolder(ctx context.Context, name, parentID string) (string, error)
	ListFolders(ctx context.Context, parentID string) ([]*drive.File, error)
	ListFiles(ctx context.Context, folderID string) ([]*drive.File, error)
	CreateFile(ctx context.Context, name, folderID string, content []byte) (string, error)
	Share(ctx context.Context, fileID, email string) (string, error)
	Delete(ctx context.Context, fileID string) error
}

// googleDrive implements driveAPI on the Drive v3 service.
// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
type googleDrive struct {
	service *drive.Service
}

// FindFolder returns the id of the folder with the given name, or an empty
// string when no such folder exists.
func (g *googleDrive) FindFolder(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	folders, err := g.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve files: %w", err)
	}

	if len(folders.Files) == 0 {
		return "", nil
	}
	if len(folders.Files) > 1 {
		log.Warnf("attention: found %d folders named %s, will take the first one", len(folders.Files), name)
	}
	return folders.Files[0].Id, nil
}

func (g *googleDrive) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	folderMeta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		folderMeta.Parents = []string{parentID}
	}

	res, err := g.service.
		Files.Create(folderMeta).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return res.Id, nil
}

func (g *googleDrive) ListFolders(ctx context.Context, parentID string) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", parentID, folderMimeType)
	res, err := g.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return res.Files, nil
}

func (g *googleDrive) ListFiles(ctx context.Context, folderID string) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	res, err := g.service.
		Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return res.Files, nil
}

func (g *googleDrive) CreateFile(ctx context.Context, name, folderID string, content []byte) (string, error) {
	fileMeta := &drive.File{
		Name: name,
		// https://developers.google.com/drive/api/v3/mime-types
		MimeType: "application/vnd.google-apps.file",
		Parents:  []string{folderID},
	}

	res, err := g.service.
		Files.Create(fileMeta).
		Fields("id, parents").
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return res.Id, nil
}

func (g *googleDrive) Share(ctx context.Context, fileID, email string) (string, error) {
	permission := &drive.Permission{
		EmailAddress: email,
		Type:         "user",
		Role:         "reader",
	}

	createdPermission, err := g.service.
		Permissions.Create(fileID, permission).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return createdPermission.Id, nil
}

func (g *googleDrive) Delete(ctx context.Context, fileID string) error {
	return g.service.
		Files.Delete(fileID).
		Context(ctx).
		Do()
}
