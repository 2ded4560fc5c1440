package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/checkins"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	rootBackupsFolderName = "fitcoach-backup"
	checkinsFileChunkSize = 100 // number of check-ins in one backup file
)

// checkinsSource is the slice of the check-ins repo the backup reads from.
type checkinsSource interface {
	CheckinUserIDs(ctx context.Context) ([]int, error)
	CreatedSince(ctx context.Context, userID int, since *time.Time) ([]checkins.Checkin, error)
}

// GoogleDriveBackupService exports check-ins to Google Drive as chunked JSON
// files, one folder per user under the root backups folder. Each run picks up
// only the check-ins created after the user's newest backup file.
type GoogleDriveBackupService struct {
	drive           driveAPI
	source          checkinsSource
	metrics         *metrics.Manager
	shareWithEmail  string
	backupsFolderId string
}

func NewGoogleDriveBackupService(
	ctx context.Context,
	credentialsJson []byte,
	source checkinsSource,
	shareWithEmail string,
	metricsManager *metrics.Manager,
) (*GoogleDriveBackupService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	return newBackupService(ctx, &googleDrive{service: driveService}, source, shareWithEmail, metricsManager)
}

func newBackupService(
	ctx context.Context,
	driveApi driveAPI,
	source checkinsSource,
	shareWithEmail string,
	metricsManager *metrics.Manager,
) (*GoogleDriveBackupService, error) {
	s := &GoogleDriveBackupService{
		drive:          driveApi,
		source:         source,
		metrics:        metricsManager,
		shareWithEmail: shareWithEmail,
	}

	backupsFolderId, err := driveApi.FindFolder(ctx, rootBackupsFolderName)
	if err != nil {
		return nil, err
	}

	if backupsFolderId == "" {
		log.Println("root backups folder not found, recreating ...")
		backupsFolderId, err = s.createRootBackupsFolder(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create root backups folder: %w", err)
		}
		log.Printf("new root backups folder created: %s", backupsFolderId)
	} else {
		log.Printf("found backups folder ID: %s", backupsFolderId)
	}

	s.backupsFolderId = backupsFolderId

	return s, nil
}

// Reinit drops the root backups folder with everything in it, then recreates
// it and runs a full backup.
func (s *GoogleDriveBackupService) Reinit(ctx context.Context, baseTime time.Time) error {
	log.Println("check-ins backup reinit starting ...")

	if err := s.drive.Delete(ctx, s.backupsFolderId); err != nil {
		return err
	}

	backupsFolderId, err := s.createRootBackupsFolder(ctx)
	if err != nil {
		return fmt.Errorf("failed to create root backups folder: %w", err)
	}

	log.Printf("new root backups folder created: %s", backupsFolderId)

	s.backupsFolderId = backupsFolderId

	return s.DoBackup(ctx, baseTime)
}

func (s *GoogleDriveBackupService) DoBackup(ctx context.Context, baseTime time.Time) error {
	startTime := time.Now()

	userIDs, err := s.source.CheckinUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get check-in user ids: %w", err)
	}
	if len(userIDs) == 0 {
		log.Println("no users with check-ins, nothing to back up")
		return nil
	}

	userFolders, err := s.drive.ListFolders(ctx, s.backupsFolderId)
	if err != nil {
		return err
	}
	userFolderIds := make(map[string]string, len(userFolders))
	for _, folder := range userFolders {
		userFolderIds[folder.Name] = folder.Id
	}

	totalBackedUp := 0
	for _, userID := range userIDs {
		backedUp, err := s.backupUserCheckins(ctx, userID, userFolderIds, baseTime)
		if err != nil {
			return fmt.Errorf("backup check-ins of user %d: %w", userID, err)
		}
		totalBackedUp += backedUp
	}

	if totalBackedUp == 0 {
		log.Println("no new check-ins to backup, done")
	} else {
		log.Printf("backed up %d check-ins", totalBackedUp)
	}

	s.metrics.CounterCheckinsBackups.Add(float64(totalBackedUp))
	s.metrics.HistCheckinsBackupDuration.Observe(time.Since(startTime).Seconds())

	return nil
}

func (s *GoogleDriveBackupService) backupUserCheckins(
	ctx context.Context,
	userID int,
	userFolderIds map[string]string,
	baseTime time.Time,
) (int, error) {
	folderName := fmt.Sprintf("user-%d", userID)
	folderId, ok := userFolderIds[folderName]
	if !ok {
		var err error
		folderId, err = s.drive.CreateFolder(ctx, folderName, s.backupsFolderId)
		if err != nil {
			return 0, fmt.Errorf("failed to create user backups folder: %w", err)
		}
		userFolderIds[folderName] = folderId
		log.Printf("user backups folder created, %s: %s", folderName, folderId)
	}

	currentBackupFiles, err := s.drive.ListFiles(ctx, folderId)
	if err != nil {
		return 0, err
	}

	lastCreatedAt := time.Time{}
	for _, file := range currentBackupFiles {
		createdAt, err := time.Parse(time.RFC3339, file.CreatedTime)
		if err != nil {
			log.Errorf("parsing created at for file %s: %s", file.Name, err)
			continue
		}
		if createdAt.After(lastCreatedAt) {
			lastCreatedAt = createdAt
		}
	}

	var since *time.Time
	if !lastCreatedAt.IsZero() {
		since = &lastCreatedAt
	}

	checkinsToBackup, err := s.source.CreatedSince(ctx, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to get next backup check-ins: %w", err)
	}
	if len(checkinsToBackup) == 0 {
		return 0, nil
	}

	filePrefix := "checkins"
	if since == nil {
		filePrefix = "initial"
		log.Printf("%s: backups empty, creating initial backup files ...", folderName)
	} else {
		log.Printf("%s: backing up %d check-ins since %v", folderName, len(checkinsToBackup), lastCreatedAt)
	}

	baseFileName := nextBackupFileName(currentBackupFiles, filePrefix, baseTime)
	if err := s.backupCheckins(ctx, folderId, checkinsToBackup, baseFileName); err != nil {
		return 0, fmt.Errorf("failed to backup check-ins: %w", err)
	}

	return len(checkinsToBackup), nil
}

func (s *GoogleDriveBackupService) createRootBackupsFolder(ctx context.Context) (string, error) {
	backupsFolderId, err := s.drive.CreateFolder(ctx, rootBackupsFolderName, "")
	if err != nil {
		return "", err
	}

	if s.shareWithEmail == "" {
		return backupsFolderId, nil
	}

	if pId, err := s.drive.Share(ctx, backupsFolderId, s.shareWithEmail); err != nil {
		return backupsFolderId, fmt.Errorf("failed to create additional permission for root backup folder: %w", err)
	} else {
		log.Printf("permission %s created for root backup folder %s", pId, backupsFolderId)
	}

	return backupsFolderId, nil
}

func (s *GoogleDriveBackupService) backupCheckins(
	ctx context.Context,
	folderId string,
	checkinsToBackup []checkins.Checkin,
	baseFileName string,
) error {
	chunks := len(checkinsToBackup) / checkinsFileChunkSize
	fromIndex, toIndex := 0, checkinsFileChunkSize
	if len(checkinsToBackup)%checkinsFileChunkSize > 0 {
		chunks++
	}

	if len(checkinsToBackup) < checkinsFileChunkSize {
		toIndex = len(checkinsToBackup)
	}

	for i := 1; i <= chunks; i++ {
		nextFileName := fmt.Sprintf("%s_%d.json", baseFileName, i)
		nextCheckins := checkinsToBackup[fromIndex:toIndex]

		log.Printf("%s: creating backup file with %d check-ins [from %d to %d] ...", nextFileName, len(nextCheckins), fromIndex, toIndex)

		nextCheckinsJson, err := json.Marshal(nextCheckins)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal check-ins: %w", nextFileName, err)
		}

		backupChunkFileId, err := s.drive.CreateFile(ctx, nextFileName, folderId, nextCheckinsJson)
		if err != nil {
			return fmt.Errorf("%s: failed to create check-ins backup file: %w", nextFileName, err)
		}

		if s.shareWithEmail != "" {
			permissionId, err := s.drive.Share(ctx, backupChunkFileId, s.shareWithEmail)
			if err != nil {
				return fmt.Errorf("%s: failed to create additional permission: %w", nextFileName, err)
			}
			log.Printf("%s: backup file [permission %s] saved: %s", nextFileName, permissionId, backupChunkFileId)
		} else {
			log.Printf("%s: backup file saved: %s", nextFileName, backupChunkFileId)
		}

		fromIndex = toIndex
		toIndex = toIndex + checkinsFileChunkSize
		if toIndex >= len(checkinsToBackup) {
			toIndex = len(checkinsToBackup)
		}
	}

	return nil
}

// nextBackupFileName picks a base name like "checkins-25-8-2026" that does
// not collide with the chunk files already in the folder. A second run on the
// same day gets a "_2" suffix, and so on.
func nextBackupFileName(existingFiles []*drive.File, prefix string, baseTime time.Time) string {
	baseName := fmt.Sprintf("%s-%d-%d-%d", prefix, baseTime.Day(), baseTime.Month(), baseTime.Year())
	nextName := baseName
	for counter := 2; backupNameTaken(existingFiles, nextName); counter++ {
		nextName = fmt.Sprintf("%s_%d", baseName, counter)
	}
	return nextName
}

func backupNameTaken(existingFiles []*drive.File, name string) bool {
	for _, file := range existingFiles {
		if strings.HasPrefix(file.Name, name+"_") {
			return true
		}
	}
	return false
}
