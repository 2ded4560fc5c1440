package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// DiskStore keeps photo bytes on disk, one subfolder per user. Metadata
// lives in postgres, the store only deals in paths.
type DiskStore struct {
	rootPath string
	mutex    sync.Mutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("create photos root folder: %w", err)
	}
	return &DiskStore{
		rootPath: rootPath,
	}, nil
}

func (ds *DiskStore) Save(ctx context.Context, userID int, filename string, src io.Reader) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.String("file.name", filename))

	// drop any path components a client might smuggle in
	filename = filepath.Base(filename)
	if filename == "." || filename == string(os.PathSeparator) || strings.Contains(filename, "..") {
		return "", errors.New("invalid file name")
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	userFolder := path.Join(ds.rootPath, fmt.Sprintf("user_%d", userID))
	if err := os.MkdirAll(userFolder, 0755); err != nil {
		return "", fmt.Errorf("create user folder: %w", err)
	}

	newFileName := fmt.Sprintf("%d_%s", time.Now().UnixMicro(), filename)
	newFilePath := path.Join(userFolder, newFileName)
	if _, err := os.Stat(newFilePath); err == nil {
		return "", fmt.Errorf("file already exists: %s", newFilePath)
	}

	dst, err := os.Create(newFilePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	log.Debugf("disk store: new file saved: %s", newFilePath)

	return newFilePath, nil
}

// Open returns the file for reading. Paths come from the photo metadata
// rows, anything pointing outside the root is rejected.
func (ds *DiskStore) Open(ctx context.Context, filePath string) (_ *os.File, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !ds.underRoot(filePath) {
		return nil, fmt.Errorf("file path outside photos root: %s", filePath)
	}

	return os.Open(filePath)
}

func (ds *DiskStore) Remove(ctx context.Context, filePath string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !ds.underRoot(filePath) {
		return fmt.Errorf("file path outside photos root: %s", filePath)
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.Remove(filePath); err != nil {
		return err
	}

	log.Debugf("disk store: file removed: %s", filePath)

	return nil
}

func (ds *DiskStore) underRoot(filePath string) bool {
	cleaned := filepath.Clean(filePath)
	return strings.HasPrefix(cleaned, filepath.Clean(ds.rootPath)+string(os.PathSeparator))
}
