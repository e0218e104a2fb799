package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
)

// FileStore saves audio bytes under a local directory (default audio/).
// The target bucket, when set, overrides Dir.
type FileStore struct {
	Dir    string
	logger *log.Logger
}

func NewFileStore(dir string, logger *log.Logger) *FileStore {
	if dir == "" {
		dir = "audio"
	}
	return &FileStore{Dir: dir, logger: logging.Component(logger, "file")}
}

// Save writes data to {dir}/{key} and returns the path. Key prefixes become subdirectories.
func (fs *FileStore) Save(_ context.Context, obj audio.Object, target audio.Target) (audio.Location, error) {
	dir := fs.Dir
	if target.Bucket != "" {
		dir = target.Bucket
	}
	path := filepath.Join(dir, filepath.FromSlash(target.Key))
	if !within(dir, path) {
		fs.logger.Error("key escapes audio directory", "dir", dir, "key", target.Key)
		return "", fault.New(fault.Storage, "write "+target.Key, errors.New("key escapes "+dir))
	}
	if len(obj.Data) == 0 {
		fs.logger.Warn("no audio data, skipping write", "path", path)
		return "", nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fs.logger.Error("create directory failed", "path", path, "err", err)
		return "", fault.New(fault.Storage, "mkdir "+filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, obj.Data, 0o644); err != nil {
		fs.logger.Error("write failed", "path", path, "err", err)
		return "", fault.New(fault.Storage, "write "+path, err)
	}
	fs.logger.Info("audio saved", "path", path, "bytes", len(obj.Data))
	return audio.Location(path), nil
}

// within reports whether path stays inside dir once both are cleaned.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
