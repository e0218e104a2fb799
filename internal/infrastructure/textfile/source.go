package textfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
)

// Source reads text from local files, relative paths resolved against Dir.
type Source struct {
	Dir    string
	logger *log.Logger
}

func NewSource(dir string, logger *log.Logger) *Source {
	return &Source{Dir: dir, logger: logging.Component(logger, "text")}
}

// Read returns the whole content of name.
func (s *Source) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := name
	if s.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("text file not found", "path", path)
			return "", fault.New(fault.FileNotFound, "read "+path, err)
		}
		s.logger.Error("cannot read text file", "path", path, "err", err)
		return "", fault.New(fault.Unexpected, "read "+path, err)
	}
	s.logger.Debug("text loaded", "path", path, "bytes", len(data))
	return string(data), nil
}
