package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
)

// Uploader stores audio as Google Drive files.
// Target.Bucket is the parent folder id. Drive has no directories, so the
// whole composed Target.Key (prefix included) becomes the file name.
type Uploader struct {
	srv    *gdrive.Service
	logger *log.Logger
}

func NewUploader(srv *gdrive.Service, logger *log.Logger) *Uploader {
	return &Uploader{srv: srv, logger: logging.Component(logger, "drive")}
}

// Save creates a Drive file holding obj and returns its webViewLink
// (or a drive:// reference when Drive returns no link).
// Drive allows duplicate names, so saving twice creates two files.
func (u *Uploader) Save(ctx context.Context, obj audio.Object, target audio.Target) (audio.Location, error) {
	name := target.Key
	if len(obj.Data) == 0 {
		u.logger.Warn("no audio data, skipping upload", "folder", target.Bucket, "name", name)
		return "", nil
	}
	mimeType := obj.ContentType
	if mimeType == "" {
		mimeType = audio.ContentTypeMPEG
	}

	file := &gdrive.File{
		Name:     name,
		MimeType: mimeType,
	}
	if target.Bucket != "" {
		file.Parents = []string{target.Bucket}
	}

	media := []googleapi.MediaOption{
		googleapi.ContentType(mimeType),
		googleapi.ChunkSize(2 * 1024 * 1024),
	}
	created, err := u.srv.Files.Create(file).
		Media(bytes.NewReader(obj.Data), media...).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		kind := fault.Unexpected
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			kind = fault.Storage
		}
		u.logger.Error("upload failed", "kind", kind, "folder", target.Bucket, "name", name, "err", err)
		return "", fault.New(kind, "drive create "+name, fmt.Errorf("drive upload failed: %w", err))
	}

	loc := audio.Location(created.WebViewLink)
	if loc == "" {
		loc = audio.Location("drive://" + created.Id)
	}
	u.logger.Info("audio uploaded", "id", created.Id, "location", loc, "bytes", len(obj.Data))
	return loc, nil
}
