package drive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"speech-upload-app/internal/domain/audio"
	"speech-upload-app/internal/domain/fault"
	"speech-upload-app/internal/logging"
)

func newService(t *testing.T, h http.HandlerFunc) (*gdrive.Service, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	s, err := gdrive.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)
	return s, &calls
}

func TestSaveCreatesFile(t *testing.T) {
	s, calls := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "upload/drive/v3/files")
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"name":"daily/speech.mp3"`)
		assert.Contains(t, string(body), `"parents":["folder-1"]`)
		assert.Contains(t, string(body), "ID3-audio")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-1","webViewLink":"https://drive.google.com/file/d/file-1/view"}`))
	})

	loc, err := NewUploader(s, logging.Discard()).Save(context.Background(),
		audio.Object{Data: []byte("ID3-audio")},
		audio.Target{Bucket: "folder-1", Key: "daily/speech.mp3"})
	require.NoError(t, err)

	assert.Equal(t, audio.Location("https://drive.google.com/file/d/file-1/view"), loc)
	assert.Equal(t, 1, *calls)
}

func TestSaveFallsBackToID(t *testing.T) {
	s, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-2"}`))
	})

	loc, err := NewUploader(s, logging.Discard()).Save(context.Background(),
		audio.Object{Data: []byte("x")}, audio.Target{Key: "speech.mp3"})
	require.NoError(t, err)
	assert.Equal(t, audio.Location("drive://file-2"), loc)
}

func TestSaveEmptyIsNoop(t *testing.T) {
	s, calls := newService(t, func(w http.ResponseWriter, r *http.Request) {})

	loc, err := NewUploader(s, logging.Discard()).Save(context.Background(), audio.Object{}, audio.Target{Key: "speech.mp3"})
	require.NoError(t, err)
	assert.Empty(t, loc)
	assert.Zero(t, *calls)
}

func TestSaveServiceError(t *testing.T) {
	s, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"insufficient permissions"}}`))
	})

	_, err := NewUploader(s, logging.Discard()).Save(context.Background(),
		audio.Object{Data: []byte("x")}, audio.Target{Key: "speech.mp3"})
	require.Error(t, err)
	assert.Equal(t, fault.Storage, fault.KindOf(err))
	assert.True(t, strings.Contains(err.Error(), "insufficient permissions"))
}
