package upload

import (
	"context"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("The-Null-Pointer")
	require.NoError(t, err)
	assert.Equal(t, TheNullPointer, p)
	assert.Equal(t, "https://0x0.st", p.URL())

	_, err = ParseProvider("imgur")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestUploadImage(t *testing.T) {
	var gotAgent string
	var gotSize int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotSize = len(data)
		if !strings.HasSuffix(hdr.Filename, ".png") {
			http.Error(w, "not a png", http.StatusBadRequest)
			return
		}
		io.WriteString(w, "https://0x0.st/Xy.png\n")
	}))
	defer srv.Close()

	dir := t.TempDir()
	svc, err := New(Options{URL: srv.URL, TempDir: dir})
	require.NoError(t, err)

	info, err := svc.UploadImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 30, 20)))
	require.NoError(t, err)

	assert.Equal(t, "https://0x0.st/Xy.png", info.URL)
	assert.Equal(t, 30, info.Width)
	assert.Equal(t, 20, info.Height)
	assert.Equal(t, int64(gotSize), info.FileSize)
	assert.Equal(t, dir, filepath.Dir(info.Path))
	assert.Equal(t, "regionshot/"+Version, gotAgent)

	_, err = os.Stat(info.Path)
	assert.NoError(t, err, "the uploaded file is kept for the preview")
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusServiceUnavailable, "try later", "status 503: try later"},
		{"empty error body", http.StatusForbidden, "", "status 403: Forbidden"},
		{"not a link", http.StatusOK, "<html>", "unexpected upload response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			svc, err := New(Options{URL: srv.URL, TempDir: t.TempDir()})
			require.NoError(t, err)
			_, err = svc.UploadImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 2, 2)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUploadHonorsContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	svc, err := New(Options{URL: srv.URL, TempDir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.UploadImage(ctx, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadMissingFile(t *testing.T) {
	svc, err := New(Options{URL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
