// Package upload sends screenshots to a free image host.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"regionshot/src/messages"
	"regionshot/src/screenshot"
)

// Version is sent in the User-Agent header. main overrides it at startup.
var Version = "dev"

// Provider is an upload service.
type Provider string

// TheNullPointer is https://0x0.st.
const TheNullPointer Provider = "the-null-pointer"

// ErrUnknownProvider is returned for provider names that have no URL.
var ErrUnknownProvider = errors.New("unknown upload provider")

// ParseProvider validates a provider name from the config file.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(s)); p {
	case TheNullPointer:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// URL is where files are posted.
func (p Provider) URL() string {
	switch p {
	case TheNullPointer:
		return "https://0x0.st"
	default:
		return ""
	}
}

// Service uploads images. The zero value is not usable; use New.
type Service struct {
	url     string
	client  *http.Client
	tempDir string
}

// Options configure a Service.
type Options struct {
	Provider Provider
	// URL overrides the provider URL, for self-hosted instances and tests.
	URL string
	// TempDir holds the encoded files. Defaults to os.TempDir().
	TempDir string
	Timeout time.Duration
}

// New returns a Service for opts.
func New(opts Options) (*Service, error) {
	url := opts.URL
	if url == "" {
		provider := opts.Provider
		if provider == "" {
			provider = TheNullPointer
		}
		url = provider.URL()
		if url == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	dir := opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return &Service{url: url, client: &http.Client{Timeout: timeout}, tempDir: dir}, nil
}

// UploadImage encodes img as PNG into a temporary file and uploads it.
func (s *Service) UploadImage(ctx context.Context, img *image.RGBA) (messages.ImageUploaded, error) {
	path := filepath.Join(s.tempDir, "regionshot-"+uuid.NewString()+".png")
	if err := screenshot.WritePNG(path, img); err != nil {
		return messages.ImageUploaded{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return messages.ImageUploaded{}, fmt.Errorf("stat %s: %w", path, err)
	}

	url, err := s.Upload(ctx, path)
	if err != nil {
		return messages.ImageUploaded{}, err
	}
	b := img.Bounds()
	return messages.ImageUploaded{
		URL:      url,
		Width:    b.Dx(),
		Height:   b.Dy(),
		FileSize: info.Size(),
		Path:     path,
	}, nil
}

// Upload posts the file at path as the multipart field "file" and returns the
// link from the response body.
func (s *Service) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", "regionshot/"+Version)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	link := strings.TrimSpace(string(text))
	if resp.StatusCode != http.StatusOK {
		if link == "" {
			link = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("upload returned status %d: %s", resp.StatusCode, link)
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return "", fmt.Errorf("unexpected upload response %q", link)
	}
	return link, nil
}
