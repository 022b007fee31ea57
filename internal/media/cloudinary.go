package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var ErrUploadFailed = errors.New("image upload failed")

// Uploader relocates a local file to a durable media host and returns the
// resulting URL. Implementations do not retry; a failed upload is final
// from the caller's point of view.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// CloudinaryClient uploads images through Cloudinary's unsigned upload API.
type CloudinaryClient struct {
	uploadURL    string
	uploadPreset string
	client       *http.Client
}

// NewCloudinaryClient creates an uploader for the given Cloudinary cloud.
// The timeout bounds each upload call end to end.
func NewCloudinaryClient(cloudName, uploadPreset string, timeout time.Duration) *CloudinaryClient {
	return &CloudinaryClient{
		uploadURL:    fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName),
		uploadPreset: uploadPreset,
		client:       &http.Client{Timeout: timeout},
	}
}

type uploadResult struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file at localPath to Cloudinary and returns its secure URL.
func (c *CloudinaryClient) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrUploadFailed, localPath, err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(localPath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := form.WriteField("upload_preset", c.uploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, pr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	var result uploadResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUploadFailed, err)
	}

	if resp.StatusCode != http.StatusOK || result.SecureURL == "" {
		msg := result.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, msg)
	}

	return result.SecureURL, nil
}
