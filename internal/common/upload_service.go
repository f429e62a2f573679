package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"startup-hub/backend/internal/config"
	"startup-hub/backend/internal/models/dtos"
)

// MaxImageSize caps uploaded image payloads (15MB).
const MaxImageSize = 15 * 1024 * 1024

// UploadResult is what the image host hands back: a durable URL plus the
// host-side id of the asset.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// Uploader is the narrow interface the idea and profile flows consume.
type Uploader interface {
	UploadImage(ctx context.Context, file dtos.ImageFile) (*UploadResult, error)
}

// UploadService posts images to a Cloudinary-compatible unsigned upload
// endpoint. The upload is awaited before any aggregate is persisted, so a
// slow host extends request latency rather than leaving partial state.
type UploadService struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Client       *http.Client
}

var _ Uploader = (*UploadService)(nil)

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		BaseURL:      cfg.Cloudinary.BaseURL,
		CloudName:    cfg.Cloudinary.CloudName,
		UploadPreset: cfg.Cloudinary.UploadPreset,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (svc *UploadService) UploadImage(ctx context.Context, file dtos.ImageFile) (*UploadResult, error) {
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if len(file.Data) > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := mw.WriteField("upload_preset", svc.UploadPreset); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", svc.BaseURL, svc.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := svc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image upload failed: unexpected status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	return &result, nil
}
