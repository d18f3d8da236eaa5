package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadResult carries what the record store needs to reference a stored file.
type UploadResult struct {
	// FileName is the generated unique name the content store knows the
	// file by.
	FileName string
	// URL is the public HTTPS location of the content.
	URL string
	// StoragePath is the provider identifier used for deletes.
	StoragePath string
}

// FileStorage defines the contract for the attachment content store
// (Cloudinary implementation). Files are separated by resource type through
// the folder argument ("issues", "announcements").
type FileStorage interface {
	UploadFile(ctx context.Context, r io.Reader, folder, originalName string) (*UploadResult, error)
	DeleteFile(ctx context.Context, storagePath string) error
}

type cloudinaryStorage struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

// NewCloudinaryStorage creates a Cloudinary-backed FileStorage. It expects
// CLOUDINARY_URL or the individual CLOUDINARY_* variables in the environment.
func NewCloudinaryStorage() (FileStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	if cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudName != "" {
		cld.Config.Cloud.CloudName = cloudName
	}

	baseFolder := os.Getenv("CLOUDINARY_UPLOAD_FOLDER")
	if baseFolder == "" {
		baseFolder = "campus_facility"
	}

	return &cloudinaryStorage{cld: cld, baseFolder: baseFolder}, nil
}

// UploadFile uploads the content and returns the generated name, URL and
// delete handle. The generated name embeds a UUID so two uploads of the same
// original file never collide.
func (s *cloudinaryStorage) UploadFile(ctx context.Context, r io.Reader, folder, originalName string) (*UploadResult, error) {
	if s == nil || s.cld == nil {
		return nil, fmt.Errorf("cloudinary storage is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	fileName := fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewString()[:8], base)
	publicID := fmt.Sprintf("%s/%s/%s", s.baseFolder, folder, fileName)

	params := uploader.UploadParams{
		PublicID:       publicID,
		UseFilename:    api.Bool(false),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
		ResourceType:   "auto",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return &UploadResult{
		FileName:    fileName,
		URL:         resp.SecureURL,
		StoragePath: resp.PublicID,
	}, nil
}

// DeleteFile deletes stored content by its provider identifier.
func (s *cloudinaryStorage) DeleteFile(ctx context.Context, storagePath string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	if storagePath == "" {
		return fmt.Errorf("missing storage path")
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:   storagePath,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}
