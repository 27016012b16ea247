package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/simagang/presensi-backend-go/internal/pkg/storage"
)

type FileService interface {
	// UploadLeaveAttachment stores a leave proof document and returns its path.
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// UploadAvatar stores a profile picture and returns its path.
	UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

func validateExt(filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q: only %s allowed", ext, strings.Join(allowed, ", "))
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}

func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, []string{".jpg", ".jpeg", ".png", ".pdf"})
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("leave-attachments", userID, newFilename)

	return s.storage.Upload(ctx, file, path, contentTypeFor(ext))
}

func (s *fileServiceImpl) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, []string{".jpg", ".jpeg", ".png"})
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join("avatars", userID, newFilename)

	return s.storage.Upload(ctx, file, path, contentTypeFor(ext))
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
