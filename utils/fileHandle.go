package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under destDir with a random
// filename so concurrent uploads never collide. Returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored path to its public URL
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
