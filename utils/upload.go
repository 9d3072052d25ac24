package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadsDir is served publicly under /uploads
const UploadsDir = "uploads"

// MaxImageSize is the largest accepted image upload
const MaxImageSize = 5 * 1024 * 1024

// AllowedImageTypes defines the allowed image file extensions
var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImageFile checks if the uploaded file is a valid image
func ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return fmt.Errorf("file size exceeds 5MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedImageTypes[ext] {
		return fmt.Errorf("invalid file type. Allowed types: jpg, jpeg, png, webp")
	}
	return nil
}

// SaveImage validates and stores an uploaded image under root/kind and
// returns its public path. Rejected files come back as a 400 AppError.
func SaveImage(file *multipart.FileHeader, root, kind string) (string, error) {
	if err := ValidateImageFile(file); err != nil {
		return "", BadRequestError(err.Error(), err)
	}

	dir := filepath.Join(root, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %v", err)
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}
	return "/" + UploadsDir + "/" + kind + "/" + filename, nil
}
