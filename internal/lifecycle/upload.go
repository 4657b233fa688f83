package lifecycle

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rumsan/docsctl/internal/models"
)

// NewUploadRequest describes the local file at path. The content type is
// taken from the extension only.
func NewUploadRequest(path string, maxBytes int64) (models.UploadRequest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.UploadRequest{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return models.UploadRequest{}, fmt.Errorf("%s is a directory", path)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return models.UploadRequest{
		Path:        path,
		FileName:    filepath.Base(path),
		Size:        info.Size(),
		ContentType: contentType,
		MaxBytes:    maxBytes,
	}, nil
}
