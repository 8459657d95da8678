package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	errUploadTooLarge = errors.New("photo exceeds the upload size limit")
	errUploadNotImage = errors.New("only image uploads are allowed")
)

// PhotoStore writes attendance photos under a static-served directory
// and hands back the relative path stored on the record.
type PhotoStore struct {
	Dir      string
	MaxBytes int64
}

// Save stores the "photo" part of a multipart request, if present.
// Returns nil with no error when the request carries no photo.
func (s PhotoStore) Save(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > s.MaxBytes {
		return nil, errUploadTooLarge
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return nil, errUploadNotImage
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("attendance-%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, s.MaxBytes)); err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	path := "/uploads/" + name
	return &path, nil
}
