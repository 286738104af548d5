package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUploadedImages writes the uploaded files into dir under
// server-generated names and returns the stored paths. Client-supplied
// filenames only contribute a sanitized extension; they are never used
// for path construction.
func SaveUploadedImages(files []*multipart.FileHeader, dir string, max int) ([]string, error) {
	if len(files) > max {
		return nil, fmt.Errorf("at most %d images can be uploaded", max)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	var paths []string
	for _, fh := range files {
		if fh.Size == 0 {
			continue
		}

		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening uploaded file: %w", err)
		}

		name := generatedImageName(fh.Filename)
		dstPath := filepath.Join(dir, name)

		dst, err := os.Create(dstPath)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("creating %s: %w", dstPath, err)
		}

		_, err = io.Copy(dst, src)
		src.Close()
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", dstPath, err)
		}

		paths = append(paths, dstPath)
	}

	return paths, nil
}

// RemoveImageFiles best-effort deletes stored image files. Failures are
// logged and swallowed; the caller proceeds regardless.
func RemoveImageFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("error deleting image %s: %v", p, err)
		}
	}
}

func generatedImageName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}

	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("img_%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(b), ext)
}
