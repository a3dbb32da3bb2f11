package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/internhub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // URL prefix the basePath is served under
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; when empty, URL returns the reference under /uploads.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Save copies the upload into basePath/folder under a uuid file name. The
// returned reference is the slash-separated path relative to basePath.
func (ls *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	folder, err := cleanFolder(folder)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	uniqueFilename := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := path.Join(folder, uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("ref", ref).Msg("File saved successfully")
	return ref, nil
}

// Delete removes a stored file. Missing files count as deleted.
func (ls *LocalStorage) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}

	physicalPath, err := ls.physicalPath(ref)
	if err != nil {
		return err
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// URL joins the configured base URL and the reference.
func (ls *LocalStorage) URL(ref string) string {
	if ref == "" {
		return ""
	}
	if ls.baseURL == "" {
		return "/uploads/" + ref
	}
	return strings.TrimRight(ls.baseURL, "/") + "/" + ref
}

// physicalPath resolves ref inside basePath, refusing references that would
// escape it.
func (ls *LocalStorage) physicalPath(ref string) (string, error) {
	cleaned := path.Clean("/" + ref)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid file reference: %s", ref)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}

func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(path.Clean("/"+filepath.ToSlash(folder)), "/")
	if folder == "." {
		folder = ""
	}
	if strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid storage folder: %s", folder)
	}
	return folder, nil
}
