package integrity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"tinyhttpd/core/storage"
	"tinyhttpd/feature/static"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrStorageUnavailable is returned when a fix is requested without a usable bucket.
var ErrStorageUnavailable = errors.New("storage unavailable")

// PageStatus describes one routed page.
type PageStatus struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the result of a page check.
type Report struct {
	Pages      []PageStatus `json:"pages"`
	Missing    []string     `json:"missing"`
	Unreadable []string     `json:"unreadable"`
}

// Healthy reports whether every page loaded.
func (r *Report) Healthy() bool {
	return len(r.Missing) == 0 && len(r.Unreadable) == 0
}

// Service checks the document root and restores missing pages.
type Service struct {
	fs     afero.Fs
	loader *static.Loader
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewService creates a new integrity service over the document root fs.
// client may be nil when only checks are run.
func NewService(fsys afero.Fs, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		fs:     fsys,
		loader: static.NewLoader(fsys),
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckPages loads every page the router can select, the same way the
// server does while answering requests.
func (s *Service) CheckPages(ctx context.Context) (*Report, error) {
	report := &Report{Missing: []string{}, Unreadable: []string{}}

	for _, name := range static.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status := PageStatus{Name: name}
		data, err := s.loader.Load(name)
		switch {
		case err == nil:
			status.OK = true
			status.Size = len(data)
		case errors.Is(err, static.ErrNotFound):
			status.Error = err.Error()
			report.Missing = append(report.Missing, name)
		default:
			status.Error = err.Error()
			report.Unreadable = append(report.Unreadable, name)
		}
		report.Pages = append(report.Pages, status)
	}

	return report, nil
}

// FixPages downloads the given pages from the bucket into the document root.
func (s *Service) FixPages(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if s.client == nil {
		return fmt.Errorf("%w: no storage client configured", ErrStorageUnavailable)
	}

	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("%w: bucket %q does not exist", ErrStorageUnavailable, s.cfg.Bucket)
	}

	for _, name := range names {
		if err := s.restore(ctx, name); err != nil {
			return err
		}
		s.logger.Info("Restored page", zap.String("page", name), zap.String("bucket", s.cfg.Bucket))
	}
	return nil
}

// restore writes the object to a temporary file first and renames it into
// place, so the server never loads a half-written page.
func (s *Service) restore(ctx context.Context, name string) error {
	key := s.cfg.ObjectKey(name)

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	defer obj.Close()

	tmp, err := afero.TempFile(s.fs, filepath.Dir(name), "."+filepath.Base(name)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		if storage.IsNotFound(err) {
			return fmt.Errorf("object %s not found in bucket %q: %w", key, s.cfg.Bucket, err)
		}
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmpName, name); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	return nil
}
