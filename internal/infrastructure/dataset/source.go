package dataset

import (
	"context"
	"io"
	"os"

	"github.com/turtacn/CineMood/pkg/errors"
)

// Source yields the raw bytes of a dataset.
type Source interface {
	// Name identifies the source in logs and metric labels.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// FileSource
// ─────────────────────────────────────────────────────────────────────────────

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// NewFileSource returns a source for the CSV file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "dataset file not found").WithDetail(s.Path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to open dataset file").WithDetail(s.Path)
	}
	return f, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ObjectSource
// ─────────────────────────────────────────────────────────────────────────────

// ObjectOpener opens an object by key. *minio.MinIOClient satisfies it.
type ObjectOpener interface {
	Open(ctx context.Context, objectKey string) (io.ReadCloser, error)
}

// ObjectSource reads the dataset from object storage.
type ObjectSource struct {
	opener ObjectOpener
	key    string
}

// NewObjectSource returns a source reading key through opener.
func NewObjectSource(opener ObjectOpener, key string) *ObjectSource {
	return &ObjectSource{opener: opener, key: key}
}

func (s *ObjectSource) Name() string { return "minio" }

func (s *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := s.opener.Open(ctx, s.key)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to open dataset object").WithDetail(s.key)
	}
	return rc, nil
}

//Personal.AI order the ending
