// Package storage persists uploaded requirement images and hands back the
// references that get stored on the post.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrTooManyFiles = errors.New("too many files")

const nameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Store writes one object and returns a reference a browser can load.
type Store interface {
	Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error)
}

type Uploader struct {
	store    Store
	maxFiles int
	now      func() time.Time
}

func NewUploader(store Store, maxFiles int) *Uploader {
	return &Uploader{
		store:    store,
		maxFiles: maxFiles,
		now:      time.Now,
	}
}

// SaveAll stores files in order and returns their references in the same
// order. Nothing is written when there are more files than the limit.
func (u *Uploader) SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > u.maxFiles {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyFiles, len(files), u.maxFiles)
	}

	refs := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := u.save(ctx, fh)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

func (u *Uploader) save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	name := u.storedName(fh.Filename)
	ref, err := u.store.Put(ctx, name, f, fh.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("store upload %q: %w", fh.Filename, err)
	}

	return ref, nil
}

// storedName prefixes the client's file name with the upload time and a
// short random id.
func (u *Uploader) storedName(original string) string {
	return fmt.Sprintf("%d-%s-%s", u.now().UnixMilli(), gonanoid.MustGenerate(nameAlphabet, 6), baseName(original))
}

// baseName drops any directory part the client sent, including
// backslash-separated ones.
func baseName(original string) string {
	if i := strings.LastIndex(original, `\`); i >= 0 {
		original = original[i+1:]
	}

	base := filepath.Base(original)
	if base == "." || base == "/" || base == ".." {
		return "upload"
	}

	return base
}
