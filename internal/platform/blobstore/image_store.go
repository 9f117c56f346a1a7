// Package blobstore stores uploaded images in a blob bucket. The bucket is
// addressed by URL, so the same code serves a local directory in
// development and an object store in production.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// bucket driver
	"gocloud.dev/gcerrors"
)

// imagePrefix namespaces image keys inside the bucket. The key, not a
// filesystem path, is what gets persisted on users and places.
const imagePrefix = "uploads/images"

// ImageStore saves and deletes uploaded images in a blob bucket.
type ImageStore struct {
	bucket *blob.Bucket
}

// NewImageStore opens the bucket at the given URL (e.g.
// "file://./uploads/images?create_dir=true" or "s3://places-images").
// The caller owns the returned store and must Close it on shutdown.
func NewImageStore(ctx context.Context, bucketURL string) (*ImageStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", bucketURL, err)
	}
	return &ImageStore{bucket: bucket}, nil
}

// NewImageStoreWithBucket wraps an already-open bucket. Used by tests.
func NewImageStoreWithBucket(bucket *blob.Bucket) *ImageStore {
	return &ImageStore{bucket: bucket}
}

// Save streams r into the bucket under a key derived from filename and
// returns that key. The caller is responsible for making filename unique.
func (s *ImageStore) Save(
	ctx context.Context,
	r io.Reader,
	filename, contentType string,
) (string, error) {
	key := path.Join(imagePrefix, filename)

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to open writer for %q: %w", key, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write image %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize image %q: %w", key, err)
	}

	return key, nil
}

// Delete removes the image with the given key. Deleting a key that does
// not exist is not an error, so cleanup paths can retry safely.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return fmt.Errorf("failed to delete image %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying bucket.
func (s *ImageStore) Close() error {
	return s.bucket.Close()
}
