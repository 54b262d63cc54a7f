package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// ImageStore define el contrato para subir imágenes de perfil al object storage.
type ImageStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// GCSImageStore implementa ImageStore sobre el bucket por defecto de Firebase Storage.
type GCSImageStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewGCSImageStore(bucket *gcs.BucketHandle, bucketName string) *GCSImageStore {
	return &GCSImageStore{bucket: bucket, bucketName: bucketName}
}

// Upload escribe el objeto, lo marca de lectura pública y devuelve la URL pública.
func (s *GCSImageStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	obj := s.bucket.Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("make object public: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName), nil
}
