package repository

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound indica que el documento solicitado no existe.
var ErrNotFound = errors.New("document not found")

// mapNotFound traduce el NotFound de gRPC/Firestore a nuestro sentinel.
func mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}
