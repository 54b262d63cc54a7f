package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/vincentbmw/PawspectiveProject/internal/config"
)

// Client agrupa los handles de Firebase construidos una sola vez en el arranque.
type Client struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Bucket    *gcs.BucketHandle

	bucketName string
}

// NewClient inicializa el Admin SDK con el service account y devuelve los handles.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if _, err := os.Stat(cfg.FirebaseCredentialsPath); err != nil {
		return nil, fmt.Errorf("firebase service account file not found: %s", cfg.FirebaseCredentialsPath)
	}

	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.FirebaseStorageBucket,
	}, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase storage: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("get storage bucket: %w", err)
	}

	return &Client{
		Firestore:  fs,
		Auth:       authClient,
		Bucket:     bucket,
		bucketName: cfg.FirebaseStorageBucket,
	}, nil
}

// BucketName devuelve el nombre del bucket por defecto.
func (c *Client) BucketName() string {
	return c.bucketName
}

// Ping verifica conectividad contra Firestore con una lectura mínima.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Firestore.Collection("test").Limit(1).Documents(ctx).GetAll()
	return err
}

// Close libera el cliente de Firestore.
func (c *Client) Close() error {
	return c.Firestore.Close()
}
