// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface. The page server
// never reads from storage while serving; the bucket is only the source used
// by the integrity command to restore pages missing from the document root.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	obj, err := client.GetObject(ctx, cfg.Storage.Bucket, cfg.Storage.ObjectKey("index.html"), minio.GetObjectOptions{})
package storage
