package objstore

import (
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
)

// Store pushes program attachments into a hosted bucket and hands back
// durable public URLs. The registration and budget core never touch it.
type Store struct {
	client *storage_go.Client
	bucket string
}

func New(url, key, bucket string) *Store {
	return &Store{
		client: storage_go.NewClient(url, key, nil),
		bucket: bucket,
	}
}

func (s *Store) Upload(path string, data io.Reader, contentType string) (string, error) {
	opts := storage_go.FileOptions{ContentType: &contentType}
	if _, err := s.client.UploadFile(s.bucket, path, data, opts); err != nil {
		return "", fmt.Errorf("upload attachment %s: %w", path, err)
	}
	return s.client.GetPublicUrl(s.bucket, path).SignedURL, nil
}
