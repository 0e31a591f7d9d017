package storage

import (
	"context"
	"io"

	"github.com/Vovarama1992/voice_translator/internal/speech"
)

// Sink persists synthesized audio and returns where it went.
// An empty location means the audio was kept in memory only.
type Sink interface {
	Save(ctx context.Context, audio *speech.Audio, name string) (string, error)
}

// Низкоуровневый клиент к S3
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}

// MemorySink keeps audio in memory only.
type MemorySink struct{}

func (MemorySink) Save(context.Context, *speech.Audio, string) (string, error) {
	return "", nil
}
