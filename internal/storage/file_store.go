package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/voice_translator/internal/speech"
)

// FileStore saves audio bytes to a local directory (default audio/).
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "audio"
	}
	return &FileStore{Dir: dir}
}

// Save writes data to {dir}/{name}.{format} and returns the path.
func (fs *FileStore) Save(_ context.Context, audio *speech.Audio, name string) (string, error) {
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(fs.Dir, fmt.Sprintf("%s.%s", filepath.Base(name), audio.Format))
	if err := os.WriteFile(path, audio.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
