package cache

import (
	"encoding/base64"
	"log"
	"os"
	"path/filepath"
)

const fileExt = ".json"

// FileStore implements Store with one file per key under a directory. Keys
// are base64url-encoded into file names so context labels may contain any
// characters. All failures degrade to a miss and are only logged.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	name := base64.URLEncoding.EncodeToString([]byte(key)) + fileExt
	return filepath.Join(s.dir, name)
}

// Get reads the value stored for key.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes value under key, replacing any previous value.
func (s *FileStore) Set(key, value string) {
	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		log.Printf("[cache] write failed for key %q: %v", key, err)
	}
}

// Delete removes the file for key.
func (s *FileStore) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("[cache] delete failed for key %q: %v", key, err)
	}
}

// Keys lists every decodable key in the directory.
func (s *FileStore) Keys() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != fileExt {
			continue
		}
		decoded, err := base64.URLEncoding.DecodeString(name[:len(name)-len(fileExt)])
		if err != nil {
			continue
		}
		keys = append(keys, string(decoded))
	}
	return keys
}
